package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	serviceName    = "memscan.Scanner"
	execMethod     = "/memscan.Scanner/Exec"
	execMethodName = "Exec"
)

type ExecRequest struct {
	RequestID string   `json:"request_id"`
	Pid       int      `json:"pid"`
	Command   string   `json:"command"`
	Args      []string `json:"args"`
}

type ExecReply struct {
	RequestID string `json:"request_id"`
	Output    string `json:"output"`
}

type scannerServer interface {
	Exec(ctx context.Context, req *ExecRequest) (*ExecReply, error)
}

func execHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ExecRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(scannerServer).Exec(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: execMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(scannerServer).Exec(ctx, req.(*ExecRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var scannerServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*scannerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: execMethodName,
			Handler:    execHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "memscan",
}
