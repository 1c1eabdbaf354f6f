package grpc

import (
	"context"
	"memscan/pkg/logflags"
	"memscan/service"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

type Server struct {
	service.ServerImpl
	grpcServer *grpc.Server
	health     *health.Server
}

func NewServer(cfg service.Config, listener net.Listener, s *service.Session) (*Server, error) {
	impl := service.ServerImpl{
		Listener: listener,
		StopChan: make(chan struct{}),
		Session:  s,
	}
	if err := impl.SetupLogger(cfg, logflags.GRPCLogger); err != nil {
		return nil, err
	}

	srv := &Server{
		ServerImpl: impl,
		health:     health.NewServer(),
	}
	srv.grpcServer = grpc.NewServer(grpc.ChainUnaryInterceptor(srv.recoverInterceptor, srv.logInterceptor))
	srv.grpcServer.RegisterService(&scannerServiceDesc, srv)
	healthpb.RegisterHealthServer(srv.grpcServer, srv.health)
	srv.health.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	return srv, nil
}

func (s *Server) Run() error {
	go func() {
		if err := s.grpcServer.Serve(s.Listener); err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
		}
	}()

	return nil
}

func (s *Server) Stop() error {
	close(s.StopChan)
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
	return nil
}

func (s *Server) Exec(ctx context.Context, req *ExecRequest) (*ExecReply, error) {
	cmd, ok := service.ParseCmdType(req.Command)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "invalid command: %s", req.Command)
	}

	out, err := s.Session.Exec(cmd, req.Args)
	if err != nil {
		return nil, status.Error(grpcCode(err), err.Error())
	}

	return &ExecReply{RequestID: req.RequestID, Output: out}, nil
}

func (s *Server) logInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	logger := s.Logger
	if r, ok := req.(*ExecRequest); ok && logger != nil {
		logger.Info("=========== request info ===========")
		logger.Infof("id: %s", r.RequestID)
		logger.Infof("method: %s", info.FullMethod)
		logger.Infof("pid: %d", r.Pid)
		logger.Infof("command: %s %v", r.Command, r.Args)
	}

	resp, err := handler(ctx, req)

	if logger != nil {
		logger.Info("=========== response info ===========")
		logger.Infof("status: %s", status.Code(err))
		if rep, ok := resp.(*ExecReply); ok && rep != nil {
			logger.Infof("id: %s", rep.RequestID)
			logger.Infof("data: %s", rep.Output)
		}
	}
	return resp, err
}

// recoverInterceptor turns a panicking call into an Internal status.
func (s *Server) recoverInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			if s.Logger != nil {
				s.Logger.Errorf("%s panicked: %v", info.FullMethod, r)
			}
			resp, err = nil, status.Errorf(codes.Internal, "%s: %v", info.FullMethod, r)
		}
	}()
	return handler(ctx, req)
}

func grpcCode(err error) codes.Code {
	switch service.Classify(err) {
	case service.ClassInvalid:
		return codes.InvalidArgument
	case service.ClassConflict:
		return codes.FailedPrecondition
	case service.ClassNotFound:
		return codes.NotFound
	case service.ClassUnavailable:
		return codes.Unavailable
	}
	return codes.Internal
}
