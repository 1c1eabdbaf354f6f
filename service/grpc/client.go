package grpc

import (
	"context"
	"fmt"
	"memscan/service"
	"os"
	"time"

	e "memscan/error"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

type Client struct {
	addr    string
	conn    *grpc.ClientConn
	timeout time.Duration
}

func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		addr:    addr,
		conn:    conn,
		timeout: time.Second * 30,
	}

	if !c.IsScanServer() {
		conn.Close()
		return nil, errors.Wrapf(e.NotScanServer, "%s", c.addr)
	}
	return c, nil
}

func (c *Client) SendExpr(cmdType service.CmdType, args string) (string, error) {
	argv, err := shlex.Split(args)
	if err != nil {
		return "", errors.Wrap(e.InvalidArguments, err.Error())
	}

	req := &ExecRequest{
		RequestID: uuid.New().String(),
		Pid:       os.Getpid(),
		Command:   cmdType.String(),
		Args:      argv,
	}
	reply := new(ExecReply)

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.conn.Invoke(ctx, execMethod, req, reply, grpc.CallContentSubtype(codecName)); err != nil {
		return "", errors.New(status.Convert(err).Message())
	}

	return reply.Output, nil
}

func (c *Client) IsScanServer() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: serviceName})
	if err != nil {
		fmt.Println("client recv err: ", err)
		return false
	}

	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
}

func (c *Client) Close() error {
	return c.conn.Close()
}
