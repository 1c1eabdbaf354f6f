package cmd

import (
	"fmt"
	"memscan/pkg/logflags"
	"memscan/pkg/proc"
	"memscan/pkg/prowler"
	"memscan/pkg/terminal"
	"memscan/service"
	"memscan/service/grpc"
	"memscan/service/http"
	"memscan/utils"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli"
)

type ExecType int

const (
	Attach ExecType = iota
	Dump
	Serve
	Conn
	Regions
)

const (
	defaultAddr = "127.0.0.1:0"
)

type executor struct {
	et  ExecType
	pid int
	ctx *cli.Context
}

func newExecutor(et ExecType, pid int, ctx *cli.Context) *executor {
	return &executor{
		et:  et,
		pid: pid,
		ctx: ctx,
	}
}

func (e *executor) run() error {
	switch e.et {
	case Attach:
		return e.attach()
	case Dump:
		return e.dump()
	case Serve:
		return e.serve()
	case Conn:
		args := e.ctx.Args()
		return e.connect(args.First())
	case Regions:
		return e.regions()
	}

	return nil
}

func exec(et ExecType, pid int, ctx *cli.Context) error {
	ex := newExecutor(et, pid, ctx)
	return ex.run()
}

// setupLogging applies the log flags before any session or server builds
// its logger.
func (e *executor) setupLogging() error {
	cfg := serviceConfig(e.ctx)
	return logflags.Setup(cfg.LogFlag, cfg.LogStr, cfg.LogDest)
}

func (e *executor) processSession() (*service.Session, error) {
	if err := e.setupLogging(); err != nil {
		return nil, err
	}

	p, err := prowler.NewProwler(e.pid)
	if err != nil {
		return nil, err
	}

	opts, err := sessionOptions(e.ctx)
	if err != nil {
		return nil, err
	}
	return service.NewProcessSession(p, opts), nil
}

func (e *executor) attach() error {
	s, err := e.processSession()
	if err != nil {
		return err
	}
	return e.serveLocal(s)
}

func (e *executor) dump() error {
	if err := e.setupLogging(); err != nil {
		return err
	}

	base, err := strconv.ParseUint(e.ctx.String("base"), 0, 64)
	if err != nil {
		return fmt.Errorf("invalid base address %q", e.ctx.String("base"))
	}

	img, err := proc.LoadImage(e.ctx.Args().First(), base)
	if err != nil {
		return err
	}

	opts, err := sessionOptions(e.ctx)
	if err != nil {
		return err
	}
	return e.serveLocal(service.NewImageSession(img, opts))
}

// serveLocal runs the session behind a loopback server and attaches a
// terminal to it.
func (e *executor) serveLocal(s *service.Session) error {
	listener, err := net.Listen("tcp", defaultAddr)
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}

	server, err := e.newServer(listener, s)
	if err != nil {
		listener.Close()
		return err
	}

	defer server.Stop()
	if err := server.Run(); err != nil {
		return err
	}

	return e.connect(listener.Addr().String())
}

func (e *executor) serve() error {
	s, err := e.processSession()
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", e.ctx.String("addr"))
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}

	server, err := e.newServer(listener, s)
	if err != nil {
		listener.Close()
		return err
	}
	if err := server.Run(); err != nil {
		return err
	}
	fmt.Printf("serving pid %d on %s (%s)\n", e.pid, listener.Addr(), e.ctx.String("srv"))

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	return server.Stop()
}

func (e *executor) newServer(listener net.Listener, s *service.Session) (service.Server, error) {
	cfg := serviceConfig(e.ctx)

	switch e.ctx.String("srv") {
	case "grpc":
		return grpc.NewServer(cfg, listener, s)
	case "http":
		fallthrough
	default:
		return http.NewServer(cfg, listener, s)
	}
}

func (e *executor) connect(addr string) (err error) {
	var client service.Client
	srv := e.ctx.String("srv")
	switch srv {
	case "grpc":
		c, err := grpc.NewClient(addr)
		if err != nil {
			return err
		}
		defer c.Close()
		client = c
	case "http":
		fallthrough
	default:
		client, err = http.NewClient(addr)
		if err != nil {
			return
		}
	}

	term := terminal.New(client)
	return term.Run()
}

func (e *executor) regions() error {
	p, err := prowler.NewProwler(e.pid)
	if err != nil {
		return err
	}

	regions, err := p.Regions()
	if err != nil {
		return err
	}

	var lines []string
	for i, r := range regions {
		if e.ctx.Bool("anon") && !r.Anonymous() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%3d: %s", i, r))
	}
	utils.PrintStringLine(os.Stdout, lines...)
	return nil
}
