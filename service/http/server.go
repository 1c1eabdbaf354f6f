package http

import (
	"context"
	"memscan/pkg/logflags"
	"memscan/service"
	"net"
	"net/http"
	"os"
	"sync"
)

type Server struct {
	service.ServerImpl
	httpServer *http.Server
	pool       sync.Pool
}

func NewServer(cfg service.Config, listener net.Listener, s *service.Session) (*Server, error) {
	impl := service.ServerImpl{
		Listener: listener,
		StopChan: make(chan struct{}),
		Session:  s,
	}
	if err := impl.SetupLogger(cfg, logflags.HTTPLogger); err != nil {
		return nil, err
	}

	srv := &Server{
		ServerImpl: impl,
		pool: sync.Pool{
			New: func() interface{} {
				return newProcessor(s)
			},
		},
	}

	srv.httpServer = &http.Server{
		Handler: srv,
	}

	return srv, nil
}

func (s *Server) Run() error {
	go func() {
		if err := s.httpServer.Serve(s.Listener); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString(err.Error() + "\n")
		}
	}()

	return nil
}

func (s *Server) Stop() error {
	close(s.StopChan)
	return s.httpServer.Shutdown(context.Background())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := newContext(s.Logger, w, r)
	p := s.pool.Get().(*processor)
	defer s.pool.Put(p)

	chain := httpHandlerChain(p.worker)
	chain.exec(ctx)
}
