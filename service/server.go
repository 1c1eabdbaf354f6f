package service

import (
	"memscan/pkg/logflags"
	"net"
)

// Server represents a server for a remote client
// to connect to.
type Server interface {
	Run() error
	Stop() error
}

type ServerImpl struct {
	Logger   logflags.Logger
	Listener net.Listener
	StopChan chan struct{}
	Session  *Session
}

// Config carries the logging options of a server.
type Config struct {
	LogFlag bool
	LogStr  string
	LogDest string
}

// SetupLogger configures logging from cfg and installs the logger built by
// newLogger for this server.
func (si *ServerImpl) SetupLogger(cfg Config, newLogger func() logflags.Logger) error {
	err := logflags.Setup(cfg.LogFlag, cfg.LogStr, cfg.LogDest)
	if err != nil {
		return err
	}

	si.Logger = newLogger()
	return nil
}
