package logflags

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const DefaultLogDesc = "stderr"

// Logger is the sugared logger handed to subsystems.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Info(args ...interface{})
	Sync() error
}

var (
	http    = false
	grpc    = false
	session = false

	logOut  io.Writer = os.Stderr
	logPath           = DefaultLogDesc
)

// Setup enables debug logging for the comma separated subsystems in logStr
// when flag is set, and sends log output to logDest, which is either a file
// path or "stderr". Calling it again with the same destination keeps the
// already open log file.
func Setup(flag bool, logStr, logDest string) error {
	if logDest != "" && logDest != logPath {
		if err := os.MkdirAll(filepath.Dir(logDest), 0755); err != nil {
			return errors.Wrapf(err, "create log dir for %s", logDest)
		}
		f, err := os.OpenFile(logDest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrapf(err, "open log file %s", logDest)
		}
		logOut = f
		logPath = logDest
	}

	if !flag {
		return nil
	}

	for _, s := range strings.Split(logStr, ",") {
		switch strings.TrimSpace(s) {
		case "http":
			http = true
		case "grpc":
			grpc = true
		case "session":
			session = true
		case "all":
			http, grpc, session = true, true, true
		case "":
		default:
			return errors.Errorf("unknown log subsystem %q", s)
		}
	}
	return nil
}

// HTTP reports whether http debug logging is enabled.
func HTTP() bool {
	return http
}

func GRPC() bool {
	return grpc
}

func Session() bool {
	return session
}
