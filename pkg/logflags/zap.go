package logflags

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func HTTPLogger() Logger {
	return makeLogger(http, "http")
}

func GRPCLogger() Logger {
	return makeLogger(grpc, "grpc")
}

func SessionLogger() Logger {
	return makeLogger(session, "session")
}

func makeLogger(enabled bool, name string) Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:      "timestamp",
		LevelKey:     "level",
		NameKey:      "logger",
		MessageKey:   "message",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
		EncodeName:   zapcore.FullNameEncoder,
	}

	level := zapcore.ErrorLevel
	if enabled {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(logOut)),
		level,
	)

	return zap.New(core, zap.AddCaller()).Named(name).Sugar()
}
