package logflags

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func HTTPLogger() Logger {
	return newLogger(http)
}

// EngineLogger traces every memory operation when the engine component
// is enabled (or the caller forces debug), and stays at error level
// otherwise.
func EngineLogger(debug bool) Logger {
	return newLogger(engine || debug)
}

func newLogger(verbose bool) Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:      "timestamp",
		LevelKey:     "level",
		MessageKey:   "message",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	level := zapcore.ErrorLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(logOut)),
		level,
	)

	return zap.New(core, zap.AddCaller()).Sugar()
}
