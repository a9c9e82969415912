package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the console logger. Info and debug entries go to stdout,
// warnings and errors to stderr. verbose enables debug, quiet keeps errors only.
func newLogger(stdout, stderr io.Writer, verbose, quiet bool) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(ec)

	minLevel := zapcore.InfoLevel
	switch {
	case quiet:
		minLevel = zapcore.ErrorLevel
	case verbose:
		minLevel = zapcore.DebugLevel
	}

	low := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.WarnLevel
	})
	high := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(stdout), low),
		zapcore.NewCore(enc.Clone(), zapcore.AddSync(stderr), high),
	)
	return zap.New(core).Named(appName)
}
