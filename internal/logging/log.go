// Package logging builds the zap logger shared by every command.
package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv forces development logging when set to "true".
const DebugEnv = "SSMETRICS_DEBUG"

// NewLogger returns a sugared logger writing to stderr, so stdout carries
// only report tables. verbose switches to the development config at debug
// level.
func NewLogger(verbose bool) *zap.SugaredLogger {
	var config zap.Config
	if v, ok := os.LookupEnv(DebugEnv); verbose || (ok && v == "true") {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named("ssmetrics").Sugar()
}

type loggerKey struct{}

// WithLogger returns a copy of parent in which the logger key holds logger.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return zap.NewNop().Sugar()
}
