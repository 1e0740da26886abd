package main

import "go.uber.org/zap"

// newLogger builds a console logger on stderr. stdout is reserved for
// batch reports and the MCP stdio transport.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// syncLogger flushes log. Sync on a console sink fails with EINVAL on some
// platforms, so the error is dropped.
func syncLogger(log *zap.Logger) {
	_ = log.Sync()
}
