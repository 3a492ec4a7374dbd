// Package logging provides structured logging with zap.
package logging

import "go.uber.org/zap"

// New creates a zap.Logger appropriate for the environment: JSON in
// production, console output elsewhere. If construction fails the no-op
// logger is returned, so callers always get a usable instance.
func New(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
