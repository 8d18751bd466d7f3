// Package logger builds the process zap logger.
package logger

import (
	"go.uber.org/zap"

	"github.com/terraincognita07/auragon/internal/config"
)

// New returns a JSON production logger for the production environment and a
// console development logger otherwise.
func New(env string) (*zap.Logger, error) {
	if env == config.EnvProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Must is New for startup code that cannot continue without a logger.
func Must(env string) *zap.Logger {
	logger, err := New(env)
	if err != nil {
		panic(err)
	}
	return logger
}
