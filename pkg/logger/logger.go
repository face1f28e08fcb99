package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger: human-readable in development, JSON in
// anything else.
func New(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
