// Package logging configures the process logger. The engine's orchestration
// layers log through logrus; low-level primitives stay silent.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger honoring the configured level. Production
// environments log JSON for machine ingestion; development keeps the text
// formatter with timestamps.
func NewLogger(logLevel, environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if environment == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
