package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug", "development").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("warn", "production").GetLevel())
	// Unparseable levels fall back to info.
	assert.Equal(t, logrus.InfoLevel, NewLogger("chatty", "production").GetLevel())
}

func TestNewLoggerFormatterByEnvironment(t *testing.T) {
	dev := NewLogger("info", "development")
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)

	prod := NewLogger("info", "production")
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)
}
