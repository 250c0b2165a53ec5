package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		log := NewLogger(level, "json")
		assert.NotNil(t, log, "level %s", level)
	}
}

func TestNewLoggerFormats(t *testing.T) {
	assert.NotNil(t, NewLogger("info", "json"))
	assert.NotNil(t, NewLogger("info", "text"))
}

func TestLoggerDoesNotPanic(t *testing.T) {
	log := NewLogger("debug", "text")

	assert.NotPanics(t, func() {
		log.Debug("debug message")
		log.Debugf("debug %s", "formatted")
		log.Info("info message")
		log.Infof("info %s", "formatted")
		log.Warn("warn message")
		log.Warnf("warn %s", "formatted")
		log.Error("error message")
		log.Errorf("error %s", "formatted")
	})
}
