package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.sugar)
}

func TestNewWithOptions_InvalidLevelFallsBack(t *testing.T) {
	logger := NewWithOptions(Options{Level: "chatty", Format: "console"})
	assert.NotNil(t, logger)
	assert.True(t, logger.sugar.Desugar().Core().Enabled(0)) // info
}

func TestLogger_Levels(t *testing.T) {
	logger := New()

	assert.NotPanics(t, func() {
		logger.Debug("Debug %s", "message")
		logger.Info("User %s created listing %d", "john", 123)
		logger.Warn("Warning: %s count is %d", "items", 5)
		logger.Error("Failed to process request %d: %s", 404, "not found")
	})
}

func TestLogger_With(t *testing.T) {
	logger := NewNop().With("listing_id", 42)
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("scoped")
	})
}
