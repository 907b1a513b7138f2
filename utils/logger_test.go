package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("DefaultsToInfo", func(t *testing.T) {
		logger, err := NewLogger(LogOptions{})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("DebugFlagWins", func(t *testing.T) {
		logger, err := NewLogger(LogOptions{Debug: true, Level: "warn"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Level", func(t *testing.T) {
		logger, err := NewLogger(LogOptions{Level: "warn"})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("BadLevel", func(t *testing.T) {
		_, err := NewLogger(LogOptions{Level: "chatty"})
		assert.Error(t, err)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dexwatch.log")
		logger, err := NewLogger(LogOptions{File: path})
		require.NoError(t, err)

		logger.Info("quote fetched")
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "quote fetched")
		assert.Contains(t, string(data), `"timestamp"`)
	})
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())
	CleanupLogger()
}
