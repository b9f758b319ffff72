package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dfaith.log")
	logger, err := New("warn", path)
	require.NoError(t, err)

	logger.Info("dropped below level")
	logger.Warn("refresh failed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "refresh failed")
	assert.NotContains(t, string(data), "dropped below level")
	assert.Contains(t, string(data), `"ts"`)
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	logger, err := New("verbose", filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
