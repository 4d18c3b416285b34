package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.log")

	require.NoError(t, InitWithConfig(Config{Mode: LogModeProd, File: path}))
	t.Cleanup(func() {
		Close()
		InitWithMode(LogModeTest)
	})

	l := WithComponent("logger_test")
	l.Info().Str("category", "cpu").Msg("Checking CPU usage")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"logger_test"`)
	assert.Contains(t, string(data), `"message":"Checking CPU usage"`)
}

func TestInitWithConfigDirectoryCreatesTimestampedFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, InitWithConfig(Config{Mode: LogModeProd, File: dir}))
	t.Cleanup(func() {
		Close()
		InitWithMode(LogModeTest)
	})

	log := Get()
	log.Warn().Msg("No API key provided")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "system-stats_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".log"))
}

func TestInitWithConfigBadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "nested", "stats.log")
	err := InitWithConfig(Config{Mode: LogModeTest, File: missing})
	assert.Error(t, err)
}

func TestColorizeLevel(t *testing.T) {
	assert.Equal(t, red+"ERR"+reset, colorizeLevel("error"))
	assert.Equal(t, blue+"INF"+reset, colorizeLevel("info"))
	assert.Equal(t, blue+"trace"+reset, colorizeLevel("trace"))
}
