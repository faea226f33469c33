package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"coffeeshop-2026-01-01T00-00-00.000.log",
		"coffeeshop-2026-01-02T00-00-00.000.log",
		"coffeeshop-2026-01-03T00-00-00.000.log",
		"unrelated.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0644))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))

	left, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "coffeeshop-2026-01-02T00-00-00.000.log"),
		filepath.Join(dir, "coffeeshop-2026-01-03T00-00-00.000.log"),
		filepath.Join(dir, "unrelated.log"),
	}, left)
}

func TestNewLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	logger, closer, err := NewLogger(&Config{Environment: "prod", LogDir: dir, LogMaxFiles: 3}, &stdout)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("drink created", "id", 1)
	require.NoError(t, closer.Close())

	assert.Contains(t, stdout.String(), `"msg":"drink created"`)
	assert.NotContains(t, stdout.String(), "hidden")

	files, err := filepath.Glob(filepath.Join(dir, "coffeeshop-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"drink created"`)
}
