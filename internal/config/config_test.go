package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers())
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
include = ["internal/**/*.go"]
exclude = ["**/*_test.go"]
respect_gitignore = false
jobs = 3

[watch]
debounce_ms = 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"internal/**/*.go"}, cfg.Include)
	assert.Equal(t, []string{"**/*_test.go"}, cfg.Exclude)
	assert.False(t, cfg.RespectGitignore)
	assert.Equal(t, 3, cfg.Workers())
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "jobs = 2\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"**/*.go"}, cfg.Include)
	assert.True(t, cfg.RespectGitignore)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: "jbos = 2\n"},
		{name: "negative jobs", content: "jobs = -1\n"},
		{name: "negative debounce", content: "[watch]\ndebounce_ms = -5\n"},
		{name: "bad glob", content: "include = [\"[\"]\n"},
		{name: "syntax", content: "include = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}
