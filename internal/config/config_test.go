package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/outl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	var cfg config.Config

	assert.Equal(t, config.DefaultMaxName, cfg.MaxName())
	assert.Equal(t, config.DefaultMaxContent, cfg.MaxContent())
	assert.Equal(t, "exports", cfg.ExportDir())
}

func TestConfig_Validate(t *testing.T) {
	var cfg config.Config

	bad := 0
	cfg.Limits.MaxName = &bad
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidValue)

	ok := 512
	cfg.Limits.MaxName = &ok
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 512, cfg.MaxName())
}

func TestConfig_GetSet(t *testing.T) {
	var cfg config.Config

	require.NoError(t, cfg.Set("author.name", "alice"))
	got, err := cfg.Get("author.name")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	require.NoError(t, cfg.Set("limits.max_content", "1024"))
	assert.Equal(t, 1024, cfg.MaxContent())

	assert.ErrorIs(t, cfg.Set("limits.max_content", "zero"), config.ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("no.such.key", "x"), config.ErrUnknownKey)
	_, err = cfg.Get("no.such.key")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfig_LocalOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })

	require.NoError(t, os.MkdirAll(".outl", 0755))
	require.NoError(t, os.WriteFile(config.LocalPath(), []byte("author:\n  name: local-alice\n"), 0644))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.ScopeLocal, cfg.Scope())
	assert.Equal(t, "local-alice", cfg.Author.Name)
}

func TestConfig_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })

	require.NoError(t, os.MkdirAll(".outl", 0755))
	require.NoError(t, os.WriteFile(filepath.Join(".outl", "config.yaml"), []byte("author: ["), 0644))

	_, err = config.Load()
	assert.ErrorContains(t, err, "malformed config file")
}
