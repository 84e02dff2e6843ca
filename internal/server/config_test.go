package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such-file.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigParsesHCL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
server {
  address = "0.0.0.0"
  port    = 9000
}

table {
  starting_stack = 2000
  big_blind      = 40
}
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2000, cfg.Table.StartingStack)
	assert.Equal(t, 40, cfg.Table.BigBlind)

	// Unset fields fall back to defaults.
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Table.SmallBlind)
	assert.Equal(t, 5, cfg.Table.NextHandDelaySecs)
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`server { port = `), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config { return DefaultConfig() }

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Table.SmallBlind = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Table.SmallBlind = 50
	cfg.Table.BigBlind = 20
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Table.StartingStack = 10
	assert.Error(t, cfg.Validate())
}
