package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	ResetPaths()
	t.Cleanup(ResetPaths)

	assert.Equal(t, home, HomeDir())
	assert.Equal(t, filepath.Join(home, ".local", "share", "intellicomp"), DataDir())
	assert.Equal(t, filepath.Join(home, ".local", "share", "intellicomp", "schemas"), SchemaDir())
	assert.Equal(t, filepath.Join(home, ".local", "share", "intellicomp", "intellicomp.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".config", "intellicomp", "config.toml"), ConfigFile())
}

func TestXDGOverrides(t *testing.T) {
	home := t.TempDir()
	data := filepath.Join(home, "data")
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_CONFIG_HOME", "relative/ignored")
	ResetPaths()
	t.Cleanup(ResetPaths)

	assert.Equal(t, filepath.Join(data, "intellicomp"), DataDir())
	assert.Equal(t, filepath.Join(home, ".config", "intellicomp"), ConfigDir())

	require.NoError(t, EnsureDataDir())
	info, err := os.Stat(DataDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
