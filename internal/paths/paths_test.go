package paths

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlatform swaps the platform lookups for the duration of a test.
func withPlatform(t *testing.T, goos, home, userConfig string) {
	t.Helper()
	saved := platformDir
	t.Cleanup(func() { platformDir = saved })
	platformDir.goos = goos
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return userConfig, nil }
}

func TestDefaultConfigDir_Linux(t *testing.T) {
	withPlatform(t, "linux", "/home/u", "")

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/achievements", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/u/.config/achievements", got)
	})
}

func TestDefaultDataDir_Linux(t *testing.T) {
	withPlatform(t, "linux", "/home/u", "")

	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/achievements", got)
	})

	t.Run("falls back to ~/.local/share when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/u/.local/share/achievements", got)
	})
}

func TestDefaultDirs_Darwin(t *testing.T) {
	withPlatform(t, "darwin", "/Users/u", "/Users/u/Library/Application Support")

	cfg, err := DefaultConfigDir()
	require.NoError(t, err)
	data, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/Users/u/Library/Application Support/achievements", cfg)
	assert.Equal(t, cfg, data)
}

func TestDefaultConfigDir_HomeError(t *testing.T) {
	withPlatform(t, "linux", "", "")
	platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Setenv("XDG_CONFIG_HOME", "")

	_, err := DefaultConfigDir()
	assert.Error(t, err)
}

func TestResolveConfigDir(t *testing.T) {
	withPlatform(t, "linux", "/home/u", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", want: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", want: "/env/config"},
		{name: "platform default when both empty", want: "/home/u/.config/achievements"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	withPlatform(t, "linux", "/home/u", "")
	t.Setenv("XDG_DATA_HOME", "")

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{name: "flag wins over all", flag: "/flag/data", configValue: "/config/data", envVal: "/env/data", want: "/flag/data"},
		{name: "config wins over env", configValue: "/config/data", envVal: "/env/data", want: "/config/data"},
		{name: "env wins when flag and config empty", envVal: "/env/data", want: "/env/data"},
		{name: "platform default", want: "/home/u/.local/share/achievements"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRelativeFlagIsAbsolute(t *testing.T) {
	got, err := ResolveConfigDir("rel/conf")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "conf", filepath.Base(got))
}
