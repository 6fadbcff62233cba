// Package paths resolves the configuration and data directories.
//
// Each directory is chosen by precedence: an explicit flag, then the
// environment, then the platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "achievements"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ACHIEVEMENTS_CONFIG_DIR"
	EnvDataDir   = "ACHIEVEMENTS_DATA_DIR"
)

// ConfigFileName is the config file inside the config directory.
const ConfigFileName = "config.yaml"

// platformDir holds platform lookups; tests replace them.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/achievements (fallback ~/.config/achievements)
// macOS:   ~/Library/Application Support/achievements
// Windows: %APPDATA%/achievements
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default data directory.
//
// Linux:   $XDG_DATA_HOME/achievements (fallback ~/.local/share/achievements)
// macOS and Windows: same as the config directory.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

// ResolveConfigDir returns flag, else $ACHIEVEMENTS_CONFIG_DIR, else
// DefaultConfigDir(). Explicit values are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns flag, else the data_dir value from config.yaml,
// else $ACHIEVEMENTS_DATA_DIR, else DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}
