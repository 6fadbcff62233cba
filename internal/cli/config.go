package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/achievements/internal/paths"
	"github.com/mesh-intelligence/achievements/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyLatency  = "latency"
	cfgKeySeed     = "seed"
	cfgKeyListen   = "listen"
	cfgKeyLogLevel = "log_level"
	cfgKeyWatch    = "watch"

	defaultListen   = "127.0.0.1:8080"
	defaultLogLevel = "warn"
)

// configFile is the structure written to a fresh config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	Latency  string `yaml:"latency"`
	Seed     bool   `yaml:"seed"`
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`
	Watch    bool   `yaml:"watch"`
}

// settings is the effective configuration of one invocation.
type settings struct {
	types.Config
	Listen   string
	LogLevel string
	Watch    bool
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. dataDir, when set, is
// recorded in a freshly written file.
func loadConfig(configDir, dataDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, paths.ConfigFileName), dataDir); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendFile)
	v.SetDefault(cfgKeyLatency, types.DefaultLatency)
	v.SetDefault(cfgKeySeed, true)
	v.SetDefault(cfgKeyListen, defaultListen)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyWatch, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// readSettings extracts and validates the effective settings. DataDir is
// the raw config value; the caller resolves it.
func readSettings(v *viper.Viper) (settings, error) {
	s := settings{
		Config: types.Config{
			Backend: v.GetString(cfgKeyBackend),
			DataDir: v.GetString(cfgKeyDataDir),
			Latency: v.GetDuration(cfgKeyLatency),
			Seed:    v.GetBool(cfgKeySeed),
		},
		Listen:   v.GetString(cfgKeyListen),
		LogLevel: v.GetString(cfgKeyLogLevel),
		Watch:    v.GetBool(cfgKeyWatch),
	}
	if s.Latency < 0 {
		return settings{}, fmt.Errorf("config %s: %w", cfgKeyLatency, types.ErrLatencyInvalid)
	}
	return s, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:  types.BackendFile,
		DataDir:  dataDir,
		Latency:  types.DefaultLatency.String(),
		Seed:     true,
		Listen:   defaultListen,
		LogLevel: defaultLogLevel,
		Watch:    true,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# achievements configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

