package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// defaultBaseURL matches the development server the backend ships with.
const defaultBaseURL = "http://localhost:8000/api"

// APIConfig holds settings for the remote habit API.
type APIConfig struct {
	// BaseURL is the root URL of the API, without a trailing slash.
	// Overridable via the HABITGRID_API_URL environment variable.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	// Debug mirrors log output to stderr and lowers the level.
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/habitgrid/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "habitgrid", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API:     APIConfig{BaseURL: defaultBaseURL},
		Display: DisplayConfig{Theme: "default"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file resolves to the default configuration. The API base URL
// may be overridden through the HABITGRID_API_URL environment variable,
// which takes precedence over the file.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("api.base_url", defaultBaseURL)
	v.SetDefault("display.theme", "default")
	v.SetDefault("log.debug", false)

	if err := v.BindEnv("api.base_url", "HABITGRID_API_URL"); err != nil {
		return nil, fmt.Errorf("binding environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return configFromViper(v, path)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return configFromViper(v, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return configFromViper(v, path)
}

// configFromViper unmarshals the resolved viper state, so that env
// overrides apply with or without a config file present.
func configFromViper(v *viper.Viper, path string) (*AppConfig, error) {
	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
