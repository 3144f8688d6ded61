// Package config loads rtk configuration from ~/.config/rtk/config.yaml
// with RTK_* environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Tee controls spilling raw captured output to disk.
type Tee struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode        string `mapstructure:"mode" yaml:"mode"`
	Dir         string `mapstructure:"dir" yaml:"dir"`
	MaxFiles    int    `mapstructure:"max_files" yaml:"max_files"`
	MaxFileSize int64  `mapstructure:"max_file_size" yaml:"max_file_size"`
}

// Output controls the rendering stage.
type Output struct {
	MaxPassthrough int `mapstructure:"max_passthrough" yaml:"max_passthrough"`
}

// Filter controls the source filter defaults.
type Filter struct {
	DefaultLevel string `mapstructure:"default_level" yaml:"default_level"`
}

// Track controls the SQLite usage store.
type Track struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// LLM configures the optional summarization backend.
type LLM struct {
	Model     string `mapstructure:"model" yaml:"model"`
	APIKeyEnv string `mapstructure:"api_key_env" yaml:"api_key_env"`
}

// Config is the full rtk configuration.
type Config struct {
	Tee    Tee    `mapstructure:"tee" yaml:"tee"`
	Output Output `mapstructure:"output" yaml:"output"`
	Filter Filter `mapstructure:"filter" yaml:"filter"`
	Track  Track  `mapstructure:"track" yaml:"track"`
	LLM    LLM    `mapstructure:"llm" yaml:"llm"`
}

// Dir returns the rtk config directory (~/.config/rtk).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rtk"), nil
}

// Path returns the config file path (~/.config/rtk/config.yaml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from ~/.config/rtk/config.yaml. A missing file
// is not an error; defaults apply. Environment variables with the RTK_
// prefix override file values (RTK_TEE_MODE, RTK_TRACK_PATH, ...).
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return loadFrom(dir)
}

func loadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("RTK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVars(v)
	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("tee.enabled")
	v.BindEnv("tee.mode")
	v.BindEnv("tee.dir")

	v.BindEnv("output.max_passthrough")
	v.BindEnv("filter.default_level")

	v.BindEnv("track.enabled")
	v.BindEnv("track.path")

	v.BindEnv("llm.model")
	v.BindEnv("llm.api_key_env")
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("tee.enabled", false)
	v.SetDefault("tee.mode", "failures")
	v.SetDefault("tee.dir", filepath.Join(dir, "logs"))
	v.SetDefault("tee.max_files", 20)
	v.SetDefault("tee.max_file_size", 1<<20)

	v.SetDefault("output.max_passthrough", 64*1024)
	v.SetDefault("filter.default_level", "minimal")

	v.SetDefault("track.enabled", true)
	v.SetDefault("track.path", filepath.Join(dir, "usage.db"))

	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.api_key_env", "GEMINI_API_KEY")
}

// CreateDefault writes a default config.yaml if none exists. Returns the
// path written, or the existing path with created=false.
func CreateDefault() (path string, created bool, err error) {
	dir, err := Dir()
	if err != nil {
		return "", false, err
	}
	path = filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", false, fmt.Errorf("creating config directory: %w", err)
	}

	cfg, err := loadFrom(dir)
	if err != nil {
		return "", false, err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", false, fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", false, fmt.Errorf("writing default config: %w", err)
	}
	return path, true, nil
}

// Show renders the effective configuration as YAML.
func Show(cfg *Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return string(data), nil
}
