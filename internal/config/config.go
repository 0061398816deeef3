// Package config manages envgate configuration from files and environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds envgate configuration.
type Config struct {
	// BashPath is the path to the bash binary. Empty means find via PATH.
	BashPath string `mapstructure:"bash_path"`

	// CaptureMode selects how the subprocess reports its environment:
	// "declare" (parse `declare -x` output) or "env" (parse `env` output).
	CaptureMode string `mapstructure:"capture_mode"`

	// Verbose makes commands log when no .envrc file is found.
	Verbose bool `mapstructure:"verbose"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		BashPath:    "",
		CaptureMode: "declare",
		Verbose:     false,
	}
}

// Load reads configuration from file and environment variables.
// Configuration is loaded from (in order of precedence):
//  1. Environment variables (ENVGATE_*)
//  2. Config file ($XDG_CONFIG_HOME/envgate/config.toml or ~/.config/envgate/config.toml)
//  3. Default values
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("bash_path", "")
	v.SetDefault("capture_mode", "declare")
	v.SetDefault("verbose", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		v.AddConfigPath(filepath.Join(xdgConfig, "envgate"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "envgate"))
	}

	v.SetEnvPrefix("ENVGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; only real read errors surface.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
