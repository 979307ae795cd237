// SPDX-License-Identifier: MPL-2.0

// Package config loads the kct CLI configuration: a config.cue validated
// against an embedded schema, with KCT_* environment variables taking
// precedence.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"kct/pkg/cueutil"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "kct"
	// ConfigFileName is the name of the config file.
	ConfigFileName = "config.cue"
	// EnvPrefix is the prefix of overriding environment variables.
	EnvPrefix = "KCT"
)

//go:embed config_schema.cue
var configSchema []byte

// Config is the CLI configuration.
type Config struct {
	// Verbose enables debug logging by default.
	Verbose bool `json:"verbose,omitempty" mapstructure:"verbose"`

	// OutputDir is where compiled documents are written when no explicit
	// --output is given; empty means stdout.
	OutputDir string `json:"output_dir,omitempty" mapstructure:"output_dir"`
}

// dirOverride lets tests point config loading at a scratch directory.
var dirOverride string

// SetDirOverride overrides the config directory. Pass "" to reset.
func SetDirOverride(dir string) { dirOverride = dir }

// Dir returns the kct configuration directory using platform conventions:
// %APPDATA% on Windows, ~/Library/Application Support on macOS, and
// $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func Dir() (string, error) {
	if dirOverride != "" {
		return dirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// Load reads config.cue from the config directory (defaults apply when it is
// absent), validates it against the embedded schema and applies KCT_*
// environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("verbose", false)
	v.SetDefault("output_dir", "")

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, ConfigFileName)
	if data, err := os.ReadFile(path); err == nil {
		doc, err := cueutil.Decode[map[string]any](configSchema, data, "#Config", ConfigFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := v.MergeConfigMap(*doc); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}
