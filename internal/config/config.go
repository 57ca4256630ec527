// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration loaded from file, environment and
// command line flags.
type Config struct {
	Database Database `mapstructure:"database" yaml:"database"`
	Language string   `mapstructure:"language" yaml:"language"`
	Debug    bool     `mapstructure:"debug" yaml:"debug"`
}

// Database selects the persistence backend.
type Database struct {
	Type string `mapstructure:"type" yaml:"type"`
	DSN  string `mapstructure:"dsn" yaml:"dsn"`
}

// Defaults are applied before any file, environment or flag values.
var Defaults = map[string]any{
	"database.type": "sqlite",
	"database.dsn":  "./credmaster.db",
	"language":      "en",
	"debug":         false,
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Credmaster")
		default: // Linux, macOS, etc.
			configDir = "/etc/credmaster"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "credmaster")
	}

	return filepath.Join(configDir, "credmaster.yaml"), nil
}

// LoadConfig builds the effective configuration. Precedence, lowest to
// highest: Defaults, config file, CREDMASTER_* environment variables, flags
// bound on cmd.
func LoadConfig(cmd *cobra.Command, explicitFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("credmaster")
	v.SetConfigType("yaml")

	// An explicit --config path has the highest file precedence.
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("credmaster")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return c, err
	}
	// Flags whose names differ from their config keys are bound explicitly.
	for key, flagName := range map[string]string{
		"database.type": "db-type",
		"database.dsn":  "db-dsn",
		"language":      "lang",
	} {
		f := cmd.Flags().Lookup(flagName)
		if f == nil {
			f = cmd.PersistentFlags().Lookup(flagName)
		}
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists the configuration as YAML to the standard user or
// system location.
func WriteConfigFile(c *Config, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600 since the DSN may carry credentials.
	return os.WriteFile(path, data, 0600)
}
