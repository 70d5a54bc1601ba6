// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
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

// Config holds the application-wide settings resolved from file, environment
// and command-line flags.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Language string         `mapstructure:"language"`
	Debug    bool           `mapstructure:"debug"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Type string `mapstructure:"type"`
	DSN  string `mapstructure:"dsn"`
}

// Defaults returns the baseline settings used when nothing else is configured.
func Defaults() map[string]any {
	return map[string]any{
		"database.type": "sqlite",
		"database.dsn":  "./vault.db",
		"language":      "en",
		"debug":         false,
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "ElsakrVault")
		default: // Linux, macOS, etc.
			configDir = "/etc/elsakr-vault"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "elsakr-vault")
	}

	return filepath.Join(configDir, "vault.yaml"), nil
}

// LoadConfig resolves the effective configuration with the usual precedence:
// defaults, then config file, then ELSAKR_* environment variables, then
// command-line flags. An explicit config file path wins over the search
// locations.
func LoadConfig(cmd *cobra.Command, configFilePath string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("vault")
	v.SetConfigType("yaml")

	if configFilePath != "" {
		v.SetConfigFile(configFilePath)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("elsakr")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists the configuration as YAML in the user or system
// config directory.
func WriteConfigFile(c *Config, system bool) error {
	path, err := getConfigPath(system)
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

	// 0600 since the DSN may contain database credentials.
	return os.WriteFile(path, data, 0600)
}
