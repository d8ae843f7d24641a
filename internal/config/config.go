// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists Courseplanner configuration. It uses Viper
// for file/env/flag parsing and goccy/go-yaml to write config files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// AppName is used for the config directory, file name and env prefix.
	AppName = "courseplanner"

	// DefaultCatalogFile is the catalog read when nothing else is configured.
	DefaultCatalogFile = "ABCU_input.txt"
)

// Config is the full application configuration.
type Config struct {
	Language string         `mapstructure:"language" yaml:"language"`
	Catalog  CatalogConfig  `mapstructure:"catalog" yaml:"catalog"`
	Audit    AuditConfig    `mapstructure:"audit" yaml:"audit"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// CatalogConfig selects the catalog source file.
type CatalogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// AuditConfig toggles the audit log.
type AuditConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// DatabaseConfig describes the audit log database.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns the built-in configuration values keyed the way Viper
// expects them.
func Defaults() map[string]any {
	return map[string]any{
		"language":      "en",
		"catalog.file":  DefaultCatalogFile,
		"audit.enabled": true,
		"database.type": "sqlite",
		"database.dsn":  "./" + AppName + ".db",
		"log.level":     "info",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Courseplanner")
		default: // Linux, macOS, etc.
			configDir = "/etc/" + AppName
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, AppName)
	}

	return filepath.Join(configDir, AppName+".yaml"), nil
}

// LoadConfig builds a T from defaults, the first config file found, the
// environment and the flags of cmd, in increasing order of precedence.
// An explicit path, when given, replaces the file search.
//
// A missing config file is reported as viper.ConfigFileNotFoundError together
// with a fully populated T so callers can decide to continue on defaults.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return c, err
		}
		notFound = err
	}

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, notFound
}

// WriteConfigFile stores c as YAML in the user (or system) config location
// and returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigFileTo(c, path)
}

// WriteConfigFileTo stores c as YAML at path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	// The DSN may carry credentials.
	return os.WriteFile(path, data, 0o600)
}
