// Package config loads CLI settings from a config file, FLUENTCHECK_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the CLI settings.
type Config struct {
	// Language selects issue messages ("en" or "ja").
	Language string `mapstructure:"language"`
	// Draft is the JSON Schema dialect for raw schema documents.
	Draft string `mapstructure:"draft"`
	// AssertFormat makes the format keyword a constraint.
	AssertFormat bool `mapstructure:"assert_format"`
	// RejectDuplicateKeys reports repeated keys in JSON documents.
	RejectDuplicateKeys bool `mapstructure:"reject_duplicate_keys"`
	// LogLevel is the charmbracelet/log level name.
	LogLevel string `mapstructure:"log_level"`
}

// EnvPrefix is prepended to environment variable names (FLUENTCHECK_DRAFT).
const EnvPrefix = "FLUENTCHECK"

// Load reads configuration with precedence (highest to lowest):
// 1. Environment variables (FLUENTCHECK_LANGUAGE, ...)
// 2. The file at path, or .fluentcheck.yaml in the working directory
// 3. Built-in defaults
//
// A missing default file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".fluentcheck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "en")
	v.SetDefault("draft", "2020-12")
	v.SetDefault("assert_format", true)
	v.SetDefault("reject_duplicate_keys", false)
	v.SetDefault("log_level", "warn")
}

func (c *Config) validate() error {
	switch c.Language {
	case "en", "ja":
	default:
		return fmt.Errorf("config: unsupported language %q", c.Language)
	}
	return nil
}
