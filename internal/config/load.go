package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load,
// e.g. COMPAT_SCHEME_FAMILY.
const EnvPrefix = "COMPAT"

// Default values applied before any file or environment source.
const (
	DefaultFamily          = "MaterialsProject"
	DefaultCompatType      = "Advanced"
	DefaultCorrectPeroxide = true
	DefaultLogLevel        = "info"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path looks for an
// optional compat.yaml in the working directory.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("scheme.family", DefaultFamily)
	v.SetDefault("scheme.compat_type", DefaultCompatType)
	v.SetDefault("scheme.correct_peroxide", DefaultCorrectPeroxide)
	v.SetDefault("scheme.aqueous", false)
	v.SetDefault("scheme.tables_dir", "")
	v.SetDefault("log.level", DefaultLogLevel)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("compat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
