// Package config loads server configuration from an optional YAML file
// and DIGISTYLE_-prefixed environment variables, with env taking
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Gemini   GeminiConfig   `mapstructure:"gemini" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// LogFile optionally mirrors all log output to a file.
	LogFile string `mapstructure:"log_file"`
}

// DatabaseConfig contains the storage settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// GeminiConfig contains the analysis-service settings. An empty API
// key disables analysis; the rest of the server still works.
type GeminiConfig struct {
	APIKey        string `mapstructure:"api_key"`
	ClassifyModel string `mapstructure:"classify_model" validate:"required"`
	ImageModel    string `mapstructure:"image_model" validate:"required"`
	// TimeoutSeconds bounds each analysis call. The upstream service
	// has unbounded latency; zero disables the bound.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// Timeout returns the configured analysis timeout as a duration.
func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// Load reads configuration. If file is non-empty it must exist and
// parse; otherwise a digistyle.yaml in the working directory is used
// when present. Environment variables (DIGISTYLE_SERVER_ADDR, ...)
// override file values.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_file", "")
	v.SetDefault("database.path", "digistyle.sqlite3")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.classify_model", "gemini-2.5-flash")
	v.SetDefault("gemini.image_model", "gemini-2.5-flash-image")
	v.SetDefault("gemini.timeout_seconds", 60)

	v.SetEnvPrefix("DIGISTYLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("digistyle")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
