// Package config resolves run configuration from the environment and loads
// the endpoint list file.
//
// Configuration follows the environment variables MAX_CONCURRENCY,
// HTTP_TIMEOUT, and OUTPUT_FILE, with an optional statusreport.yaml file
// in the working directory as a lower-precedence source. Invalid values
// are fatal: they are reported before any network activity happens.
package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

const (
	defaultMaxConcurrency = 50
	defaultHTTPTimeout    = 5 // seconds
	defaultOutputFile     = "report.json"
)

// Config holds the settings for one report run.
type Config struct {
	// MaxConcurrency caps the number of in-flight status fetches.
	MaxConcurrency int `mapstructure:"max_concurrency"`

	// HTTPTimeout is the per-fetch timeout in whole seconds.
	HTTPTimeout int `mapstructure:"http_timeout"`

	// OutputFile is the path the JSON report artifact is written to.
	OutputFile string `mapstructure:"output_file"`
}

// Load resolves configuration from defaults, an optional statusreport.yaml
// in the working directory, and the environment (highest precedence).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("max_concurrency", defaultMaxConcurrency)
	v.SetDefault("http_timeout", defaultHTTPTimeout)
	v.SetDefault("output_file", defaultOutputFile)

	v.SetConfigName("statusreport")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// no config file is fine, defaults and environment apply
	}

	// typed getters rather than Unmarshal: environment values arrive as
	// strings, and a value that does not parse becomes 0 here and is
	// rejected by Validate below
	cfg := Config{
		MaxConcurrency: v.GetInt("max_concurrency"),
		HTTPTimeout:    v.GetInt("http_timeout"),
		OutputFile:     v.GetString("output_file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxConcurrency,
			validation.Required,
			validation.Min(1),
		),
		validation.Field(&c.HTTPTimeout,
			validation.Required,
			validation.Min(1),
		),
		validation.Field(&c.OutputFile,
			validation.Required,
		),
	)
}

// Timeout returns the per-fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}
