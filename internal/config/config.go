// Package config loads the dashboard configuration from a YAML file with
// environment variable overrides. Decoding is strict: unknown keys,
// including unknown theme override keys, are rejected.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/scheme"
)

type Config struct {
	Output  OutputConfig     `mapstructure:"output"`
	Theme   string           `mapstructure:"theme"` // "blackly" or "tradimo"
	Scheme  scheme.Overrides `mapstructure:"scheme"`
	Archive ArchiveConfig    `mapstructure:"archive"`
	Server  ServerConfig     `mapstructure:"server"`
	Metrics MetricsConfig    `mapstructure:"metrics"`
}

type OutputConfig struct {
	Filename string `mapstructure:"filename"`
	Title    string `mapstructure:"title"`
	Open     bool   `mapstructure:"open"` // open the document in a browser after writing
}

type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // for localfs
	Prefix  string   `mapstructure:"prefix"`
	S3      S3Config `mapstructure:"s3"` // for s3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("reading config: %w", err))
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.UnmarshalExact(cfg); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unmarshaling config: %w", err))
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			Filename: "backplot.html",
			Title:    "backplot",
			Open:     false,
		},
		Theme: "blackly",
		Archive: ArchiveConfig{
			Enabled: false,
			Type:    "localfs",
			Path:    "archive",
			Prefix:  "reports",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// BaseScheme returns the named theme with the configured overrides
// applied.
func (c *Config) BaseScheme() (*scheme.Scheme, error) {
	var s *scheme.Scheme
	switch c.Theme {
	case "", "blackly":
		s = scheme.Blackly()
	case "tradimo":
		s = scheme.Tradimo()
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown theme %q", c.Theme))
	}

	c.Scheme.Apply(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Output.Filename == "" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("output filename cannot be empty"))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Archive.Type {
	case "localfs":
		if c.Archive.Enabled && c.Archive.Path == "" {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("archive path cannot be empty for localfs"))
		}
	case "s3":
		if c.Archive.Enabled && c.Archive.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("s3 bucket cannot be empty"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type %q", c.Archive.Type))
	}

	if _, err := c.BaseScheme(); err != nil {
		return err
	}

	return nil
}
