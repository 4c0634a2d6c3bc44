// Package config provides configuration types, defaults, and loading for kisspad.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/kisspad/fs"
	"github.com/fwojciec/kisspad/log"
	"github.com/fwojciec/kisspad/tracing"
	"github.com/spf13/viper"
)

// Config holds all configuration options for kisspad.
type Config struct {
	Theme         string         `mapstructure:"theme" yaml:"theme"` // "light" (default) or "dark"
	TabWidth      int            `mapstructure:"tab_width" yaml:"tab_width"`
	Debug         bool           `mapstructure:"debug" yaml:"debug"`
	LogFile       string         `mapstructure:"log_file" yaml:"log_file"`
	Diagnostics   string         `mapstructure:"diagnostics" yaml:"diagnostics"` // Diagnostics file to watch
	Workers       int            `mapstructure:"workers" yaml:"workers"`         // Files rendered in parallel
	WatchDebounce time.Duration  `mapstructure:"watch_debounce" yaml:"watch_debounce"`
	Export        ExportConfig   `mapstructure:"export" yaml:"export"`
	Tracing       tracing.Config `mapstructure:"tracing" yaml:"tracing"`
}

// ExportConfig holds options for the render command.
type ExportConfig struct {
	Format      string `mapstructure:"format" yaml:"format"`
	LineNumbers bool   `mapstructure:"line_numbers" yaml:"line_numbers"`
}

// EnvPrefix prefixes environment overrides, e.g. KISSPAD_THEME.
const EnvPrefix = "KISSPAD"

// DefaultPath is the project-local config file location.
const DefaultPath = ".kisspad/config.yaml"

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme:         "light",
		TabWidth:      8,
		Workers:       4,
		WatchDebounce: 200 * time.Millisecond,
		Export: ExportConfig{
			Format: "html",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// SetDefaults registers the defaults on v so that flags, environment and
// files override them key by key.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("tab_width", d.TabWidth)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("diagnostics", d.Diagnostics)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("watch_debounce", d.WatchDebounce)
	v.SetDefault("export.format", d.Export.Format)
	v.SetDefault("export.line_numbers", d.Export.LineNumbers)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Load reads configuration into a Config. When path is empty the lookup order
// is .kisspad/config.yaml, then config.yaml in fs.DefaultConfigDir(); a missing file
// is not an error. Environment variables prefixed with KISSPAD_ override file
// values.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(DefaultPath); err == nil {
		v.SetConfigFile(DefaultPath)
	} else {
		v.AddConfigPath(fs.DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "no config file found, using defaults")
	} else {
		log.Debug(log.CatConfig, "loaded config", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks option values.
func (c Config) Validate() error {
	switch c.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("config: theme must be light or dark, got %q", c.Theme)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("config: tab_width must be positive, got %d", c.TabWidth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("config: watch_debounce cannot be negative, got %s", c.WatchDebounce)
	}
	return nil
}
