package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig controls how reports are rendered.
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	Color   bool   `yaml:"color"` // allowed; only used on a terminal
	Format  string `yaml:"format"`
}

type MetricsConfig struct {
	// TextfilePath is where Prometheus counters are written on exit, in the
	// node_exporter textfile format. Empty disables the flush.
	TextfilePath string `yaml:"textfile_path"`
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFmts = map[string]bool{"json": true, "text": true}
	validOutFmts = map[string]bool{"text": true, "json": true}
)

func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Verbose: false,
			Color:   true,
			Format:  "text",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown log levels and formats.
func (c *Config) Validate() error {
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if !validLogFmts[c.Logging.Format] {
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	if !validOutFmts[c.Output.Format] {
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CVSS2_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CVSS2_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CVSS2_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Output.Verbose = b
		}
	}
	if v := os.Getenv("CVSS2_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Output.Color = b
		}
	}
	if v := os.Getenv("CVSS2_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("CVSS2_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.TextfilePath = v
	}
}
