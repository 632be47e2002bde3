// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/logger"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server      ServerConfig       `yaml:"server"`
	Logging     LoggingConfig      `yaml:"logging"`
	Fees        FeesConfig         `yaml:"fees"`
	Preferences domain.Preferences `yaml:"preferences"`
	Tracing     TracingConfig      `yaml:"tracing"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string          `yaml:"host"`
	Port            int             `yaml:"port"`
	ReadTimeout     time.Duration   `yaml:"read_timeout"`
	WriteTimeout    time.Duration   `yaml:"write_timeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines the API token bucket.
type RateLimitConfig struct {
	Enabled   bool    `yaml:"enabled"`
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TracingConfig defines OTLP trace export.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // OTLP/gRPC collector host:port
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
	ServiceName string  `yaml:"service_name"`
}

// FeesConfig overrides parts of the default fee schedule.
type FeesConfig struct {
	// DefaultRate is used when no keyword matches. Nil keeps 0.10.
	DefaultRate *float64 `yaml:"default_rate"`
	// Keywords replaces the keyword table. Order is match priority.
	Keywords []fees.KeywordRate `yaml:"keywords"`
}

// Schedule builds the fee schedule described by f.
func (f *FeesConfig) Schedule() *fees.Schedule {
	s := fees.DefaultSchedule()
	if len(f.Keywords) > 0 {
		s = s.WithKeywords(f.Keywords)
	}
	if f.DefaultRate != nil {
		s.DefaultRate = *f.DefaultRate
	}
	return s
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// LoadEnv loads KEY=VALUE pairs from a dotenv file into the process
// environment so they are visible to ${VAR} substitution. Variables already
// set are not overridden. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// Parse decodes YAML config content. Environment variables are expanded
// before decoding.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
	applyPreferenceDefaults(&cfg.Preferences)
	applyTracingDefaults(&cfg.Tracing)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 10 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 10 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
	if s.RateLimit.PerSecond == 0 {
		s.RateLimit.PerSecond = 20
	}
	if s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = 40
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = logger.FormatText
	}
}

func applyPreferenceDefaults(p *domain.Preferences) {
	if p.TargetMarginRate == 0 {
		p.TargetMarginRate = fees.DefaultTargetMargin
	}
	if p.DisplayMode == "" {
		p.DisplayMode = domain.DisplaySimple
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
	if t.ServiceName == "" {
		t.ServiceName = "rgm"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be 1-65535 (got %d)", cfg.Server.Port))
	}
	if cfg.Server.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit.per_second must not be negative"))
	}
	if cfg.Server.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit.burst must not be negative"))
	}

	if err := logger.Validate(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if t := cfg.Preferences.TargetMarginRate; t < 0 || t >= 100 {
		errs = append(
			errs,
			fmt.Errorf("preferences.target_margin_rate must be in [0,100) (got %v)", t),
		)
	}
	if !cfg.Preferences.DisplayMode.Valid() {
		errs = append(
			errs,
			fmt.Errorf(
				"preferences.display_mode must be one of: simple, detailed (got %q)",
				cfg.Preferences.DisplayMode,
			),
		)
	}

	if r := cfg.Tracing.SampleRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be in [0,1] (got %v)", r))
	}

	if err := cfg.Fees.Schedule().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("fees: %w", err))
	}

	return errors.Join(errs...)
}
