package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/txrisk/internal/risk"
)

// Config represents the top-level txrisk.yaml configuration.
type Config struct {
	Limits  LimitsConfig  `yaml:"limits"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logging LoggingConfig `yaml:"logging"`
}

// LimitsConfig bounds the in-memory graph.
type LimitsConfig struct {
	MaxAccounts int `yaml:"max_accounts"` // 0 = unbounded
}

// ScoringConfig controls risk penalties.
type ScoringConfig struct {
	Threshold         float64 `yaml:"threshold"`
	HighVolumePenalty float64 `yaml:"high_volume_penalty"`
	CyclePenalty      float64 `yaml:"cycle_penalty"`
	CycleMode         string  `yaml:"cycle_mode"` // reachable|member
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}

// Environment variables that override file settings.
const (
	EnvMaxAccounts = "TXRISK_MAX_ACCOUNTS"
	EnvThreshold   = "TXRISK_THRESHOLD"
	EnvCycleMode   = "TXRISK_CYCLE_MODE"
	EnvLogLevel    = "TXRISK_LOG_LEVEL"
	EnvLogFormat   = "TXRISK_LOG_FORMAT"
)

// DefaultMaxAccounts is the account limit for a new configuration.
const DefaultMaxAccounts = 100

// Default returns a Config with the standard limits and penalties.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxAccounts: DefaultMaxAccounts,
		},
		Scoring: ScoringConfig{
			Threshold:         risk.DefaultThreshold,
			HighVolumePenalty: risk.DefaultHighVolumePenalty,
			CyclePenalty:      risk.DefaultCyclePenalty,
			CycleMode:         string(risk.CycleModeReachable),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a txrisk.yaml file from disk. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error. Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg fields from TXRISK_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup(EnvMaxAccounts); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvMaxAccounts, v, err)
		}
		c.Limits.MaxAccounts = n
	}
	if v, ok := lookup(EnvThreshold); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvThreshold, v, err)
		}
		c.Scoring.Threshold = f
	}
	if v, ok := lookup(EnvCycleMode); ok {
		c.Scoring.CycleMode = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Logging.Format = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Limits.MaxAccounts < 0 {
		return fmt.Errorf("limits.max_accounts must be >= 0, got %d", c.Limits.MaxAccounts)
	}
	if c.Scoring.Threshold < 0 {
		return fmt.Errorf("scoring.threshold must be >= 0, got %v", c.Scoring.Threshold)
	}
	if c.Scoring.HighVolumePenalty < 0 || c.Scoring.CyclePenalty < 0 {
		return fmt.Errorf("scoring penalties must be >= 0")
	}
	if _, err := risk.ParseCycleMode(c.Scoring.CycleMode); err != nil {
		return fmt.Errorf("scoring.cycle_mode: %w", err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

// RiskConfig returns the scoring parameters. Call Validate first.
func (c *Config) RiskConfig() risk.Config {
	mode, _ := risk.ParseCycleMode(c.Scoring.CycleMode)
	return risk.Config{
		Threshold:         c.Scoring.Threshold,
		HighVolumePenalty: c.Scoring.HighVolumePenalty,
		CyclePenalty:      c.Scoring.CyclePenalty,
		Mode:              mode,
	}
}
