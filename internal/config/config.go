package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"trade-reconciliation/internal/compare"
)

// Config holds all application configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Stores struct {
		BankPath         string `yaml:"bank_path"`
		CounterpartyPath string `yaml:"counterparty_path"`
	} `yaml:"stores"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Matching struct {
		NotionalTolerance  float64 `yaml:"notional_tolerance"`
		NotionalOuterBound float64 `yaml:"notional_outer_bound"`
		DateToleranceDays  int     `yaml:"date_tolerance_days"`
		DateOuterDays      int     `yaml:"date_outer_days"`
		FuzzyThreshold     float64 `yaml:"fuzzy_threshold"`
	} `yaml:"matching"`

	Policy struct {
		CacheTTL      time.Duration `yaml:"cache_ttl"`
		RecomputeCron string        `yaml:"recompute_cron"`
	} `yaml:"policy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BANK_STORE_PATH"); v != "" {
		cfg.Stores.BankPath = v
	}
	if v := os.Getenv("COUNTERPARTY_STORE_PATH"); v != "" {
		cfg.Stores.CounterpartyPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("POLICY_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Policy.CacheTTL = d
		}
	}
	if v := os.Getenv("POLICY_RECOMPUTE_CRON"); v != "" {
		cfg.Policy.RecomputeCron = v
	}

	// Defaults
	def := compare.DefaultTolerances()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/reconciliation.db"
	}
	if cfg.Matching.NotionalTolerance == 0 {
		cfg.Matching.NotionalTolerance = def.NotionalTolerance
	}
	if cfg.Matching.NotionalOuterBound == 0 {
		cfg.Matching.NotionalOuterBound = def.NotionalOuterBound
	}
	if cfg.Matching.DateToleranceDays == 0 {
		cfg.Matching.DateToleranceDays = def.DateToleranceDays
	}
	if cfg.Matching.DateOuterDays == 0 {
		cfg.Matching.DateOuterDays = def.DateOuterDays
	}
	if cfg.Matching.FuzzyThreshold == 0 {
		cfg.Matching.FuzzyThreshold = def.FuzzyThreshold
	}
	if cfg.Policy.CacheTTL == 0 {
		cfg.Policy.CacheTTL = 5 * time.Minute
	}
	if cfg.Policy.RecomputeCron == "" {
		cfg.Policy.RecomputeCron = "0 0 * * * *"
	}

	return cfg, nil
}

// Tolerances returns the configured comparison tolerance bands.
func (c *Config) Tolerances() compare.Tolerances {
	return compare.Tolerances{
		NotionalTolerance:  c.Matching.NotionalTolerance,
		NotionalOuterBound: c.Matching.NotionalOuterBound,
		DateToleranceDays:  c.Matching.DateToleranceDays,
		DateOuterDays:      c.Matching.DateOuterDays,
		FuzzyThreshold:     c.Matching.FuzzyThreshold,
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.Stores.BankPath == "" {
		return fmt.Errorf("stores.bank_path is required")
	}
	if c.Stores.CounterpartyPath == "" {
		return fmt.Errorf("stores.counterparty_path is required")
	}
	if c.Matching.NotionalOuterBound <= c.Matching.NotionalTolerance {
		return fmt.Errorf("matching.notional_outer_bound must exceed the tolerance")
	}
	if c.Matching.DateOuterDays <= c.Matching.DateToleranceDays {
		return fmt.Errorf("matching.date_outer_days must exceed the tolerance")
	}
	return nil
}
