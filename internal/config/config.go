package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the canonical configuration file name inside a books
// directory.
const FileName = "books.yaml"

// Env variables that override config values. Useful for pointing a
// command at a scratch database without editing books.yaml.
const (
	EnvDatabasePath = "SITEBOOK_DB"
	EnvCurrency     = "SITEBOOK_CURRENCY"
)

// Config represents the top-level books.yaml configuration.
type Config struct {
	Company    CompanyConfig    `yaml:"company"`
	Database   DatabaseConfig   `yaml:"database"`
	Cash       CashConfig       `yaml:"cash"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Backup     BackupConfig     `yaml:"backup"`
}

// CompanyConfig identifies the company keeping these books.
type CompanyConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // ISO 4217 display currency
}

// DatabaseConfig locates the SQLite database, relative to the books
// directory unless absolute.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CashConfig maps the cash book onto its journal account.
type CashConfig struct {
	AccountCode string `yaml:"account_code"`
}

// ThresholdsConfig controls the overview alerts.
type ThresholdsConfig struct {
	MinCollectionRatio float64 `yaml:"min_collection_ratio"` // percent
	MaxDebtToAssets    float64 `yaml:"max_debt_to_assets"`
}

// BackupConfig controls database snapshots.
type BackupConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads a books.yaml file from disk. A .env file next to it is
// loaded first, and SITEBOOK_* variables override the file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if db := os.Getenv(EnvDatabasePath); db != "" {
		cfg.Database.Path = db
	}
	if cur := os.Getenv(EnvCurrency); cur != "" {
		cfg.Company.Currency = cur
	}
	return &cfg, nil
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

// Default returns a Config with sensible defaults for a new set of
// books.
func Default(companyName string) *Config {
	return &Config{
		Company: CompanyConfig{
			Name:     companyName,
			Currency: "IQD",
		},
		Database: DatabaseConfig{
			Path: "sitebook.db",
		},
		Cash: CashConfig{
			AccountCode: "1010",
		},
		Thresholds: ThresholdsConfig{
			MinCollectionRatio: 70,
			MaxDebtToAssets:    1.0,
		},
		Backup: BackupConfig{
			Dir: "backups",
		},
	}
}
