package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file.
const FileName = "smsledger.yaml"

// Config represents the top-level smsledger.yaml configuration.
type Config struct {
	Reference  ReferenceConfig  `yaml:"reference" mapstructure:"reference"`
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
	RiskLog    RiskLogConfig    `yaml:"risk_log" mapstructure:"risk_log"`
}

// ReferenceConfig locates the reference tables.
type ReferenceConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // relative to the project root
}

// ThresholdsConfig tunes the classifier.
type ThresholdsConfig struct {
	Promotional float64 `yaml:"promotional" mapstructure:"promotional"`
	LargeAmount float64 `yaml:"large_amount" mapstructure:"large_amount"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BatchConfig sizes the batch worker pool. Zero means one worker per CPU.
type BatchConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// RiskLogConfig controls the high-risk message log.
type RiskLogConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// Load reads a smsledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Reference: ReferenceConfig{
			Dir: "reference",
		},
		Thresholds: ThresholdsConfig{
			Promotional: 0.3,
			LargeAmount: 100000,
		},
		Store: StoreConfig{
			Path: filepath.Join("data", "smsledger.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		RiskLog: RiskLogConfig{
			Enabled: true,
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Thresholds.Promotional <= 0 || c.Thresholds.Promotional > 1 {
		return fmt.Errorf("thresholds.promotional must be in (0, 1], got %v", c.Thresholds.Promotional)
	}
	if c.Thresholds.LargeAmount <= 0 {
		return fmt.Errorf("thresholds.large_amount must be positive, got %v", c.Thresholds.LargeAmount)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	if c.Reference.Dir == "" {
		return fmt.Errorf("reference.dir must be set")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must be set")
	}
	return nil
}

// ReferenceDir resolves the reference directory against the project root.
func (c *Config) ReferenceDir(root string) string {
	return resolve(root, c.Reference.Dir)
}

// StorePath resolves the database path against the project root.
func (c *Config) StorePath(root string) string {
	return resolve(root, c.Store.Path)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
