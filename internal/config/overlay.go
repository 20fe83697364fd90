package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SMSLEDGER_THRESHOLDS_PROMOTIONAL.
const EnvPrefix = "SMSLEDGER"

// Resolve builds the effective configuration: defaults, then the YAML file at
// path (a missing file is fine), then environment variables, then any flags
// already bound on v.
func Resolve(v *viper.Viper, path string) (*Config, error) {
	def := Default()
	v.SetDefault("reference.dir", def.Reference.Dir)
	v.SetDefault("thresholds.promotional", def.Thresholds.Promotional)
	v.SetDefault("thresholds.large_amount", def.Thresholds.LargeAmount)
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("batch.workers", def.Batch.Workers)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("risk_log.enabled", def.RiskLog.Enabled)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
