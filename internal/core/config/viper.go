package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*AdvisorConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultAdvisorConfig
	v.SetDefault("advisor.domain", "valorant")
	v.SetDefault("advisor.top_k", 3)
	v.SetDefault("advisor.interval", "100ms")
	v.SetDefault("advisor.data_dir", "./data")
	v.SetDefault("advisor.catalog", "")

	// Bind environment variables with PLAYCALL_ prefix
	v.SetEnvPrefix("PLAYCALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &AdvisorConfig{
		Domain:   v.GetString("advisor.domain"),
		TopK:     v.GetInt("advisor.top_k"),
		Interval: v.GetDuration("advisor.interval"),
		DataDir:  v.GetString("advisor.data_dir"),
		Catalog:  v.GetString("advisor.catalog"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks domain presence and positive bounds for top_k and
// interval.
func validateConfig(cfg *AdvisorConfig) error {
	if cfg.Domain == "" {
		return fmt.Errorf("domain must not be empty")
	}
	if cfg.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", cfg.TopK)
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", cfg.Interval)
	}
	return nil
}
