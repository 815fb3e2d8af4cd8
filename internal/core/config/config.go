// Package config provides configuration management for playcall commands.
package config

import "time"

// AdvisorConfig holds configuration for the advisor loop and one-shot
// evaluation commands.
type AdvisorConfig struct {
	Domain   string
	TopK     int
	Interval time.Duration
	DataDir  string
	Catalog  string // optional catalog JSON path overriding the builtin
}

// DefaultAdvisorConfig returns configuration with default values.
func DefaultAdvisorConfig() *AdvisorConfig {
	return &AdvisorConfig{
		Domain:   "valorant",
		TopK:     3,
		Interval: 100 * time.Millisecond,
		DataDir:  "./data",
		Catalog:  "",
	}
}
