package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name in a project directory.
const FileName = "statebank.yaml"

// Config represents the top-level statebank.yaml configuration.
type Config struct {
	Bank BankConfig `yaml:"bank"`
	Data DataConfig `yaml:"data"`
	Lock LockConfig `yaml:"lock"`
}

// BankConfig identifies the bank for display purposes.
type BankConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// DataConfig locates the shared data file.
type DataConfig struct {
	File string `yaml:"file"` // relative paths resolve against the config dir
}

// LockConfig controls the data file lock.
type LockConfig struct {
	TimeoutSeconds    int `yaml:"timeout_seconds"`
	PollMillis        int `yaml:"poll_millis"`
	BreakAfterSeconds int `yaml:"break_after_seconds"` // 0 = never break orphaned locks
}

// Timeout returns the lock acquisition timeout.
func (l LockConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Poll returns the lock polling interval.
func (l LockConfig) Poll() time.Duration {
	return time.Duration(l.PollMillis) * time.Millisecond
}

// BreakAfter returns the orphaned-sentinel age, zero meaning never break.
func (l LockConfig) BreakAfter() time.Duration {
	return time.Duration(l.BreakAfterSeconds) * time.Second
}

// Load reads a statebank.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
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

// Default returns a Config with sensible defaults for a new project.
func Default(bankName string) *Config {
	return &Config{
		Bank: BankConfig{
			Name:     bankName,
			Currency: "₹",
		},
		Data: DataConfig{
			File: "data/bank.tab",
		},
		Lock: LockConfig{
			TimeoutSeconds:    10,
			PollMillis:        200,
			BreakAfterSeconds: 60,
		},
	}
}
