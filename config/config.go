// Package config loads wink settings from a YAML file with sane
// defaults; command-line flags override in main.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AllowedThresholds are the selectable no-blink alert thresholds in
// seconds.
var AllowedThresholds = []int{5, 8, 10, 12, 15}

type Config struct {
	// ThresholdSeconds is the no-blink duration that raises the alert.
	ThresholdSeconds int `yaml:"threshold_seconds"`
	// Notifications enables desktop notifications alongside the beep.
	Notifications bool `yaml:"notifications"`
	// ListenAddr is where the landmark WebSocket ingest binds.
	ListenAddr string `yaml:"listen_addr"`
}

func Default() *Config {
	return &Config{
		ThresholdSeconds: 10,
		Notifications:    true,
		ListenAddr:       "127.0.0.1:8787",
	}
}

// Load reads the YAML file at path over the defaults. A missing file
// is not an error: first runs get the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !ValidThreshold(c.ThresholdSeconds) {
		return fmt.Errorf("threshold_seconds must be one of %v, got %d", AllowedThresholds, c.ThresholdSeconds)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	return nil
}

func ValidThreshold(seconds int) bool {
	for _, t := range AllowedThresholds {
		if t == seconds {
			return true
		}
	}
	return false
}

// Save writes the config back (used by the -setup picker).
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath resolves the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wink", "config.yaml"), nil
}
