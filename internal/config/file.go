package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout of the optional config file. Pointer
// fields distinguish "absent" from a zero value so the file only overrides
// what it actually sets.
type fileConfig struct {
	LogLevel  string `yaml:"log_level"`
	JSONLog   *bool  `yaml:"json_log"`
	UserAgent string `yaml:"user_agent"`
	Referer   string `yaml:"referer"`
	BaseURL   string `yaml:"base_url"`
	Proxy     string `yaml:"proxy"`
	Timeout   string `yaml:"timeout"`
	Pages     *int   `yaml:"pages"`
	Delay     string `yaml:"delay"`
	Retries   *int   `yaml:"retries"`
}

// applyFile overlays settings from a YAML file onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.JSONLog != nil {
		cfg.JSONLog = *fc.JSONLog
	}
	if fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if fc.Referer != "" {
		cfg.Referer = fc.Referer
	}
	if fc.BaseURL != "" {
		cfg.BaseURLTemplate = fc.BaseURL
	}
	if fc.Proxy != "" {
		cfg.Proxy = fc.Proxy
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if fc.Pages != nil {
		cfg.Pages = *fc.Pages
	}
	if fc.Delay != "" {
		d, err := time.ParseDuration(fc.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay in config file: %w", err)
		}
		cfg.Delay = d
	}
	if fc.Retries != nil {
		cfg.Retries = *fc.Retries
	}

	return nil
}
