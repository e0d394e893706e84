package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string
	Referer     string
	Proxy       string

	// Site
	BaseURLTemplate string

	// Fetch behavior
	Pages   int
	Delay   time.Duration
	Retries int
}

// Load builds a Config by combining defaults, an optional YAML config file,
// environment variables, and CLI flags — later sources win.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		HTTPTimeout:     DefaultHTTPTimeout,
		UserAgent:       DefaultUserAgent,
		Referer:         DefaultReferer,
		BaseURLTemplate: DefaultBaseURLTemplate,
		Pages:           DefaultPages,
		Delay:           DefaultDelay,
		Retries:         DefaultRetries,
	}

	// Optional config file, path from the --config flag
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil {
			if path := f.Value.String(); path != "" {
				if err := applyFile(cfg, path); err != nil {
					return nil, err
				}
			}
		}
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("ZUFANG_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("ZUFANG_REFERER"); v != "" {
		cfg.Referer = v
	}
	if v := os.Getenv("ZUFANG_BASE_URL"); v != "" {
		cfg.BaseURLTemplate = v
	}
	if v := os.Getenv("ZUFANG_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("referer"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Referer = s
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxy = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.HTTPTimeout = d
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
