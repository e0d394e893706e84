package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.Pages < 1 || c.Pages > MaxPages {
		return fmt.Errorf("pages must be between 1 and %d", MaxPages)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must be >= 0")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must be >= 0")
	}
	if !strings.Contains(c.BaseURLTemplate, "%s") {
		return fmt.Errorf("base url template must contain a %%s city placeholder")
	}
	return nil
}
