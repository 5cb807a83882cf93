package config

import (
	"fmt"

	"streamsift/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	return c.validateRegions()
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/streamsift/config.toml"
		}
		message := fmt.Sprintf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'streamsift config init')", defaultPath)
		return services.Wrap(services.ErrConfiguration, "config", "validate", message, nil)
	}
	return nil
}

func (c *Config) validateRegions() error {
	for _, region := range c.Regions.Default {
		if len(region) != 2 {
			message := fmt.Sprintf("regions.default: %q is not a two-letter country code", region)
			return services.Wrap(services.ErrConfiguration, "config", "validate", message, nil)
		}
	}
	return nil
}
