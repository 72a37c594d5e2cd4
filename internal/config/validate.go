package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSteam() error {
	if c.Steam.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/gamebot/config.toml"
		}
		return fmt.Errorf("steam.api_key is required. Set STEAM_API_KEY env var or edit %s (create with 'gamebot config init')", defaultPath)
	}
	if c.Steam.SteamID == "" {
		return fmt.Errorf("steam.steam_id is required. Set STEAM_USER_ID env var or add it to the config file")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.RefreshIntervalHours <= 0 {
		return fmt.Errorf("cache.refresh_interval_hours must be positive, got %d", c.Cache.RefreshIntervalHours)
	}
	if c.Cache.MaxConcurrentFetches <= 0 {
		return fmt.Errorf("cache.max_concurrent_fetches must be positive, got %d", c.Cache.MaxConcurrentFetches)
	}
	return nil
}
