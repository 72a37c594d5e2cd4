package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSteam(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSteam() error {
	c.Steam.APIKey = strings.TrimSpace(c.Steam.APIKey)
	if c.Steam.APIKey == "" {
		if value, ok := os.LookupEnv("STEAM_API_KEY"); ok {
			c.Steam.APIKey = strings.TrimSpace(value)
		}
	}
	c.Steam.SteamID = strings.TrimSpace(c.Steam.SteamID)
	if c.Steam.SteamID == "" {
		if value, ok := os.LookupEnv("STEAM_USER_ID"); ok {
			c.Steam.SteamID = strings.TrimSpace(value)
		}
	}
	c.Steam.APIBaseURL = strings.TrimSpace(c.Steam.APIBaseURL)
	if c.Steam.APIBaseURL == "" {
		c.Steam.APIBaseURL = defaultSteamAPIBaseURL
	}
	c.Steam.StoreBaseURL = strings.TrimSpace(c.Steam.StoreBaseURL)
	if c.Steam.StoreBaseURL == "" {
		c.Steam.StoreBaseURL = defaultStoreBaseURL
	}
	if c.Steam.RequestTimeout <= 0 {
		c.Steam.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

func (c *Config) normalizeCache() error {
	var err error
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	if c.Cache.RefreshIntervalHours <= 0 {
		c.Cache.RefreshIntervalHours = defaultRefreshIntervalHours
	}
	if c.Cache.MaxConcurrentFetches <= 0 {
		c.Cache.MaxConcurrentFetches = defaultMaxConcurrentFetches
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
