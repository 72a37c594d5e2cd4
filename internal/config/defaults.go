package config

const (
	defaultCachePath            = "~/.cache/gamebot/games_cache.json"
	defaultRefreshIntervalHours = 24
	defaultMaxConcurrentFetches = 4
	defaultSteamAPIBaseURL      = "https://api.steampowered.com"
	defaultStoreBaseURL         = "https://store.steampowered.com"
	defaultRequestTimeout       = 15
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Steam: Steam{
			APIBaseURL:     defaultSteamAPIBaseURL,
			StoreBaseURL:   defaultStoreBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Cache: Cache{
			Path:                 defaultCachePath,
			RefreshIntervalHours: defaultRefreshIntervalHours,
			MaxConcurrentFetches: defaultMaxConcurrentFetches,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
