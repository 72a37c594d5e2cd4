package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"gamebot/internal/catalog"
	"gamebot/internal/config"
	"gamebot/internal/library"
	"gamebot/internal/logging"
	"gamebot/internal/steam"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	serviceOnce sync.Once
	service     *library.Service
	serviceErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureService wires the catalog store, the Steam client, and the library
// service once per invocation.
func (c *commandContext) ensureService() (*library.Service, error) {
	c.serviceOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.serviceErr = err
			return
		}

		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.serviceErr = err
			return
		}

		client, err := steam.New(
			cfg.Steam.APIKey,
			cfg.Steam.SteamID,
			cfg.Steam.APIBaseURL,
			cfg.Steam.StoreBaseURL,
			steam.WithTimeout(cfg.RequestTimeout()),
		)
		if err != nil {
			c.serviceErr = err
			return
		}

		store := catalog.NewStore(cfg.Cache.Path, logger)
		c.service = library.New(store, client, logger, library.Options{
			RefreshInterval:      cfg.RefreshInterval(),
			MaxConcurrentFetches: cfg.Cache.MaxConcurrentFetches,
		})
	})
	return c.service, c.serviceErr
}

func (c *commandContext) store() (*catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(cfg.Cache.Path, c.quietLogger()), nil
}

// quietLogger is for store-only commands where structured log output would
// drown the plain command output.
func (c *commandContext) quietLogger() *slog.Logger {
	return logging.NewNop()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
