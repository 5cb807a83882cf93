package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"streamsift/internal/catalog/tmdb"
	"streamsift/internal/config"
	"streamsift/internal/library"
	"streamsift/internal/logging"
	"streamsift/internal/providercache"
	"streamsift/internal/resolver"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withService runs fn with a fully wired Service. The library lock is held
// for the duration so concurrent invocations cannot interleave cache and
// library mutations.
func (c *commandContext) withService(cmd *cobra.Command, fn func(context.Context, *resolver.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	lib := library.New(cfg)
	lock := library.NewLock(lib)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	store, err := providercache.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	catalog, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return err
	}

	return fn(cmd.Context(), resolver.NewService(lib, store, catalog, logger))
}
