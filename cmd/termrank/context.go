package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/deidaraiorek/termrank/internal/config"
	"github.com/deidaraiorek/termrank/internal/logging"
)

type commandContext struct {
	configFlag *string
	viper      *viper.Viper

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce  sync.Once
	logger      *slog.Logger
	closeLogger func() error
	loggerErr   error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		viper:       viper.New(),
		closeLogger: func() error { return nil },
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = config.Load(c.viper, path)
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
		c.logger, c.closeLogger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			File:   cfg.Log.File,
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) close() error {
	return c.closeLogger()
}
