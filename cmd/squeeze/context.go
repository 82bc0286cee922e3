package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"squeeze/internal/config"
	"squeeze/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
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
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// logger builds the run logger. Verbose lowers a warn-or-quieter level to
// info; debug forces debug.
func (c *commandContext) logger(stderr io.Writer, verbose, debug bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	effective := *cfg
	if verbose {
		switch effective.Logging.Level {
		case "warn", "error":
			effective.Logging.Level = "info"
		}
	}
	return logging.NewFromConfig(&effective, debug, stderr)
}
