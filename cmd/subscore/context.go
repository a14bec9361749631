package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"subscore/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// resolveInputPath maps a relative input argument that does not exist in the
// working directory to the configured data directory, so episodes stored
// under paths.data_dir can be named by file alone.
func resolveInputPath(cfg *config.Config, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if cfg == nil || cfg.Paths.DataDir == "" {
		return path
	}
	candidate := filepath.Join(cfg.Paths.DataDir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
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
		c.config = cfg
	})
	return c.config, c.configErr
}
