package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateCueMerge(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAlignment() error {
	if c.Alignment.MaxWindow < 1 {
		return errors.New("alignment.max_window must be at least 1")
	}
	if c.Alignment.MaxWindow > 20 {
		return errors.New("alignment.max_window above 20 makes the window search intractable")
	}
	return nil
}

func (c *Config) validateCueMerge() error {
	if c.CueMerge.MaxGapMs < 0 {
		return errors.New("cue_merge.max_gap_ms must not be negative")
	}
	if c.CueMerge.MaxLineRunes < 0 {
		return errors.New("cue_merge.max_line_runes must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
