// Package config defines the configuration structures for the markwatch
// engine and their loading from file and environment.  Only plain data types
// and validation live in this file; I/O is in loader.go.
package config

import (
	"github.com/harshitalegal/markwatch/internal/application/watch"
	"github.com/harshitalegal/markwatch/internal/domain/renewal"
	"github.com/harshitalegal/markwatch/internal/infrastructure/monitoring/logging"
)

// Config is the root configuration for the engine.  Every component reads
// its settings from the relevant sub-struct.
type Config struct {
	Log     logging.Config  `mapstructure:"log"`
	Watch   watch.Options   `mapstructure:"watch"`
	Renewal renewal.Windows `mapstructure:"renewal"`
}

// Validate performs semantic validation of the fully-populated Config.  Any
// error is a fatal configuration error: the run must abort before matching
// starts, never degrade to partial defaults.
func (c *Config) Validate() error {
	if err := c.Watch.Validate(); err != nil {
		return err
	}
	if err := c.Renewal.Validate(); err != nil {
		return err
	}
	return nil
}
