package config

import (
	"github.com/harshitalegal/markwatch/internal/application/watch"
	"github.com/harshitalegal/markwatch/internal/domain/renewal"
	"github.com/harshitalegal/markwatch/internal/infrastructure/monitoring/logging"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the fully-populated engine defaults: everything needed for
// a first run with no config file at all.
func Default() *Config {
	return &Config{
		Log: logging.Config{
			Level:       DefaultLogLevel,
			Format:      DefaultLogFormat,
			OutputPaths: []string{"stderr"},
		},
		Watch:   watch.DefaultOptions(),
		Renewal: renewal.DefaultWindows(),
	}
}

// ApplyDefaults fills zero-value fields in cfg with the engine defaults.
// Fields the caller set explicitly are left unchanged, so explicit
// configuration always wins.  Call it after unmarshalling and before
// Validate so defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stderr"}
	}

	def := watch.DefaultOptions()
	if cfg.Watch.Threshold == 0 {
		cfg.Watch.Threshold = def.Threshold
	}
	if cfg.Watch.EditWeight == 0 && cfg.Watch.ContainWeight == 0 {
		cfg.Watch.EditWeight = def.EditWeight
		cfg.Watch.ContainWeight = def.ContainWeight
	}
	if cfg.Watch.Tiers.High == 0 {
		cfg.Watch.Tiers.High = def.Tiers.High
	}
	if cfg.Watch.Tiers.Medium == 0 {
		cfg.Watch.Tiers.Medium = def.Tiers.Medium
	}

	if cfg.Renewal.Urgent == 0 {
		cfg.Renewal.Urgent = renewal.DefaultWindows().Urgent
	}
	if cfg.Renewal.Upcoming == 0 {
		cfg.Renewal.Upcoming = renewal.DefaultWindows().Upcoming
	}
}
