package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/harshitalegal/markwatch/pkg/errors"
)

// envPrefix is the environment variable prefix for all engine settings.
const envPrefix = "MARKWATCH"

// newViper builds a pre-configured viper instance: YAML file type,
// MARKWATCH_ env prefix, automatic env binding, and a key replacer mapping
// "." to "_" so nested keys like "watch.threshold" resolve to
// MARKWATCH_WATCH_THRESHOLD.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Every key needs a registered default: viper only consults the
	// environment for keys it already knows about, and booleans cannot be
	// defaulted after unmarshalling (false is indistinguishable from unset).
	def := Default()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.output_paths", def.Log.OutputPaths)
	v.SetDefault("watch.threshold", def.Watch.Threshold)
	v.SetDefault("watch.edit_weight", def.Watch.EditWeight)
	v.SetDefault("watch.contain_weight", def.Watch.ContainWeight)
	v.SetDefault("watch.tiers.high", def.Watch.Tiers.High)
	v.SetDefault("watch.tiers.medium", def.Watch.Tiers.Medium)
	v.SetDefault("watch.class_prefilter", def.Watch.ClassPrefilter)
	v.SetDefault("watch.workers", def.Watch.Workers)
	v.SetDefault("renewal.urgent", def.Renewal.Urgent)
	v.SetDefault("renewal.upcoming", def.Renewal.Upcoming)

	return v
}

// Load reads the YAML file at configPath, merges MARKWATCH_* environment
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigNotFound,
			"failed to read config file "+configPath)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from MARKWATCH_* environment variables alone,
// with no config file required.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// unmarshalAndFinalize unmarshals viper state into a Config, applies
// defaults, and validates.  Every failure is a configuration error; callers
// must abort before any matching starts.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid,
			"failed to unmarshal configuration")
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is a convenience wrapper around Load that panics on any error, for
// use in main where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic("config: MustLoad failed: " + err.Error())
	}
	return cfg
}
