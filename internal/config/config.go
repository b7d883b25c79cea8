// Package config resolves benchmark settings from defaults, an optional YAML
// file, BEANMORPH_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dklassen/beanmorph/internal/bench"
)

const EnvPrefix = "BEANMORPH"

// Keys, shared by the config file, the environment and the flags.
const (
	KeyWarmup      = "warmup"
	KeyMeasurement = "measurement"
	KeyForks       = "forks"
	KeyOps         = "ops"
	KeyUnit        = "unit"
)

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	defaults := bench.DefaultConfig()
	v.SetDefault(KeyWarmup, defaults.Warmup)
	v.SetDefault(KeyMeasurement, defaults.Measurement)
	v.SetDefault(KeyForks, defaults.Forks)
	v.SetDefault(KeyOps, defaults.OpsPerIteration)
	v.SetDefault(KeyUnit, defaults.TimeUnit)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v
}

// BindFlags maps flag names onto config keys. Only flags that were set on the
// command line take precedence over the other sources.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("no flag %q for config key %q", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional config file and decodes the result.
func Load(v *viper.Viper, path string) (bench.Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return bench.Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg bench.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return bench.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return bench.Config{}, err
	}
	return cfg, nil
}
