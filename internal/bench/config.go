package bench

import (
	"errors"
	"fmt"
	"time"
)

// Config controls one harness run. Forks of zero runs a single trial in the
// current process.
type Config struct {
	Warmup          int           `json:"warmup" yaml:"warmup" mapstructure:"warmup"`
	Measurement     int           `json:"measurement" yaml:"measurement" mapstructure:"measurement"`
	Forks           int           `json:"forks" yaml:"forks" mapstructure:"forks"`
	OpsPerIteration int           `json:"opsPerIteration" yaml:"opsPerIteration" mapstructure:"ops"`
	TimeUnit        time.Duration `json:"timeUnit" yaml:"timeUnit" mapstructure:"unit"`
}

var ErrInvalidConfig = errors.New("invalid benchmark config")

func DefaultConfig() Config {
	return Config{
		Warmup:          5,
		Measurement:     5,
		Forks:           1,
		OpsPerIteration: 100_000,
		TimeUnit:        time.Microsecond,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Warmup < 0:
		return fmt.Errorf("%w: warmup %d is negative", ErrInvalidConfig, c.Warmup)
	case c.Measurement <= 0:
		return fmt.Errorf("%w: measurement must be positive, got %d", ErrInvalidConfig, c.Measurement)
	case c.Forks < 0:
		return fmt.Errorf("%w: forks %d is negative", ErrInvalidConfig, c.Forks)
	case c.OpsPerIteration <= 0:
		return fmt.Errorf("%w: ops per iteration must be positive, got %d", ErrInvalidConfig, c.OpsPerIteration)
	case c.TimeUnit <= 0:
		return fmt.Errorf("%w: time unit must be positive, got %s", ErrInvalidConfig, c.TimeUnit)
	}
	return nil
}

// Unit renders the score unit, e.g. "us/op".
func (c Config) Unit() string {
	switch c.TimeUnit {
	case time.Nanosecond:
		return "ns/op"
	case time.Microsecond:
		return "us/op"
	case time.Millisecond:
		return "ms/op"
	case time.Second:
		return "s/op"
	}
	return c.TimeUnit.String() + "/op"
}
