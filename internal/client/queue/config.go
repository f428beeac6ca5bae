package queue

import (
	"time"

	"github.com/cenkalti/backoff"
)

// Defaults of Config.
const (
	DefaultMaxAttempts    = 5
	DefaultInitialBackoff = time.Second
	DefaultMaxBackoff     = 30 * time.Second
	DefaultMultiplier     = 2.0
	DefaultDrainInterval  = 5 * time.Second
)

// Config tunes retry and drain timing. Zero fields take defaults.
type Config struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	DrainInterval  time.Duration // DrainInterval период автоматической отправки
	Multiplier     float64
	Jitter         float64 // Jitter доля случайного разброса задержки, 0 = детерминированно
	MaxAttempts    int
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = DefaultInitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = DefaultMaxBackoff
	}
	if c.Multiplier < 1 {
		c.Multiplier = DefaultMultiplier
	}
	if c.DrainInterval <= 0 {
		c.DrainInterval = DefaultDrainInterval
	}
	return c
}

// RetryDelay returns how long to wait after the given number of failed
// attempts: InitialBackoff * Multiplier^(attempts-1), capped at MaxBackoff.
func (c Config) RetryDelay(attempts int) time.Duration {
	c = c.withDefaults()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.InitialBackoff
	b.MaxInterval = c.MaxBackoff
	b.Multiplier = c.Multiplier
	b.RandomizationFactor = c.Jitter
	b.MaxElapsedTime = 0
	b.Reset()

	delay := c.InitialBackoff
	for i := 0; i < attempts; i++ {
		delay = b.NextBackOff()
	}
	if delay > c.MaxBackoff {
		delay = c.MaxBackoff
	}
	return delay
}
