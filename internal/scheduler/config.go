package scheduler

import "time"

// Config controls the cache warm loop.
type Config struct {
	WarmInterval time.Duration
	JobTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		WarmInterval: time.Minute,
		JobTimeout:   30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.WarmInterval <= 0 {
		c.WarmInterval = defaults.WarmInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}
