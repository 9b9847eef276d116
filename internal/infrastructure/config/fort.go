package config

import "time"

// FortConfig holds fort scheduling tuning
type FortConfig struct {
	// TimeSkipUnit is the remaining time one premium currency unit skips
	TimeSkipUnit time.Duration `mapstructure:"time_skip_unit" validate:"mindur=1s"`

	// Per-player command rate limit
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds token bucket settings
type RateLimitConfig struct {
	// Sustained requests per second; 0 disables limiting
	Requests float64 `mapstructure:"requests" validate:"min=0"`

	// Maximum burst size
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// Enabled reports whether commands should be rate limited
func (c RateLimitConfig) Enabled() bool {
	return c.Requests > 0
}
