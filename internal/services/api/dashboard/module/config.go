package module

import (
	"time"

	"posdash/internal/platform/config"
)

// Options controls the dashboard API module
type Options struct {
	// RateLimit is requests per RateWindow per client ip, zero disables
	RateLimit  int
	RateWindow time.Duration
	// LogTimeout bounds each query log write
	LogTimeout time.Duration
	// SeqIdle is how long a finished session's sequence is remembered
	SeqIdle time.Duration
}

// FromConfig reads with POSDASH_API_DASHBOARD_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("POSDASH_API_DASHBOARD_")
	return Options{
		RateLimit:  c.MayInt("RATE_LIMIT", 120),
		RateWindow: c.MayDuration("RATE_WINDOW", time.Minute),
		LogTimeout: c.MayDuration("LOG_TIMEOUT", 2*time.Second),
		SeqIdle:    c.MayDuration("SEQ_IDLE", 10*time.Minute),
	}
}
