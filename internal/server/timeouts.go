package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second

	defaultStartYear = 2026
)

// shutdownTimeout is the fallback when the config leaves it unset. It remains
// a var for tests to override.
var shutdownTimeout = 10 * time.Second
