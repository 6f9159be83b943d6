package store

import "time"

// Config aggregates backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	MinConns    int32
	MaxConnIdle time.Duration
	LogSQL      bool
	SlowQueryMs int

	// boot knobs, zero means the default
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

func (c PGConfig) withDefaults() PGConfig {
	if c.ConnectRetries <= 0 {
		c.ConnectRetries = 20
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = 3 * time.Second
	}
	return c
}
