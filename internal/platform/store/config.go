package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds boot pings before Open gives up, 20 when zero
	ConnectRetries int
	// PingTimeout bounds each boot ping, 3s when zero
	PingTimeout time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
	// Tag is reported to clickhouse as the client version
	Tag string
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled bool
	// URL is a redis:// url, db and auth ride in the url
	URL         string
	PingTimeout time.Duration // default 5s
}
