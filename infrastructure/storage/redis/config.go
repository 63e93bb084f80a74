// Package redis provides a Redis-backed tool result cache.
package redis

import (
	"time"
)

// Config holds the Redis connection settings.
type Config struct {
	// Address is the server address (host:port).
	Address string

	// Password authenticates the connection when set.
	Password string

	// DB selects the database index.
	DB int

	// KeyPrefix namespaces every key written by this assistant.
	KeyPrefix string

	// MaxRetries bounds command retries before giving up.
	MaxRetries int

	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration

	// ReadTimeout bounds socket reads.
	ReadTimeout time.Duration

	// WriteTimeout bounds socket writes.
	WriteTimeout time.Duration

	// PoolSize is the maximum number of pooled connections.
	PoolSize int

	// MinIdleConns keeps this many connections warm.
	MinIdleConns int
}

// DefaultConfig returns settings for a local Redis server.
func DefaultConfig() Config {
	return Config{
		Address:      "localhost:6379",
		KeyPrefix:    "assistant:",
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// ConfigOption adjusts a Config.
type ConfigOption func(*Config)

// WithAddress sets the server address.
func WithAddress(addr string) ConfigOption {
	return func(c *Config) { c.Address = addr }
}

// WithPassword sets the authentication password.
func WithPassword(password string) ConfigOption {
	return func(c *Config) { c.Password = password }
}

// WithDB selects the database index.
func WithDB(db int) ConfigOption {
	return func(c *Config) { c.DB = db }
}

// WithKeyPrefix sets the key namespace.
func WithKeyPrefix(prefix string) ConfigOption {
	return func(c *Config) { c.KeyPrefix = prefix }
}

// WithPoolSize sets the connection pool size.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) { c.PoolSize = size }
}

// WithTimeouts sets the dial, read, and write timeouts.
func WithTimeouts(dial, read, write time.Duration) ConfigOption {
	return func(c *Config) {
		c.DialTimeout = dial
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}
