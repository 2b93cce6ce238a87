package history

import "time"

// Config configures the history store. An empty DatabaseURL disables
// history entirely.
type Config struct {
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns sensible connection pool defaults
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 15 * time.Minute,
	}
}

// Enabled reports whether a database is configured
func (c Config) Enabled() bool {
	return c.DatabaseURL != ""
}
