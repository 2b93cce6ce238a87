package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Live matches never expire; finished and abandoned
	// matches are kept for FinishedMatchTTL so post-game views still work.
	GuestPlayerTTL   time.Duration
	FinishedMatchTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:              "redis://localhost:6379",
		PoolSize:         10,
		MinIdleConns:     2,
		GuestPlayerTTL:   24 * time.Hour,
		FinishedMatchTTL: 24 * time.Hour,
	}
}
