package config

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

// DefaultInstanceName is used when no instance name is configured anywhere.
const DefaultInstanceName = "default"

// FeedConfig holds the event feed connection settings.
type FeedConfig struct {
	// RedisURL is the Redis connection string (from PICKY_REDIS_URL). Empty disables the feed.
	RedisURL string

	// InstanceName scopes the feed channel (from PICKY_INSTANCE_NAME)
	InstanceName string
}

// LoadFeedConfig reads the feed settings from environment variables.
// A missing instance name falls back to DefaultInstanceName.
func LoadFeedConfig() (*FeedConfig, error) {
	cfg := &FeedConfig{
		RedisURL:     os.Getenv("PICKY_REDIS_URL"),
		InstanceName: os.Getenv("PICKY_INSTANCE_NAME"),
	}

	if cfg.InstanceName == "" {
		cfg.InstanceName = DefaultInstanceName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge fills unset fields from the scenario's feed section.
func (c *FeedConfig) Merge(section *FeedSection) {
	if section == nil {
		return
	}
	if c.RedisURL == "" {
		c.RedisURL = section.RedisURL
	}
	if (c.InstanceName == "" || c.InstanceName == DefaultInstanceName) && section.InstanceName != "" {
		c.InstanceName = section.InstanceName
	}
}

// Enabled reports whether a Redis URL is configured.
func (c *FeedConfig) Enabled() bool {
	return c.RedisURL != ""
}

// Validate checks that the configured values are usable.
func (c *FeedConfig) Validate() error {
	if c.InstanceName == "" {
		return fmt.Errorf("PICKY_INSTANCE_NAME cannot be empty")
	}

	if c.RedisURL != "" {
		if _, err := redis.ParseURL(c.RedisURL); err != nil {
			return fmt.Errorf("invalid PICKY_REDIS_URL: %w", err)
		}
	}

	return nil
}

// RedisOptions parses the Redis URL into client options.
func (c *FeedConfig) RedisOptions() (*redis.Options, error) {
	if c.RedisURL == "" {
		return nil, fmt.Errorf("no Redis URL configured")
	}
	opts, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return opts, nil
}
