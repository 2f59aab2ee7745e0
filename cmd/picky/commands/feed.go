package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/picky/internal/config"
	"github.com/dyluth/picky/internal/printer"
	"github.com/dyluth/picky/pkg/feed"
)

// resolveFeedConfig combines the feed settings. Flags win over environment
// variables, which win over the scenario's feed section.
func resolveFeedConfig(redisURL, instanceName string, section *config.FeedSection) (*config.FeedConfig, error) {
	cfg, err := config.LoadFeedConfig()
	if err != nil {
		return nil, printer.Error(
			"invalid feed configuration",
			err.Error(),
			[]string{"Check PICKY_REDIS_URL and PICKY_INSTANCE_NAME"},
		)
	}

	cfg.Merge(section)

	if redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if instanceName != "" {
		cfg.InstanceName = instanceName
	}

	if err := cfg.Validate(); err != nil {
		return nil, printer.Error(
			"invalid feed configuration",
			err.Error(),
			[]string{"Use a URL such as redis://localhost:6379"},
		)
	}

	return cfg, nil
}

// connectFeed creates a feed client and verifies Redis connectivity.
func connectFeed(ctx context.Context, cfg *config.FeedConfig) (*feed.Client, error) {
	redisOpts, err := cfg.RedisOptions()
	if err != nil {
		return nil, err
	}

	client, err := feed.NewClient(redisOpts, cfg.InstanceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", cfg.RedisURL),
			map[string]string{"Instance": cfg.InstanceName},
			[]string{
				"Check that Redis is running and reachable",
				"Run without a feed by unsetting PICKY_REDIS_URL",
			},
		)
	}

	return client, nil
}
