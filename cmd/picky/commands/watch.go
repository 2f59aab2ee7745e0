package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/picky/internal/filter"
	"github.com/dyluth/picky/internal/printer"
	"github.com/dyluth/picky/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchRedisURL     string
	watchInstanceName string
	watchOutputFormat string
	watchTypeFilter   string
	watchLabelFilter  string
	watchContainer    string
	watchItem         string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream selection events from a Redis feed",
	Long: `Stream the selection events published by 'picky run' or any program that
attaches its containers to the feed.

Output Formats:
  default - One human-readable line per event
  json    - Line-delimited JSON for programmatic processing

Filters are ANDed together.

Examples:
  # Watch the default instance
  picky watch --redis redis://localhost:6379

  # Only selections and deselections of one container
  picky watch --name demo --container colours --type '*selected'

  # Export events as JSON
  picky watch --output=json > events.jsonl`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchRedisURL, "redis", "", "Redis URL (default from PICKY_REDIS_URL)")
	watchCmd.Flags().StringVarP(&watchInstanceName, "name", "n", "", "Feed instance name (default from PICKY_INSTANCE_NAME)")
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default or json)")
	watchCmd.Flags().StringVar(&watchTypeFilter, "type", "", "Filter by event type (glob pattern, e.g. 'select:*')")
	watchCmd.Flags().StringVar(&watchLabelFilter, "label", "", "Filter by selection label")
	watchCmd.Flags().StringVar(&watchContainer, "container", "", "Filter by container name or ID")
	watchCmd.Flags().StringVar(&watchItem, "item", "", "Filter by item ID")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	var outputFormat watch.OutputFormat
	switch watchOutputFormat {
	case "default":
		outputFormat = watch.OutputFormatDefault
	case "json":
		outputFormat = watch.OutputFormatJSON
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	feedCfg, err := resolveFeedConfig(watchRedisURL, watchInstanceName, nil)
	if err != nil {
		return err
	}
	if !feedCfg.Enabled() {
		return printer.Error(
			"no Redis URL configured",
			"picky watch needs a Redis feed to read events from.",
			[]string{
				"Pass it as a flag:\n  picky watch --redis redis://localhost:6379",
				"Or set PICKY_REDIS_URL",
			},
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := connectFeed(ctx, feedCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	criteria := filter.Criteria{
		TypeGlob:  watchTypeFilter,
		Label:     watchLabelFilter,
		Container: watchContainer,
		Item:      watchItem,
	}

	if outputFormat == watch.OutputFormatDefault {
		printer.Info("Watching instance '%s'", feedCfg.InstanceName)
		if criteria.HasFilters() {
			printer.Info(" (filtered)")
		}
		printer.Info("... press Ctrl+C to stop\n")
	}

	return watch.StreamSelections(ctx, client, criteria, outputFormat, os.Stdout)
}
