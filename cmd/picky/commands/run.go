package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dyluth/picky/internal/config"
	"github.com/dyluth/picky/internal/printer"
	"github.com/dyluth/picky/internal/report"
	"github.com/dyluth/picky/internal/scenario"
	"github.com/dyluth/picky/pkg/feed"
	"github.com/spf13/cobra"
)

var (
	runFile         string
	runOutputFormat string
	runRedisURL     string
	runInstanceName string
	runQuiet        bool
)

// OutputFormat specifies how 'picky run' reports a scenario.
type OutputFormat string

const (
	// OutputFormatDefault prints every event as it happens and a table per container
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL prints one JSON snapshot per container
	OutputFormatJSONL OutputFormat = "jsonl"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a scenario and report the resulting selections",
	Long: `Build the containers of a scenario, apply its steps in order and report
the final state of every container.

When a Redis URL is configured (--redis, PICKY_REDIS_URL or the scenario's
feed section) every event is also published for 'picky watch'.

Output Formats:
  default - Events as they happen, then a table per container
  jsonl   - One JSON snapshot per container

Examples:
  picky run
  picky run -f scenarios/colours.yml --output=jsonl
  picky run --redis redis://localhost:6379 --name demo`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "picky.yml", "Scenario file")
	runCmd.Flags().StringVarP(&runOutputFormat, "output", "o", "default", "Output format (default or jsonl)")
	runCmd.Flags().StringVar(&runRedisURL, "redis", "", "Redis URL to publish events to")
	runCmd.Flags().StringVarP(&runInstanceName, "name", "n", "", "Feed instance name")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Only print the final state")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var format OutputFormat
	switch runOutputFormat {
	case "default":
		format = OutputFormatDefault
	case "jsonl":
		format = OutputFormatJSONL
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", runOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	cfg, err := loadScenario(runFile)
	if err != nil {
		return err
	}

	feedCfg, err := resolveFeedConfig(runRedisURL, runInstanceName, cfg.Feed)
	if err != nil {
		return err
	}

	var opts []scenario.Option
	if feedCfg.Enabled() {
		client, err := connectFeed(ctx, feedCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts, scenario.WithPublisher(client))
	}

	r := scenario.New(cfg, opts...)
	defer r.Close()

	live := format == OutputFormatDefault && !runQuiet
	if err := replay(ctx, r, cfg, feedCfg.InstanceName, live); err != nil {
		return printer.ErrorWithContext(
			"scenario failed",
			err.Error(),
			map[string]string{"File": runFile},
			nil,
		)
	}

	return writeReport(os.Stdout, r.Snapshots(), format)
}

// replay applies every step, printing the events each one caused when live is set.
func replay(ctx context.Context, r *scenario.Runner, cfg *config.ScenarioConfig, instanceName string, live bool) error {
	if err := r.Build(ctx); err != nil {
		return err
	}

	seen := 0
	if live {
		seen = printRecords(r.Records(), seen, instanceName)
	}

	for i, s := range cfg.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if live {
			printer.Step("%d. %s on '%s'\n", i+1, s.Action, s.Container)
		}
		if err := r.Apply(i); err != nil {
			return err
		}
		if live {
			seen = printRecords(r.Records(), seen, instanceName)
		}
	}

	return nil
}

// printRecords prints the records after the first seen ones and returns the new count.
func printRecords(records []scenario.Record, seen int, instanceName string) int {
	var buf bytes.Buffer
	for _, rec := range records[seen:] {
		buf.Reset()
		report.FormatEvent(&buf, feed.NewMessage(instanceName, rec.Container, rec.Event))
		printer.Event(rec.Event.Type, "   "+buf.String())
	}
	return len(records)
}

func writeReport(w io.Writer, snapshots []report.Named, format OutputFormat) error {
	switch format {
	case OutputFormatJSONL:
		return report.FormatJSONL(w, snapshots)
	case OutputFormatDefault:
		for i, n := range snapshots {
			if i > 0 {
				fmt.Fprintln(w)
			}
			report.FormatTable(w, n)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
