package watch

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/dyluth/picky/internal/filter"
	"github.com/dyluth/picky/internal/report"
	"github.com/dyluth/picky/pkg/feed"
)

// OutputFormat specifies how streamed events are written.
type OutputFormat string

const (
	// OutputFormatDefault writes one human-readable line per event
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON writes line-delimited JSON
	OutputFormatJSON OutputFormat = "json"
)

// formatter writes one feed message.
type formatter interface {
	FormatMessage(m *feed.Message) error
}

type defaultFormatter struct {
	writer io.Writer
}

func (f *defaultFormatter) FormatMessage(m *feed.Message) error {
	report.FormatEvent(f.writer, m)
	return nil
}

type jsonFormatter struct {
	writer io.Writer
}

func (f *jsonFormatter) FormatMessage(m *feed.Message) error {
	return report.FormatEventJSON(f.writer, m)
}

func newFormatter(format OutputFormat, w io.Writer) (formatter, error) {
	switch format {
	case OutputFormatDefault, "":
		return &defaultFormatter{writer: w}, nil
	case OutputFormatJSON:
		return &jsonFormatter{writer: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// StreamSelections subscribes to the selection feed and writes every message
// matching criteria until ctx is cancelled or the subscription ends.
// Malformed messages are logged and skipped.
func StreamSelections(ctx context.Context, client *feed.Client, criteria filter.Criteria, format OutputFormat, w io.Writer) error {
	f, err := newFormatter(format, w)
	if err != nil {
		return err
	}

	sub, err := client.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to selection events: %w", err)
	}
	defer sub.Close()

	log.Printf("[Watch] Streaming selection events for instance '%s'", client.InstanceName())

	events := sub.Events()
	errs := sub.Errors()

	for {
		select {
		case <-ctx.Done():
			return nil

		case m, ok := <-events:
			if !ok {
				return nil
			}
			if !criteria.Matches(m) {
				continue
			}
			if err := f.FormatMessage(m); err != nil {
				return fmt.Errorf("failed to write event: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("[Watch] Skipping event: %v", err)
		}
	}
}
