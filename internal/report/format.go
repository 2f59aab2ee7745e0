package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dyluth/picky/pkg/feed"
	"github.com/dyluth/picky/pkg/selection"
)

// Named pairs a container snapshot with its scenario name.
type Named struct {
	Name string `json:"name"`
	selection.Snapshot
}

// FormatTable writes a container snapshot as a formatted table to the provided writer.
// The table includes columns: ID, SELECTED and ATTRIBUTES (truncated), followed by
// one summary line per label. Returns the number of members formatted.
func FormatTable(w io.Writer, n Named) int {
	s := n.Snapshot

	state := ""
	if s.Closed {
		state = ", closed"
	}
	fmt.Fprintf(w, "Container '%s' (%s, default label '%s'%s):\n\n", n.Name, s.Kind, s.DefaultLabel, state)

	if len(s.Members) == 0 {
		fmt.Fprintf(w, "No items\n")
	} else {
		fmt.Fprintf(w, "%-10s %-20s %s\n", "ID", "SELECTED", "ATTRIBUTES")
		fmt.Fprintf(w, "%-10s %-20s %s\n",
			"----------", "--------------------", "----------------------------------------")

		for _, m := range s.Members {
			fmt.Fprintf(w, "%-10s %-20s %s\n",
				formatID(m.ID),
				formatLabels(m.Selected),
				formatAttributes(m.Attributes),
			)
		}
	}

	labels := make([]string, 0, len(s.Selection))
	for l := range s.Selection {
		labels = append(labels, string(l))
	}
	sort.Strings(labels)

	if len(labels) > 0 {
		fmt.Fprintln(w)
	}
	for _, l := range labels {
		label := selection.Label(l)
		fmt.Fprintf(w, "%s: %s\n", l, formatSelection(s, label))
	}

	countMsg := "item"
	if len(s.Members) != 1 {
		countMsg = "items"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(s.Members), countMsg)

	return len(s.Members)
}

// FormatJSONL writes snapshots as line-delimited JSON (JSONL) to the provided writer.
// Each snapshot is written as a single JSON object on its own line.
func FormatJSONL(w io.Writer, snapshots []Named) error {
	for _, n := range snapshots {
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", string(data)); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatEvent writes a feed message as a single human-readable line.
func FormatEvent(w io.Writer, m *feed.Message) {
	name := m.Name
	if name == "" {
		name = formatID(m.Container)
	}

	detail := "-"
	switch {
	case m.Type.IsStatusEvent():
		detail = string(m.Status)
	case m.Item != "":
		detail = m.Item
	}

	label := "-"
	if m.Label != "" {
		label = string(m.Label)
	}

	fmt.Fprintf(w, "%s %-16s %-12s %-12s %s\n",
		formatTime(m.TimestampMs),
		name,
		m.Type,
		label,
		detail,
	)
}

// FormatEventJSON writes a feed message as a single JSON line.
func FormatEventJSON(w io.Writer, m *feed.Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message to JSON: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// formatID truncates UUIDs to their first 8 characters for compact display.
// Other IDs are kept up to 10 characters.
func formatID(id string) string {
	if len(id) == 36 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	if len(id) > 10 {
		return id[:7] + "..."
	}
	return id
}

// formatLabels lists the labels an item is selected under, or "-".
func formatLabels(labels []selection.Label) string {
	if len(labels) == 0 {
		return "-"
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	joined := strings.Join(parts, ",")
	if len(joined) > 20 {
		return joined[:17] + "..."
	}
	return joined
}

// formatAttributes renders attributes as sorted key=value pairs, max 40 characters.
// The id attribute is omitted since it already has its own column.
func formatAttributes(attrs selection.Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k == selection.IDAttribute {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "-"
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, attrs[k])
	}

	line := strings.Join(parts, " ")
	if len(line) > 40 {
		return line[:37] + "..."
	}
	return line
}

// formatSelection summarises one label: the holder of an exclusive container,
// or count and status of an inclusive one.
func formatSelection(s selection.Snapshot, label selection.Label) string {
	ids := s.Selection[label]

	if s.Kind == selection.Exclusive {
		if len(ids) == 0 {
			return "none"
		}
		return ids[0]
	}

	status := s.Status[label]
	if status == "" {
		status = selection.StatusNone
	}
	return fmt.Sprintf("%d/%d (%s)", len(ids), len(s.Members), status)
}

// formatTime renders a millisecond timestamp as a local wall-clock time.
func formatTime(timestampMs int64) string {
	if timestampMs == 0 {
		return "--:--:--.---"
	}
	return time.UnixMilli(timestampMs).Format("15:04:05.000")
}
