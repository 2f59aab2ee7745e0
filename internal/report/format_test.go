package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dyluth/picky/pkg/feed"
	"github.com/dyluth/picky/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(t *testing.T, kind selection.Kind, ids ...string) (*selection.Container, Named) {
	t.Helper()
	data := make([]any, len(ids))
	for i, id := range ids {
		data[i] = selection.Attributes{"id": id, "n": i}
	}
	c, err := selection.NewContainer(selection.Config{Kind: kind}, data)
	require.NoError(t, err)
	return c, Named{Name: "test", Snapshot: c.Snapshot()}
}

func TestFormatTable(t *testing.T) {
	t.Run("exclusive container", func(t *testing.T) {
		c, _ := snapshotOf(t, selection.Exclusive, "red", "blue")
		c.Get("blue").Select()

		var buf bytes.Buffer
		count := FormatTable(&buf, Named{Name: "colours", Snapshot: c.Snapshot()})
		out := buf.String()

		assert.Equal(t, 2, count)
		assert.Contains(t, out, "Container 'colours' (exclusive, default label 'selected')")
		assert.Contains(t, out, "selected: blue\n")
		assert.Contains(t, out, "n=1")
		assert.Contains(t, out, "2 items")
	})

	t.Run("inclusive container summarises status", func(t *testing.T) {
		c, _ := snapshotOf(t, selection.Inclusive, "a", "b", "c")
		c.Get("a").Select()

		var buf bytes.Buffer
		FormatTable(&buf, Named{Name: "letters", Snapshot: c.Snapshot()})
		assert.Contains(t, buf.String(), "selected: 1/3 (some)")
	})

	t.Run("empty container", func(t *testing.T) {
		_, n := snapshotOf(t, selection.Inclusive)

		var buf bytes.Buffer
		count := FormatTable(&buf, n)
		assert.Zero(t, count)
		assert.Contains(t, buf.String(), "No items")
		assert.Contains(t, buf.String(), "0 items")
	})

	t.Run("closed container", func(t *testing.T) {
		c, _ := snapshotOf(t, selection.Inclusive, "a")
		require.NoError(t, c.Close())

		var buf bytes.Buffer
		FormatTable(&buf, Named{Name: "gone", Snapshot: c.Snapshot()})
		assert.Contains(t, buf.String(), ", closed)")
	})
}

func TestFormatJSONL(t *testing.T) {
	_, first := snapshotOf(t, selection.Exclusive, "red")
	_, second := snapshotOf(t, selection.Inclusive, "a", "b")
	second.Name = "letters"

	var buf bytes.Buffer
	require.NoError(t, FormatJSONL(&buf, []Named{first, second}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &decoded))
	assert.Equal(t, "letters", decoded["name"])
	assert.Equal(t, "inclusive", decoded["kind"])
	assert.Len(t, decoded["members"], 2)
}

func TestFormatEvent(t *testing.T) {
	t.Run("item event", func(t *testing.T) {
		var buf bytes.Buffer
		FormatEvent(&buf, &feed.Message{Name: "colours", Type: selection.EventSelected, Label: "selected", Item: "red"})
		out := buf.String()
		assert.Contains(t, out, "colours")
		assert.Contains(t, out, "selected")
		assert.True(t, strings.HasSuffix(out, "red\n"))
	})

	t.Run("status event shows the status", func(t *testing.T) {
		var buf bytes.Buffer
		FormatEvent(&buf, &feed.Message{
			Container: "6f1c9a52-3f7e-4d55-9a4a-0c1f0f3a2b11",
			Type:      selection.EventSelectAll,
			Label:     "selected",
			Status:    selection.StatusAll,
		})
		out := buf.String()
		assert.Contains(t, out, "6f1c9a52 ")
		assert.True(t, strings.HasSuffix(out, "all\n"))
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatEventJSON(&buf, &feed.Message{Type: selection.EventReset}))
		assert.Contains(t, buf.String(), `"type":"reset"`)
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "6f1c9a52", formatID("6f1c9a52-3f7e-4d55-9a4a-0c1f0f3a2b11"))
	assert.Equal(t, "red", formatID("red"))
	assert.Equal(t, "a-very-...", formatID("a-very-long-id"))

	assert.Equal(t, "-", formatLabels(nil))
	assert.Equal(t, "selected,starred", formatLabels([]selection.Label{"selected", "starred"}))

	assert.Equal(t, "-", formatAttributes(selection.Attributes{"id": "x"}))
	assert.Equal(t, "a=1 b=two", formatAttributes(selection.Attributes{"b": "two", "a": 1}))
	long := formatAttributes(selection.Attributes{"text": strings.Repeat("x", 60)})
	assert.Len(t, long, 40)
	assert.True(t, strings.HasSuffix(long, "..."))
}
