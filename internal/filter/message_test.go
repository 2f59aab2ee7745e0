package filter

import (
	"testing"

	"github.com/dyluth/picky/pkg/feed"
	"github.com/dyluth/picky/pkg/selection"
	"github.com/stretchr/testify/assert"
)

func TestCriteriaMatches(t *testing.T) {
	msg := &feed.Message{
		Instance:  "default",
		Container: "6f1c9a52-3f7e-4d55-9a4a-0c1f0f3a2b11",
		Name:      "colours",
		Kind:      selection.Inclusive,
		Type:      selection.EventSelectSome,
		Label:     "starred",
		Status:    selection.StatusSome,
	}

	tests := []struct {
		name     string
		criteria Criteria
		expected bool
	}{
		{"no filters", Criteria{}, true},
		{"type glob matches", Criteria{TypeGlob: "select:*"}, true},
		{"exact type", Criteria{TypeGlob: "select:some"}, true},
		{"type glob misses", Criteria{TypeGlob: "deselected"}, false},
		{"malformed glob", Criteria{TypeGlob: "[select"}, false},
		{"label matches", Criteria{Label: "starred"}, true},
		{"label misses", Criteria{Label: "selected"}, false},
		{"container by name", Criteria{Container: "colours"}, true},
		{"container by ID", Criteria{Container: "6f1c9a52-3f7e-4d55-9a4a-0c1f0f3a2b11"}, true},
		{"container misses", Criteria{Container: "shapes"}, false},
		{"item misses", Criteria{Item: "red"}, false},
		{"all criteria ANDed", Criteria{TypeGlob: "select:*", Label: "starred", Container: "colours"}, true},
		{"one failing criterion", Criteria{TypeGlob: "select:*", Label: "selected"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.criteria.Matches(msg))
		})
	}
}

func TestCriteriaHasFilters(t *testing.T) {
	assert.False(t, (&Criteria{}).HasFilters())
	assert.True(t, (&Criteria{TypeGlob: "*"}).HasFilters())
	assert.True(t, (&Criteria{Label: "selected"}).HasFilters())
	assert.True(t, (&Criteria{Container: "colours"}).HasFilters())
	assert.True(t, (&Criteria{Item: "red"}).HasFilters())
}
