package filter

import (
	"path/filepath"

	"github.com/dyluth/picky/pkg/feed"
)

// Criteria defines filtering criteria for feed messages.
// All filters are ANDed together - a message must match ALL criteria to pass.
type Criteria struct {
	TypeGlob  string // Glob pattern for the event type (e.g. "select:*"), empty = no filter
	Label     string // Exact match on the selection label, empty = no filter
	Container string // Exact match on the container name or ID, empty = no filter
	Item      string // Exact match on the item ID, empty = no filter
}

// Matches returns true if the message matches all filter criteria.
// Empty criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(m *feed.Message) bool {
	if c.TypeGlob != "" {
		matched, err := filepath.Match(c.TypeGlob, string(m.Type))
		if err != nil || !matched {
			return false
		}
	}

	if c.Label != "" && string(m.Label) != c.Label {
		return false
	}

	if c.Container != "" && m.Name != c.Container && m.Container != c.Container {
		return false
	}

	if c.Item != "" && m.Item != c.Item {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.TypeGlob != "" ||
		c.Label != "" ||
		c.Container != "" ||
		c.Item != ""
}
