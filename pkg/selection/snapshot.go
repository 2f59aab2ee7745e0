package selection

// Snapshot is a JSON-serialisable view of a container at one instant.
type Snapshot struct {
	ID           string             `json:"id"`
	Kind         Kind               `json:"kind"`
	DefaultLabel Label              `json:"default_label"`
	Closed       bool               `json:"closed,omitempty"`
	Members      []MemberSnapshot   `json:"members"`
	Selection    map[Label][]string `json:"selection"`        // label → selected member IDs, in member order
	Status       map[Label]Status   `json:"status,omitempty"` // inclusive containers only
}

// MemberSnapshot describes one member.
type MemberSnapshot struct {
	ID         string     `json:"id"`
	Attributes Attributes `json:"attributes"`
	Selected   []Label    `json:"selected,omitempty"` // labels the item itself is selected under
}

// Snapshot captures the members and the per-label selection of the container.
func (c *Container) Snapshot() Snapshot {
	s := Snapshot{
		ID:           c.id,
		Kind:         c.kind,
		DefaultLabel: c.defaultLabel,
		Closed:       c.closed,
		Members:      make([]MemberSnapshot, 0, len(c.members)),
		Selection:    make(map[Label][]string),
	}

	for _, it := range c.members {
		attrs := make(Attributes, len(it.Attributes))
		for k, v := range it.Attributes {
			attrs[k] = v
		}
		s.Members = append(s.Members, MemberSnapshot{
			ID:         it.ID,
			Attributes: attrs,
			Selected:   it.SelectedLabels(),
		})
	}

	for _, label := range c.labels.labels() {
		ids := []string{}
		for _, it := range c.SelectedItems(OnLabel(label)) {
			ids = append(ids, it.ID)
		}
		s.Selection[label] = ids
	}

	if c.kind == Inclusive {
		s.Status = c.statuses()
	}

	return s
}
