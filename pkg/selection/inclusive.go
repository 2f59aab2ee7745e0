package selection

// Inclusive containers track any subset of members per label. Selection calls
// never cascade to other members; only the aggregate status is reported.

func (c *Container) inclusiveChanged(it *Item, label Label, selected bool, o Options, b *batch) {
	var changed bool
	if selected {
		changed = c.labels.insert(label, it)
	} else {
		changed = c.labels.remove(label, it)
	}
	if !changed {
		return
	}

	typ := EventDeselected
	if selected {
		typ = EventSelected
	}
	b.push(&c.events, Event{Type: typ, Label: label, Item: it, Container: c}, o)
	c.pushStatus(label, o, b)
}

// inclusiveJoin records a member that arrives already selected.
func (c *Container) inclusiveJoin(it *Item, label Label, o Options, b *batch) {
	if c.labels.insert(label, it) {
		b.push(&c.events, Event{Type: EventSelected, Label: label, Item: it, Container: c}, o)
	}
}

// inclusiveLeave removes a departing member from every label set.
func (c *Container) inclusiveLeave(it *Item, o Options, b *batch) {
	for _, label := range c.labels.labelsOf(it) {
		c.labels.remove(label, it)
		b.push(&c.events, Event{Type: EventDeselected, Label: label, Item: it, Container: c}, o)
	}
}

func (c *Container) pushStatus(label Label, o Options, b *batch) {
	s := c.status(label)
	b.push(&c.events, Event{Type: statusEvent(s), Label: label, Container: c, Status: s}, o)
}

// statuses snapshots the aggregate status of every known label.
func (c *Container) statuses() map[Label]Status {
	out := make(map[Label]Status)
	for _, label := range c.labels.labels() {
		out[label] = c.status(label)
	}
	return out
}
