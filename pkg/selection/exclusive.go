package selection

// Exclusive containers hold at most one selected member per label. Each label
// moves between "no holder" and "held by one member".

// exclusiveSelected records it as the label's holder. A previous holder is
// deselected first, so two members are never selected under the same label.
func (c *Container) exclusiveSelected(it *Item, label Label, o Options, b *batch) {
	c.labels.track(label)

	current := c.labels.holder(label)
	if current == it {
		return
	}
	if current != nil {
		// Re-enters exclusiveDeselected through the item, which clears the holder.
		current.set(label, false, o, b)
	}

	c.labels.setHolder(label, it)
	b.push(&c.events, Event{Type: EventSelected, Label: label, Item: it, Container: c}, o)
}

// exclusiveDeselected clears the label when it is the holder.
func (c *Container) exclusiveDeselected(it *Item, label Label, o Options, b *batch) {
	if c.labels.holder(label) != it {
		return
	}
	c.labels.clearHolder(label)
	b.push(&c.events, Event{Type: EventDeselected, Label: label, Item: it, Container: c}, o)
}

// exclusiveJoin applies the first-registered-wins rule to a member that arrives
// already selected: it becomes the holder when the label is free, and is forced
// to deselect otherwise.
func (c *Container) exclusiveJoin(it *Item, label Label, o Options, b *batch) {
	c.labels.track(label)

	switch current := c.labels.holder(label); {
	case current == nil:
		c.labels.setHolder(label, it)
		b.push(&c.events, Event{Type: EventSelected, Label: label, Item: it, Container: c}, o)
	case current != it:
		it.set(label, false, o, b)
	}
}

// exclusiveLeave clears every label held by a departing member. No other member
// is promoted in its place.
func (c *Container) exclusiveLeave(it *Item, o Options, b *batch) {
	for _, label := range c.labels.labelsOf(it) {
		c.labels.clearHolder(label)
		b.push(&c.events, Event{Type: EventDeselected, Label: label, Item: it, Container: c}, o)
	}
}
