package selection

// Container-item binding. Every population call computes the members entering
// and leaving the container and funnels them through bind, the only code that
// assigns c.members.

// Add appends the items built from data. Elements that are already members,
// or raw records whose "id" matches a member, are kept in place; the record's
// attributes are merged into that member. The returned slice has one item per
// input element.
func (c *Container) Add(data any, opts ...Option) ([]*Item, error) {
	if c.closed {
		return nil, ErrClosed
	}
	o := resolveOptions(opts)

	elems, err := c.prepare(data, o)
	if err != nil {
		return nil, err
	}
	items := c.collect(elems, o, true)

	var entering []*Item
	for _, it := range uniqueItems(items) {
		if !c.Contains(it) {
			entering = append(entering, it)
		}
	}

	next := make([]*Item, 0, len(c.members)+len(entering))
	next = append(next, c.members...)
	next = append(next, entering...)

	b := &batch{}
	c.bind(next, entering, nil, o, b)
	for _, it := range entering {
		b.push(&c.events, Event{Type: EventAdd, Item: it, Container: c}, o)
	}
	b.flush()

	return items, nil
}

// Set makes the membership match data. Elements that are members, or raw
// records whose "id" matches a member, keep that member; raw attributes are
// merged into it. Members not named in data are removed. The resulting order
// is the input order.
func (c *Container) Set(data any, opts ...Option) ([]*Item, error) {
	if c.closed {
		return nil, ErrClosed
	}
	o := resolveOptions(opts)

	elems, err := c.prepare(data, o)
	if err != nil {
		return nil, err
	}
	items := c.collect(elems, o, true)

	next := uniqueItems(items)
	entering, leaving := c.delta(next)

	b := &batch{}
	c.bind(next, entering, leaving, o, b)
	for _, it := range leaving {
		b.push(&c.events, Event{Type: EventRemove, Item: it, Container: c}, o)
	}
	for _, it := range entering {
		b.push(&c.events, Event{Type: EventAdd, Item: it, Container: c}, o)
	}
	b.flush()

	return items, nil
}

// Reset replaces the whole membership with the items built from data.
func (c *Container) Reset(data any, opts ...Option) ([]*Item, error) {
	if c.closed {
		return nil, ErrClosed
	}
	o := resolveOptions(opts)

	items, err := c.augmentAll(data, o)
	if err != nil {
		return nil, err
	}

	next := uniqueItems(items)
	entering, leaving := c.delta(next)

	b := &batch{}
	c.bind(next, entering, leaving, o, b)
	b.push(&c.events, Event{Type: EventReset, Container: c}, o)
	b.flush()

	return items, nil
}

// Remove drops the given members and returns the ones that were removed.
// Their selection entries in this container are cleared; their own state is kept.
func (c *Container) Remove(items []*Item, opts ...Option) ([]*Item, error) {
	if c.closed {
		return nil, ErrClosed
	}
	o := resolveOptions(opts)

	drop := make(map[*Item]struct{}, len(items))
	var leaving []*Item
	for _, it := range uniqueItems(items) {
		if c.Contains(it) {
			drop[it] = struct{}{}
			leaving = append(leaving, it)
		}
	}
	if len(leaving) == 0 {
		return nil, nil
	}

	next := make([]*Item, 0, len(c.members)-len(leaving))
	for _, it := range c.members {
		if _, gone := drop[it]; !gone {
			next = append(next, it)
		}
	}

	b := &batch{}
	c.bind(next, nil, leaving, o, b)
	for _, it := range leaving {
		b.push(&c.events, Event{Type: EventRemove, Item: it, Container: c}, o)
	}
	b.flush()

	return leaving, nil
}

// bind installs next as the membership. Leaving members are released before
// entering members are registered, so a departing holder frees its labels for
// the newcomers.
func (c *Container) bind(next, entering, leaving []*Item, o Options, b *batch) {
	var before map[Label]Status
	if c.kind == Inclusive {
		before = c.statuses()
	}

	for _, it := range leaving {
		c.release(it, o, b)
	}

	c.members = next
	c.index = make(map[*Item]struct{}, len(next))
	for _, it := range next {
		c.index[it] = struct{}{}
	}

	for _, it := range entering {
		it.disposed = false
		it.bind(c.self)
		c.register(it, o, b)
	}

	if c.kind == Inclusive {
		for label, s := range c.statuses() {
			if before[label] != s {
				c.pushStatus(label, o, b)
			}
		}
	}
}

// register applies the promotion rule of the container kind to every label the
// entering item is already selected under.
func (c *Container) register(it *Item, o Options, b *batch) {
	for _, label := range it.SelectedLabels() {
		// An earlier cascade in this loop may have changed the item.
		if !it.state[label] {
			continue
		}
		switch c.kind {
		case Exclusive:
			c.exclusiveJoin(it, label, o, b)
		case Inclusive:
			c.inclusiveJoin(it, label, o, b)
		}
	}
}

func (c *Container) release(it *Item, o Options, b *batch) {
	switch c.kind {
	case Exclusive:
		c.exclusiveLeave(it, o, b)
	case Inclusive:
		c.inclusiveLeave(it, o, b)
	}
	it.unbind(c.self)
	it.disposeIfOrphaned(c)
}

// delta splits next against the current membership.
func (c *Container) delta(next []*Item) (entering, leaving []*Item) {
	keep := make(map[*Item]struct{}, len(next))
	for _, it := range next {
		keep[it] = struct{}{}
		if !c.Contains(it) {
			entering = append(entering, it)
		}
	}
	for _, it := range c.members {
		if _, ok := keep[it]; !ok {
			leaving = append(leaving, it)
		}
	}
	return entering, leaving
}

// match finds the member an element of an Add or Set call refers to. For raw records
// it also returns the attributes to merge.
func (c *Container) match(el any) (*Item, Attributes) {
	switch e := el.(type) {
	case *Item:
		if c.Contains(e) {
			return e, nil
		}
	case Attributes:
		if id, ok := e[IDAttribute].(string); ok && id != "" {
			if existing := c.Get(id); existing != nil {
				return existing, e
			}
		}
	}
	return nil, nil
}

// collect turns normalized elements into items. Raw records naming an ID that
// an earlier element of the same call created reuse that item, so one call
// never yields two items with the same ID. With members set, records and items
// that match a current member resolve to it.
func (c *Container) collect(elems []any, o Options, members bool) []*Item {
	created := make(map[string]*Item)
	items := make([]*Item, len(elems))

	for i, el := range elems {
		if members {
			if existing, attrs := c.match(el); existing != nil {
				existing.merge(attrs)
				items[i] = existing
				continue
			}
		}

		id := recordID(el)
		if existing, ok := created[id]; ok && id != "" {
			existing.merge(el.(Attributes))
			items[i] = existing
			continue
		}

		items[i] = c.augment(el, o)
		if id != "" {
			created[id] = items[i]
		}
	}
	return items
}

func recordID(el any) string {
	if attrs, ok := el.(Attributes); ok {
		if id, ok := attrs[IDAttribute].(string); ok {
			return id
		}
	}
	return ""
}

func uniqueItems(items []*Item) []*Item {
	seen := make(map[*Item]struct{}, len(items))
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
