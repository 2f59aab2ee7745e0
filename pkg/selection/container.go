package selection

import (
	"github.com/google/uuid"
)

// Container groups items and enforces its Kind's consistency rule across them.
// The membership is only ever changed by the population calls in binding.go.
type Container struct {
	id           string
	kind         Kind
	defaultLabel Label
	factory      Factory
	mixin        Mixin
	parser       Parser

	members []*Item
	index   map[*Item]struct{}
	labels  *labelRegistry
	self    *handle
	events  emitter
	closed  bool
}

// NewContainer validates cfg, creates the container and populates it with data.
//
// Items created during construction share the container's default label, unless
// the options name another one. A WithDefaultLabel option also sets the container's
// default label when cfg leaves it empty. No add events are emitted for the
// initial population.
func NewContainer(cfg Config, data any, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := resolveOptions(opts)

	c := &Container{
		id:           uuid.New().String(),
		kind:         cfg.Kind,
		defaultLabel: cfg.DefaultLabel,
		factory:      cfg.Factory,
		mixin:        cfg.Mixin,
		parser:       cfg.Parser,
		index:        make(map[*Item]struct{}),
		labels:       newLabelRegistry(),
	}
	c.self = &handle{c: c}
	if cfg.Listener != nil {
		c.OnAny(cfg.Listener)
	}

	if c.defaultLabel == "" {
		c.defaultLabel = o.DefaultLabel
	}
	if c.defaultLabel == "" {
		c.defaultLabel = DefaultLabel
	}
	if c.factory == nil {
		c.factory = DefaultFactory
	}
	if c.mixin == nil {
		c.mixin = DefaultMixin
	}

	if o.DefaultLabel == "" {
		o.DefaultLabel = c.defaultLabel
	}

	items, err := c.augmentAll(data, o)
	if err != nil {
		return nil, err
	}

	b := &batch{}
	next := uniqueItems(items)
	c.bind(next, next, nil, o, b)
	b.flush()

	return c, nil
}

// ID returns the container's UUID.
func (c *Container) ID() string {
	return c.id
}

// Kind returns the consistency rule of the container.
func (c *Container) Kind() Kind {
	return c.kind
}

// DefaultLabel returns the label used by container operations that name none.
func (c *Container) DefaultLabel() Label {
	return c.defaultLabel
}

// Closed reports whether Close has been called.
func (c *Container) Closed() bool {
	return c.closed
}

// Len returns the number of members.
func (c *Container) Len() int {
	return len(c.members)
}

// At returns the member at position i, or nil when out of range.
func (c *Container) At(i int) *Item {
	if i < 0 || i >= len(c.members) {
		return nil
	}
	return c.members[i]
}

// Items returns a copy of the members in insertion order.
func (c *Container) Items() []*Item {
	items := make([]*Item, len(c.members))
	copy(items, c.members)
	return items
}

// Contains reports whether it is a member.
func (c *Container) Contains(it *Item) bool {
	_, ok := c.index[it]
	return ok
}

// Get returns the member with the given ID, or nil.
func (c *Container) Get(id string) *Item {
	for _, it := range c.members {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Labels returns every label the container has tracked, sorted.
func (c *Container) Labels() []Label {
	return c.labels.labels()
}

// On subscribes fn to container events of type t. The returned function unsubscribes.
func (c *Container) On(t EventType, fn Listener) func() {
	return c.events.on(t, fn)
}

// OnAny subscribes fn to every container event.
func (c *Container) OnAny(fn Listener) func() {
	return c.events.on("", fn)
}

// Select selects a member under the option label (default: the container's).
// Non-members are ignored.
func (c *Container) Select(it *Item, opts ...Option) {
	if it == nil || !c.Contains(it) {
		return
	}
	o := resolveOptions(opts)
	b := &batch{}
	it.set(o.labelOr(c.defaultLabel), true, o, b)
	b.flush()
}

// Deselect deselects a member. On an exclusive container a nil item means
// "whichever member is currently selected".
func (c *Container) Deselect(it *Item, opts ...Option) {
	o := resolveOptions(opts)
	label := o.labelOr(c.defaultLabel)

	if it == nil && c.kind == Exclusive {
		it = c.labels.holder(label)
	}
	if it == nil || !c.Contains(it) {
		return
	}

	b := &batch{}
	it.set(label, false, o, b)
	b.flush()
}

// SelectAll selects every member. Inclusive containers only.
func (c *Container) SelectAll(opts ...Option) error {
	if c.kind != Inclusive {
		return ErrKindMismatch
	}
	o := resolveOptions(opts)
	label := o.labelOr(c.defaultLabel)

	b := &batch{}
	for _, it := range c.Items() {
		it.set(label, true, o, b)
	}
	b.flush()
	return nil
}

// DeselectAll deselects every selected member.
func (c *Container) DeselectAll(opts ...Option) {
	o := resolveOptions(opts)
	label := o.labelOr(c.defaultLabel)

	b := &batch{}
	for _, it := range c.SelectedItems(OnLabel(label)) {
		it.set(label, false, o, b)
	}
	b.flush()
}

// ToggleSelectAll deselects every member when all are selected, and selects every
// member otherwise. Inclusive containers only.
func (c *Container) ToggleSelectAll(opts ...Option) error {
	if c.kind != Inclusive {
		return ErrKindMismatch
	}
	o := resolveOptions(opts)
	if c.status(o.labelOr(c.defaultLabel)) == StatusAll {
		c.DeselectAll(opts...)
		return nil
	}
	return c.SelectAll(opts...)
}

// Selected returns the selected member for the label: the holder of an exclusive
// container, or the first selected member in insertion order. Nil when none is.
func (c *Container) Selected(opts ...Option) *Item {
	o := resolveOptions(opts)
	label := o.labelOr(c.defaultLabel)

	if c.kind == Exclusive {
		return c.labels.holder(label)
	}
	for _, it := range c.members {
		if c.labels.contains(label, it) {
			return it
		}
	}
	return nil
}

// SelectedItems returns the selected members for the label in insertion order.
func (c *Container) SelectedItems(opts ...Option) []*Item {
	o := resolveOptions(opts)
	label := o.labelOr(c.defaultLabel)

	var items []*Item
	for _, it := range c.members {
		if c.labels.contains(label, it) {
			items = append(items, it)
		}
	}
	return items
}

// SelectionStatus returns the aggregate status for the label. It is computed
// from the current selection set on every call.
func (c *Container) SelectionStatus(opts ...Option) Status {
	o := resolveOptions(opts)
	return c.status(o.labelOr(c.defaultLabel))
}

func (c *Container) status(label Label) Status {
	n := c.labels.size(label)
	switch {
	case n == 0:
		return StatusNone
	case n == len(c.members):
		return StatusAll
	default:
		return StatusSome
	}
}

// itemChanged is the only entry point from an item back into the container.
func (c *Container) itemChanged(it *Item, label Label, selected bool, o Options, b *batch) {
	if c.closed || !c.Contains(it) {
		return
	}

	switch c.kind {
	case Exclusive:
		if selected {
			c.exclusiveSelected(it, label, o, b)
		} else {
			c.exclusiveDeselected(it, label, o, b)
		}
	case Inclusive:
		c.inclusiveChanged(it, label, selected, o, b)
	}
}

// Close severs every item handle and drops all bookkeeping. Items the container
// created itself, and that belong to no other container, are disposed, just as
// when they are removed. Close is idempotent.
func (c *Container) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	for _, it := range c.members {
		it.unbind(c.self)
		it.disposeIfOrphaned(c)
	}

	c.self.c = nil
	c.members = nil
	c.index = make(map[*Item]struct{})
	c.labels.clear()
	c.events.reset()

	return nil
}
