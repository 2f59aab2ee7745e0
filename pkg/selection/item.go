package selection

import (
	"github.com/google/uuid"
)

// Model is a plain data holder that has not been granted the selection capability.
// Factories produce models, and Mixins turn them into Items.
type Model struct {
	ID         string         // Stable identity, taken from the "id" attribute or a fresh UUID
	Attributes Attributes     // Opaque payload, never nil
	Meta       map[string]any // Free-form bookkeeping for custom augmentation hooks
}

// NewModel creates a model holding a copy of attrs. A nil attrs yields an empty payload.
func NewModel(attrs Attributes) *Model {
	m := &Model{
		Attributes: make(Attributes, len(attrs)),
		Meta:       make(map[string]any),
	}
	for k, v := range attrs {
		m.Attributes[k] = v
	}

	if id, ok := m.Attributes[IDAttribute].(string); ok && id != "" {
		m.ID = id
	} else {
		m.ID = uuid.New().String()
	}

	return m
}

// Get returns a single attribute value, or nil when absent.
func (m *Model) Get(key string) any {
	return m.Attributes[key]
}

// merge copies attrs over the current payload. The ID never changes.
func (m *Model) merge(attrs Attributes) {
	for k, v := range attrs {
		m.Attributes[k] = v
	}
}

// handle is the item's non-owning link to a container. Closing the container
// clears c, so a stale handle can never reach a disposed container.
type handle struct {
	c *Container
}

// Item is a Model augmented with per-label selection state.
type Item struct {
	*Model

	defaultLabel Label
	state        map[Label]bool
	handles      []*handle // containers holding this item, in join order
	owner        *handle   // container whose pipeline created the item, if any
	disposed     bool
	events       emitter
}

// Augment grants the selection capability to m. A nil model is replaced by an
// empty one. The item's default label comes from opts.DefaultLabel.
func Augment(m *Model, opts Options) *Item {
	if m == nil {
		m = NewModel(nil)
	}

	label := opts.DefaultLabel
	if label == "" {
		label = DefaultLabel
	}

	return &Item{
		Model:        m,
		defaultLabel: label,
		state:        make(map[Label]bool),
	}
}

// NewItem creates an item that is selectable from the start.
func NewItem(attrs Attributes, opts ...Option) *Item {
	return Augment(NewModel(attrs), resolveOptions(opts))
}

// IsAugmented reports whether v already carries the selection capability.
func IsAugmented(v any) bool {
	it, ok := v.(*Item)
	return ok && it != nil
}

// DefaultLabel returns the label used by item operations that name none.
func (it *Item) DefaultLabel() Label {
	return it.defaultLabel
}

// Disposed reports whether the item lost the last container holding it while
// its creator was one of them. Adding it to a container makes it live again.
func (it *Item) Disposed() bool {
	return it.disposed
}

// dispose ends selection tracking. The state is dropped so the item re-enters
// any container unselected.
func (it *Item) dispose() {
	it.disposed = true
	it.state = make(map[Label]bool)
}

// disposeIfOrphaned disposes the item when c created it and no open container holds it.
func (it *Item) disposeIfOrphaned(c *Container) {
	if it.owner == c.self && len(it.Containers()) == 0 {
		it.dispose()
	}
}

// Select marks the item selected and lets every container holding it re-validate.
// Selecting an already selected item emits nothing new.
func (it *Item) Select(opts ...Option) {
	o := resolveOptions(opts)
	b := &batch{}
	it.set(o.labelOr(it.defaultLabel), true, o, b)
	b.flush()
}

// Deselect marks the item not selected.
func (it *Item) Deselect(opts ...Option) {
	o := resolveOptions(opts)
	b := &batch{}
	it.set(o.labelOr(it.defaultLabel), false, o, b)
	b.flush()
}

// ToggleSelect inverts the selection state for the label.
func (it *Item) ToggleSelect(opts ...Option) {
	o := resolveOptions(opts)
	label := o.labelOr(it.defaultLabel)
	b := &batch{}
	it.set(label, !it.state[label], o, b)
	b.flush()
}

// IsSelected returns the state for the label. Unknown labels read as false.
func (it *Item) IsSelected(opts ...Option) bool {
	o := resolveOptions(opts)
	return it.state[o.labelOr(it.defaultLabel)]
}

// SelectedLabels returns every label the item is selected under, sorted.
func (it *Item) SelectedLabels() []Label {
	labels := make([]Label, 0, len(it.state))
	for l, on := range it.state {
		if on {
			labels = append(labels, l)
		}
	}
	return sortLabels(labels)
}

// Containers returns the open containers holding the item, in join order.
func (it *Item) Containers() []*Container {
	containers := make([]*Container, 0, len(it.handles))
	for _, h := range it.handles {
		if h.c != nil {
			containers = append(containers, h.c)
		}
	}
	return containers
}

// On subscribes fn to item events of type t. An empty type matches every event.
// The returned function unsubscribes.
func (it *Item) On(t EventType, fn Listener) func() {
	return it.events.on(t, fn)
}

// set is the single state transition of an item. Containers re-validate even
// when the state is unchanged, so a container that missed the item catches up.
func (it *Item) set(label Label, selected bool, o Options, b *batch) {
	if it.disposed {
		return
	}

	was := it.state[label]
	if selected {
		it.state[label] = true
	} else {
		delete(it.state, label)
	}

	for _, c := range it.Containers() {
		c.itemChanged(it, label, selected, o, b)
	}

	if was == selected {
		return
	}
	typ := EventDeselected
	if selected {
		typ = EventSelected
	}
	b.push(&it.events, Event{Type: typ, Label: label, Item: it}, o)
}

func (it *Item) bind(h *handle) {
	for _, existing := range it.handles {
		if existing == h {
			return
		}
	}
	it.handles = append(it.handles, h)
}

func (it *Item) unbind(h *handle) {
	for i, existing := range it.handles {
		if existing == h {
			it.handles = append(it.handles[:i:i], it.handles[i+1:]...)
			return
		}
	}
}

// pending is a queued notification.
type pending struct {
	em *emitter
	ev Event
}

// batch collects the notifications of one public call. They are delivered only
// after every cascade of the call has completed.
type batch struct {
	queue []pending
}

func (b *batch) push(em *emitter, ev Event, o Options) {
	if o.Silent {
		return
	}

	// One aggregate status per container and label: the one after the call.
	if ev.Type.IsStatusEvent() {
		kept := b.queue[:0]
		for _, p := range b.queue {
			if p.em == em && p.ev.Type.IsStatusEvent() && p.ev.Label == ev.Label {
				continue
			}
			kept = append(kept, p)
		}
		b.queue = kept
	}

	b.queue = append(b.queue, pending{em: em, ev: ev})
}

func (b *batch) flush() {
	queue := b.queue
	b.queue = nil
	for _, p := range queue {
		p.em.emit(p.ev)
	}
}
