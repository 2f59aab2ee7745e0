package selection

import "strings"

// EventType names a notification emitted by an item or a container.
type EventType string

const (
	// EventSelected is emitted when an item becomes selected under a label
	EventSelected EventType = "selected"

	// EventDeselected is emitted when an item stops being selected under a label
	EventDeselected EventType = "deselected"

	// EventSelectNone is emitted by inclusive containers when a change leaves no member selected
	EventSelectNone EventType = "select:none"

	// EventSelectSome is emitted by inclusive containers when a change leaves some members selected
	EventSelectSome EventType = "select:some"

	// EventSelectAll is emitted by inclusive containers when a change leaves every member selected
	EventSelectAll EventType = "select:all"

	// EventAdd is emitted once per item that joined a container through Add or Set
	EventAdd EventType = "add"

	// EventRemove is emitted once per item that left a container through Remove or Set
	EventRemove EventType = "remove"

	// EventReset is emitted after Reset replaced the whole membership
	EventReset EventType = "reset"
)

// Validate checks that the event type is one of the defined constants.
func (t EventType) Validate() error {
	switch t {
	case EventSelected, EventDeselected, EventSelectNone, EventSelectSome, EventSelectAll,
		EventAdd, EventRemove, EventReset:
		return nil
	}
	return &unknownEventError{t}
}

type unknownEventError struct{ t EventType }

func (e *unknownEventError) Error() string {
	return "unknown event type: " + string(e.t)
}

// IsStatusEvent reports whether the event type is one of the select:* aggregate events.
func (t EventType) IsStatusEvent() bool {
	return strings.HasPrefix(string(t), "select:")
}

func statusEvent(s Status) EventType {
	return EventType("select:" + string(s))
}

// Event is a single notification.
// Item is nil for status and reset events; Container is nil for item-level events.
type Event struct {
	Type      EventType
	Label     Label
	Item      *Item
	Container *Container
	Status    Status
}

// Listener receives events synchronously. It may call back into the package.
type Listener func(Event)

type subscription struct {
	id  int
	typ EventType // empty matches every type
	fn  Listener
}

// emitter delivers events in subscription order.
type emitter struct {
	nextID int
	subs   []subscription
}

func (e *emitter) on(t EventType, fn Listener) func() {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription{id: id, typ: t, fn: fn})
	return func() { e.off(id) }
}

func (e *emitter) off(id int) {
	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}

func (e *emitter) emit(ev Event) {
	if len(e.subs) == 0 {
		return
	}
	// Listeners may subscribe or unsubscribe while we deliver.
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	for _, s := range subs {
		if s.typ == "" || s.typ == ev.Type {
			s.fn(ev)
		}
	}
}

func (e *emitter) reset() {
	e.subs = nil
}
