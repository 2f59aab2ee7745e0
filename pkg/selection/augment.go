package selection

import (
	"fmt"
)

// Factory builds a host object from raw attributes. It returns either a *Model,
// which is then handed to the container's Mixin, or a *Item that is already
// selectable and is used as is. Any other result falls back to NewModel(attrs).
type Factory func(attrs Attributes, opts Options) any

// DefaultFactory creates a plain Model.
func DefaultFactory(attrs Attributes, _ Options) any {
	return NewModel(attrs)
}

// Mixin grants the selection capability to a model entering container c.
// It receives the model before augmentation, the container and the options of
// the population call, and must return the augmented item. Custom mixins
// usually call Augment and then attach their own bookkeeping to m.Meta.
// A nil result falls back to Augment(m, opts).
type Mixin func(m *Model, c *Container, opts Options) *Item

// DefaultMixin is the built-in augmentation.
func DefaultMixin(m *Model, _ *Container, opts Options) *Item {
	return Augment(m, opts)
}

// Parser converts a raw payload into item data (a record, a slice of records,
// or items) before population. It only runs when Parsed() is given.
type Parser func(raw any) (any, error)

// augmentAll runs the whole pipeline: parse, normalize, augment. It fails
// before any state changes, so a rejected call leaves the container untouched.
func (c *Container) augmentAll(data any, o Options) ([]*Item, error) {
	elems, err := c.prepare(data, o)
	if err != nil {
		return nil, err
	}

	return c.collect(elems, o, false), nil
}

func (c *Container) prepare(data any, o Options) ([]any, error) {
	if o.Parse && c.parser != nil {
		parsed, err := c.parser(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse item data: %w", err)
		}
		data = parsed
	}
	return normalize(data)
}

// augment turns one normalized element into an item. Items pass through
// unchanged and never reach the Mixin.
func (c *Container) augment(el any, o Options) *Item {
	switch e := el.(type) {
	case *Item:
		return e
	case *Model:
		return c.applyMixin(e, o)
	case Attributes:
		switch v := c.factory(e, o).(type) {
		case *Item:
			if v != nil {
				c.adopt(v)
				return v
			}
		case *Model:
			if v != nil {
				return c.applyMixin(v, o)
			}
		}
		return c.applyMixin(NewModel(e), o)
	}
	// normalize only lets the types above through
	return c.applyMixin(NewModel(nil), o)
}

func (c *Container) applyMixin(m *Model, o Options) *Item {
	it := c.mixin(m, c, o)
	if it == nil {
		it = Augment(m, o)
	}
	c.adopt(it)
	return it
}

// adopt records the container as the creator of a freshly augmented item.
func (c *Container) adopt(it *Item) {
	if it.owner == nil {
		it.owner = c.self
	}
}

// normalize turns population data into a flat element list. A bare value is a
// single element; nil data is an empty population; nil elements stand for
// records without attributes.
func normalize(data any) ([]any, error) {
	var raw []any
	switch v := data.(type) {
	case nil:
		return nil, nil
	case []any:
		raw = v
	case []Attributes:
		raw = make([]any, len(v))
		for i, e := range v {
			raw[i] = e
		}
	case []map[string]any:
		raw = make([]any, len(v))
		for i, e := range v {
			raw[i] = e
		}
	case []*Model:
		raw = make([]any, len(v))
		for i, e := range v {
			raw[i] = e
		}
	case []*Item:
		raw = make([]any, len(v))
		for i, e := range v {
			raw[i] = e
		}
	default:
		el, ok := element(v)
		if !ok {
			return nil, &DataError{Index: -1, Value: v}
		}
		return []any{el}, nil
	}

	elems := make([]any, len(raw))
	for i, e := range raw {
		el, ok := element(e)
		if !ok {
			return nil, &DataError{Index: i, Value: e}
		}
		elems[i] = el
	}
	return elems, nil
}

func element(v any) (any, bool) {
	switch e := v.(type) {
	case nil:
		return Attributes(nil), true
	case Attributes:
		return e, true
	case map[string]any:
		return Attributes(e), true
	case *Model:
		if e == nil {
			return Attributes(nil), true
		}
		return e, true
	case *Item:
		if e == nil {
			return Attributes(nil), true
		}
		return e, true
	}
	return nil, false
}
