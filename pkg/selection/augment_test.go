package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mixinCall struct {
	model     *Model
	container *Container
	opts      Options
}

// recordingMixin augments like DefaultMixin and records every call.
func recordingMixin(calls *[]mixinCall) Mixin {
	return func(m *Model, c *Container, opts Options) *Item {
		*calls = append(*calls, mixinCall{model: m, container: c, opts: opts})
		it := Augment(m, opts)
		m.Meta["kind"] = c.Kind()
		return it
	}
}

func TestPopulationCount(t *testing.T) {
	data := []any{Attributes{"n": 1}, nil, Attributes{"n": 3}}

	for _, kind := range []Kind{Exclusive, Inclusive} {
		t.Run(string(kind), func(t *testing.T) {
			c, err := NewContainer(Config{Kind: kind}, data)
			require.NoError(t, err)
			require.Equal(t, 3, c.Len())

			for _, it := range c.Items() {
				assert.True(t, IsAugmented(it))
			}
			assert.Empty(t, c.At(1).Attributes)
			assert.Equal(t, 3, c.At(2).Get("n"))

			items, err := c.Add(data)
			require.NoError(t, err)
			assert.Len(t, items, 3)
			assert.Equal(t, 6, c.Len())

			items, err = c.Reset(data)
			require.NoError(t, err)
			assert.Len(t, items, 3)
			assert.Equal(t, 3, c.Len())

			items, err = c.Set(data)
			require.NoError(t, err)
			assert.Len(t, items, 3)
			assert.Equal(t, 3, c.Len())
		})
	}

	t.Run("nil data is an empty population", func(t *testing.T) {
		c, err := NewContainer(Config{Kind: Inclusive}, nil)
		require.NoError(t, err)
		assert.Zero(t, c.Len())
	})

	t.Run("a single record is a population of one", func(t *testing.T) {
		c, err := NewContainer(Config{Kind: Inclusive}, Attributes{"n": 1})
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("plain maps are accepted", func(t *testing.T) {
		c, err := NewContainer(Config{Kind: Inclusive}, []map[string]any{{"n": 1}, {"n": 2}})
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})
}

func TestUnsupportedData(t *testing.T) {
	c := newInclusive(t, numbered(1))

	t.Run("bare value", func(t *testing.T) {
		_, err := c.Add(42)
		var dataErr *DataError
		require.True(t, errors.As(err, &dataErr))
		assert.Equal(t, -1, dataErr.Index)
		assert.Equal(t, 42, dataErr.Value)
	})

	t.Run("element inside a slice", func(t *testing.T) {
		_, err := c.Add([]any{Attributes{"n": 2}, "oops"})
		var dataErr *DataError
		require.True(t, errors.As(err, &dataErr))
		assert.Equal(t, 1, dataErr.Index)
		assert.Contains(t, err.Error(), "index 1")
	})

	t.Run("rejected calls leave the container untouched", func(t *testing.T) {
		assert.Equal(t, 1, c.Len())
	})

	t.Run("construction fails too", func(t *testing.T) {
		_, err := NewContainer(Config{Kind: Exclusive}, []any{3.14})
		assert.Error(t, err)
	})
}

func TestInvalidKind(t *testing.T) {
	for _, kind := range []Kind{"", "multiple", "EXCLUSIVE"} {
		_, err := NewContainer(Config{Kind: kind}, numbered(1))
		assert.ErrorIs(t, err, ErrInvalidKind, "kind %q", kind)
	}
}

func TestMixin(t *testing.T) {
	for _, kind := range []Kind{Exclusive, Inclusive} {
		t.Run(string(kind)+" hook receives each model and the container", func(t *testing.T) {
			var calls []mixinCall
			c, err := NewContainer(Config{Kind: kind, Mixin: recordingMixin(&calls)}, numbered(1, 2, 3))
			require.NoError(t, err)

			require.Len(t, calls, 3)
			for i, call := range calls {
				assert.Same(t, c.At(i).Model, call.model)
				assert.Same(t, c, call.container)
				assert.Equal(t, kind, c.At(i).Meta["kind"])
			}
		})
	}

	t.Run("hook receives the options of the call", func(t *testing.T) {
		var calls []mixinCall
		c, err := NewContainer(Config{Kind: Inclusive, Mixin: recordingMixin(&calls)}, nil)
		require.NoError(t, err)

		_, err = c.Add(numbered(1), WithValue("source", "feed"), WithDefaultLabel("foo"))
		require.NoError(t, err)

		require.Len(t, calls, 1)
		v, ok := calls[0].opts.Value("source")
		assert.True(t, ok)
		assert.Equal(t, "feed", v)
		assert.Equal(t, Label("foo"), calls[0].opts.DefaultLabel)
	})

	t.Run("existing models are augmented by the hook", func(t *testing.T) {
		var calls []mixinCall
		models := []*Model{NewModel(nil), NewModel(nil)}
		c, err := NewContainer(Config{Kind: Exclusive, Mixin: recordingMixin(&calls)}, models)
		require.NoError(t, err)

		require.Len(t, calls, 2)
		assert.Same(t, models[0], c.At(0).Model)
	})

	t.Run("augmented items never reach the hook", func(t *testing.T) {
		var calls []mixinCall
		items := []*Item{NewItem(nil), NewItem(nil)}
		c, err := NewContainer(Config{Kind: Exclusive, Mixin: recordingMixin(&calls)}, items)
		require.NoError(t, err)

		assert.Empty(t, calls)
		assert.Same(t, items[1], c.At(1))
	})

	t.Run("factory returning items skips the hook", func(t *testing.T) {
		var calls []mixinCall
		factory := func(attrs Attributes, opts Options) any {
			return Augment(NewModel(attrs), opts)
		}
		c, err := NewContainer(Config{Kind: Inclusive, Factory: factory, Mixin: recordingMixin(&calls)}, numbered(1, 2), WithDefaultLabel("picked"))
		require.NoError(t, err)

		assert.Empty(t, calls)
		require.Equal(t, 2, c.Len())
		assert.Equal(t, Label("picked"), c.At(0).DefaultLabel())
	})

	t.Run("factory returning models goes through the hook", func(t *testing.T) {
		var calls []mixinCall
		factory := func(attrs Attributes, _ Options) any {
			m := NewModel(attrs)
			m.Meta["built"] = true
			return m
		}
		c, err := NewContainer(Config{Kind: Inclusive, Factory: factory, Mixin: recordingMixin(&calls)}, numbered(1))
		require.NoError(t, err)

		require.Len(t, calls, 1)
		assert.Equal(t, true, c.At(0).Meta["built"])
	})

	t.Run("nil hook result falls back to the default augmentation", func(t *testing.T) {
		mixin := func(*Model, *Container, Options) *Item { return nil }
		c, err := NewContainer(Config{Kind: Inclusive, Mixin: mixin}, numbered(1))
		require.NoError(t, err)

		require.NotNil(t, c.At(0))
		c.At(0).Select()
		assert.Equal(t, StatusAll, c.SelectionStatus())
	})
}

func TestAugmentationIdempotence(t *testing.T) {
	first := newInclusive(t, numbered(1, 2))
	items := first.Items()

	second := newExclusive(t, items)
	assert.Equal(t, items, second.Items())

	_, err := first.Add(items)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len(), "re-adding members keeps them in place")
}

func TestParser(t *testing.T) {
	// unwraps {"nested": record} elements, optionally inside a store wrapper
	parser := func(raw any) (any, error) {
		unwrap := func(list []any) []any {
			out := make([]any, len(list))
			for i, e := range list {
				if m, ok := e.(map[string]any); ok {
					out[i] = m["nested"]
				}
			}
			return out
		}
		switch v := raw.(type) {
		case []any:
			return unwrap(v), nil
		case map[string]any:
			if store, ok := v["modelDataStore"].([]any); ok {
				return unwrap(store), nil
			}
			return v["nested"], nil
		}
		return nil, errors.New("unexpected payload")
	}

	nested := []any{
		map[string]any{"nested": map[string]any{"n": 1}},
		map[string]any{"nested": map[string]any{"n": 2}},
		map[string]any{"nested": map[string]any{"n": 3}},
	}

	t.Run("parses a nested list", func(t *testing.T) {
		var calls []mixinCall
		c, err := NewContainer(Config{Kind: Inclusive, Parser: parser, Mixin: recordingMixin(&calls)}, nested, Parsed())
		require.NoError(t, err)

		require.Equal(t, 3, c.Len())
		assert.Equal(t, 2, c.At(1).Get("n"))
		require.Len(t, calls, 3)
		assert.True(t, calls[0].opts.Parse)
	})

	t.Run("parses a wrapped store", func(t *testing.T) {
		wrapped := map[string]any{"modelDataStore": nested}
		c, err := NewContainer(Config{Kind: Exclusive, Parser: parser}, wrapped, Parsed())
		require.NoError(t, err)

		require.Equal(t, 3, c.Len())
		assert.Equal(t, 3, c.At(2).Get("n"))
	})

	t.Run("parser only runs when requested", func(t *testing.T) {
		c, err := NewContainer(Config{Kind: Inclusive, Parser: parser}, nested)
		require.NoError(t, err)

		require.Equal(t, 3, c.Len())
		assert.Nil(t, c.At(0).Get("n"))
		assert.NotNil(t, c.At(0).Get("nested"))
	})

	t.Run("parser errors are wrapped", func(t *testing.T) {
		c := newInclusive(t, nil)
		_, err := c.Add("garbage", Parsed())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse item data")
	})
}

func TestDefaultLabelPropagation(t *testing.T) {
	t.Run("construction option sets container and item labels", func(t *testing.T) {
		c := newExclusive(t, numbered(1, 2), WithDefaultLabel("foo"))

		assert.Equal(t, Label("foo"), c.DefaultLabel())
		for _, it := range c.Items() {
			assert.Equal(t, Label("foo"), it.DefaultLabel())
		}

		c.At(0).Select()
		assert.Same(t, c.At(0), c.Selected())
		assert.True(t, c.At(0).IsSelected(OnLabel("foo")))
	})

	t.Run("config label reaches the initial population", func(t *testing.T) {
		c, err := NewContainer(Config{Kind: Inclusive, DefaultLabel: "bar"}, numbered(1))
		require.NoError(t, err)
		assert.Equal(t, Label("bar"), c.At(0).DefaultLabel())
	})

	t.Run("later population takes the label from its own options", func(t *testing.T) {
		c, err := NewContainer(Config{Kind: Inclusive, DefaultLabel: "bar"}, nil)
		require.NoError(t, err)

		items, err := c.Add(numbered(1), WithDefaultLabel("foo"))
		require.NoError(t, err)
		assert.Equal(t, Label("foo"), items[0].DefaultLabel())

		items, err = c.Add(numbered(2))
		require.NoError(t, err)
		assert.Equal(t, DefaultLabel, items[0].DefaultLabel())
	})
}

func TestSelectableDuringAddNotification(t *testing.T) {
	c := newExclusive(t, nil)
	c.On(EventAdd, func(Event) {
		c.At(0).Select()
	})

	models := []*Model{NewModel(Attributes{"n": 1}), NewModel(Attributes{"n": 2})}
	_, err := c.Add(models)
	require.NoError(t, err)

	assert.Same(t, models[0], c.Selected().Model)
	assert.True(t, c.At(0).IsSelected())
}

func TestSilentPopulation(t *testing.T) {
	c := newInclusive(t, nil)
	rec := &recorder{}
	c.OnAny(rec.listen)

	it := NewItem(nil)
	it.Select()
	_, err := c.Add([]*Item{it}, Silently())
	require.NoError(t, err)

	assert.Empty(t, rec.events)
	assert.Equal(t, StatusAll, c.SelectionStatus())
}
