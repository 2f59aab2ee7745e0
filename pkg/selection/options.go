package selection

// Options is the resolved option bag of a single call. It is also what a Mixin
// receives, so custom hooks can read the pass-through Values.
type Options struct {
	Silent       bool           // Suppress notifications for the call and its cascades
	Parse        bool           // Run the container's Parser before population
	DefaultLabel Label          // Default label given to items augmented during the call
	Label        Label          // Selection channel for select/deselect calls
	Values       map[string]any // Pass-through keys for custom hooks
}

// Option configures a single population or selection call.
type Option func(*Options)

// Silently suppresses notification delivery. State changes are unaffected.
func Silently() Option {
	return func(o *Options) { o.Silent = true }
}

// Parsed requests the container's Parser to run on the data before population.
func Parsed() Option {
	return func(o *Options) { o.Parse = true }
}

// WithDefaultLabel sets the default label of items augmented during the call.
func WithDefaultLabel(l Label) Option {
	return func(o *Options) { o.DefaultLabel = l }
}

// OnLabel selects the label a select, deselect or query call operates on.
func OnLabel(l Label) Option {
	return func(o *Options) { o.Label = l }
}

// WithValue attaches a pass-through value for custom augmentation hooks.
func WithValue(key string, value any) Option {
	return func(o *Options) {
		if o.Values == nil {
			o.Values = make(map[string]any)
		}
		o.Values[key] = value
	}
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Value returns a pass-through value set with WithValue.
func (o Options) Value(key string) (any, bool) {
	v, ok := o.Values[key]
	return v, ok
}

func (o Options) labelOr(fallback Label) Label {
	if o.Label != "" {
		return o.Label
	}
	return fallback
}
