package selection

import (
	"fmt"
	"sort"
)

// Label names an independent selection channel.
type Label string

// DefaultLabel is the reserved label used by operations that name no label.
const DefaultLabel Label = "selected"

// Kind defines the consistency rule a container enforces across its members.
type Kind string

const (
	// Exclusive containers allow at most one selected member per label
	Exclusive Kind = "exclusive"

	// Inclusive containers allow any subset of members to be selected per label
	Inclusive Kind = "inclusive"
)

// Validate checks that the kind is one of the defined constants.
func (k Kind) Validate() error {
	switch k {
	case Exclusive, Inclusive:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidKind, string(k), Exclusive, Inclusive)
	}
}

// Status is the aggregate selection state of an inclusive container for one label.
type Status string

const (
	// StatusNone means no member is selected
	StatusNone Status = "none"

	// StatusSome means at least one, but not every, member is selected
	StatusSome Status = "some"

	// StatusAll means every member is selected
	StatusAll Status = "all"
)

// Attributes is the opaque key/value payload of a model.
// The selection package never interprets it, except for the optional "id" key.
type Attributes map[string]any

// IDAttribute is the attribute key NewModel takes a model ID from, when it holds a string.
const IDAttribute = "id"

// Config describes a container at construction time.
type Config struct {
	Kind         Kind    // Required: Exclusive or Inclusive
	DefaultLabel Label   // Label used by container operations that name none (default: DefaultLabel)
	Factory      Factory // Builds host objects from raw attributes (default: DefaultFactory)
	Mixin        Mixin   // Grants the selection capability (default: DefaultMixin)
	Parser       Parser  // Converts raw payloads when Parsed() is given (default: identity)

	// Listener, when set, receives every container event, including those of the
	// initial population. Same as calling OnAny right after construction, but earlier.
	Listener Listener
}

// Validate checks the configuration. An invalid kind is not recoverable.
func (c *Config) Validate() error {
	if err := c.Kind.Validate(); err != nil {
		return fmt.Errorf("invalid container config: %w", err)
	}
	return nil
}

func sortLabels(labels []Label) []Label {
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
