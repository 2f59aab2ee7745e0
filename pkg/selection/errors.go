package selection

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKind is returned when a container is configured with a kind other
	// than Exclusive or Inclusive.
	ErrInvalidKind = errors.New("invalid container kind")

	// ErrClosed is returned by population calls on a closed container.
	ErrClosed = errors.New("container is closed")

	// ErrKindMismatch is returned by operations that only one kind of container supports.
	ErrKindMismatch = errors.New("operation not supported by this container kind")
)

// DataError reports a population element that cannot be turned into an item.
type DataError struct {
	Index int // Position in the normalized population, -1 for a bare value
	Value any
}

func (e *DataError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("unsupported item data of type %T", e.Value)
	}
	return fmt.Sprintf("unsupported item data of type %T at index %d", e.Value, e.Index)
}
