package resolver

import (
	"fmt"
	"strings"

	"github.com/dyluth/picky/pkg/selection"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
// Set to 6 characters to balance usability with collision avoidance.
const MinShortIDLength = 6

// ResolveItem finds the member of c named by ref.
//
// The function handles three cases:
// 1. ref is the exact ID of a member - returned whatever its length
// 2. ref is too short (< 6 chars) - returns validation error
// 3. ref is a prefix - scans the members and returns the unique match
func ResolveItem(c *selection.Container, ref string) (*selection.Item, error) {
	if ref == "" {
		return nil, fmt.Errorf("item reference cannot be empty")
	}

	if it := c.Get(ref); it != nil {
		return it, nil
	}

	if len(ref) < MinShortIDLength {
		return nil, fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(ref))
	}

	var matches []*selection.Item
	for _, it := range c.Items() {
		if strings.HasPrefix(it.ID, ref) {
			matches = append(matches, it)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{ShortID: ref}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, it := range matches {
			ids[i] = it.ID
		}
		return nil, &AmbiguousError{ShortID: ref, Matches: ids}
	}
}

// ResolveIndex returns the member at position i.
func ResolveIndex(c *selection.Container, i int) (*selection.Item, error) {
	it := c.At(i)
	if it == nil {
		return nil, fmt.Errorf("index %d out of range (container has %d items)", i, c.Len())
	}
	return it, nil
}

// NotFoundError indicates no items matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no items found matching '%s'", e.ShortID)
}

// AmbiguousError indicates multiple items matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d items", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous short IDs.
// Lists all matching IDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: ambiguous short ID '%s' matches %d items:\n", err.ShortID, len(err.Matches))

	displayCount := len(err.Matches)
	if displayCount > 10 {
		displayCount = 10
	}

	for i := 0; i < displayCount; i++ {
		fmt.Fprintf(&b, "  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-10)
	}

	b.WriteString("\nUse a longer prefix to uniquely identify the item.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
