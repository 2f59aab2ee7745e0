package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dyluth/picky/pkg/selection"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects printer output into buffers for the duration of a test
func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}

	prevOut, prevErr, prevNoColor := stdout, stderr, color.NoColor
	stdout, stderr = out, errOut
	color.NoColor = true
	t.Cleanup(func() {
		stdout, stderr, color.NoColor = prevOut, prevErr, prevNoColor
	})

	return out, errOut
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "This is a test error")
	})

	t.Run("single suggestion is printed as is", func(t *testing.T) {
		_, errOut := capture(t)
		Error("Test Error", "Explanation", []string{"Try this fix"})
		assert.Contains(t, errOut.String(), "\nTry this fix\n")
		assert.NotContains(t, errOut.String(), "Either:")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		_, errOut := capture(t)
		Error("Test Error", "Explanation", []string{"First", "Second"})
		assert.Contains(t, errOut.String(), "Either:\n  1. First\n  2. Second\n")
	})
}

func TestErrorWithContext(t *testing.T) {
	_, errOut := capture(t)
	err := ErrorWithContext("Step failed", "", map[string]string{"step": "3", "container": "colours"}, nil)

	require.EqualError(t, err, "Step failed")
	out := errOut.String()
	assert.Less(t, strings.Index(out, "container: colours"), strings.Index(out, "step: 3"), "context keys are sorted")
}

func TestMessages(t *testing.T) {
	out, errOut := capture(t)

	Success("done\n")
	Warning("careful\n")
	Step("replaying\n")
	Event(selection.EventSelected, "selected red\n")

	assert.Contains(t, out.String(), "✓ done")
	assert.Contains(t, out.String(), "→ replaying")
	assert.Contains(t, out.String(), "selected red")
	assert.Contains(t, errOut.String(), "careful")
}
