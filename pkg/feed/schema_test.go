package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionEventsChannel(t *testing.T) {
	assert.Equal(t, "picky:default-1:selection_events", SelectionEventsChannel("default-1"))
	assert.Equal(t, "picky:prod:selection_events", SelectionEventsChannel("prod"))
}
