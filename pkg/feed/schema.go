package feed

import "fmt"

// Channel pattern: picky:{instance_name}:{event_type}_events
//
// The instance name isolates feeds of several runs sharing one Redis server.

// SelectionEventsChannel returns the Pub/Sub channel name for selection events.
// Pattern: picky:{instance_name}:selection_events
func SelectionEventsChannel(instanceName string) string {
	return fmt.Sprintf("picky:%s:selection_events", instanceName)
}
