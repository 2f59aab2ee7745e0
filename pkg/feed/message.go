package feed

import (
	"fmt"
	"time"

	"github.com/dyluth/picky/pkg/selection"
	"github.com/google/uuid"
)

// Message is the wire form of one container event.
type Message struct {
	Instance    string              `json:"instance"`         // Feed instance the message was published on
	Container   string              `json:"container"`        // UUID of the emitting container
	Name        string              `json:"name,omitempty"`   // Human-readable container name given to Attach
	Kind        selection.Kind      `json:"kind"`             // Consistency rule of the container
	Type        selection.EventType `json:"type"`             // Event type
	Label       selection.Label     `json:"label,omitempty"`  // Selection channel; empty for population events
	Item        string              `json:"item,omitempty"`   // Item ID; empty for status and reset events
	Status      selection.Status    `json:"status,omitempty"` // Aggregate status, status events only
	TimestampMs int64               `json:"timestamp_ms"`     // Unix timestamp in milliseconds
}

// NewMessage converts a container event into a message.
func NewMessage(instanceName, name string, ev selection.Event) *Message {
	m := &Message{
		Instance:    instanceName,
		Name:        name,
		Type:        ev.Type,
		Label:       ev.Label,
		Status:      ev.Status,
		TimestampMs: time.Now().UnixMilli(),
	}
	if ev.Container != nil {
		m.Container = ev.Container.ID()
		m.Kind = ev.Container.Kind()
	}
	if ev.Item != nil {
		m.Item = ev.Item.ID
	}
	return m
}

// Validate checks if the Message has valid field values.
func (m *Message) Validate() error {
	if m.Instance == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if _, err := uuid.Parse(m.Container); err != nil {
		return fmt.Errorf("invalid container ID: not a valid UUID")
	}

	if err := m.Kind.Validate(); err != nil {
		return fmt.Errorf("invalid kind: %w", err)
	}

	if err := m.Type.Validate(); err != nil {
		return fmt.Errorf("invalid event type: %w", err)
	}

	switch {
	case m.Type.IsStatusEvent():
		if m.Status == "" {
			return fmt.Errorf("status cannot be empty for %s events", m.Type)
		}
	case m.Type != selection.EventReset:
		if m.Item == "" {
			return fmt.Errorf("item ID cannot be empty for %s events", m.Type)
		}
	}

	return nil
}

// Time returns the publication time of the message.
func (m *Message) Time() time.Time {
	return time.UnixMilli(m.TimestampMs)
}
