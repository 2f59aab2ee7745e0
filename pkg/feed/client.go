package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/dyluth/picky/pkg/selection"
	"github.com/redis/go-redis/v9"
)

// Client publishes and subscribes to the selection feed of one instance.
// The channel is automatically namespaced with the instance name.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb          *redis.Client
	instanceName string
}

// NewClient creates a new feed client for the specified instance.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - instanceName: feed instance identifier (must not be empty)
//
// Returns an error if instanceName is empty.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// InstanceName returns the instance the client is scoped to.
func (c *Client) InstanceName() string {
	return c.instanceName
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Publish validates a message and publishes it on the instance channel.
func (c *Client) Publish(ctx context.Context, m *Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	channel := SelectionEventsChannel(c.instanceName)
	if err := c.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish selection event: %w", err)
	}

	return nil
}

// Attach mirrors every event of container onto the feed under the given name.
// Publish failures are logged and never reach the selection call that emitted
// the event. The returned function stops mirroring.
func (c *Client) Attach(ctx context.Context, name string, container *selection.Container) (detach func()) {
	return container.OnAny(func(ev selection.Event) {
		m := NewMessage(c.instanceName, name, ev)
		if err := c.Publish(ctx, m); err != nil {
			log.Printf("[Feed] Failed to publish %s event for container %s: %v", ev.Type, name, err)
		}
	})
}

// Subscription represents an active Pub/Sub subscription to selection events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *Message
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of selection messages.
// The channel will be closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *Message {
	return s.events
}

// Errors returns the channel of subscription errors.
// The subscription continues after errors - messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements io.Closer.
// Safe to call multiple times - subsequent calls are no-ops.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe subscribes to the selection events of this instance.
// The subscription is confirmed by Redis before Subscribe returns, so messages
// published afterwards are not missed.
//
// Events are delivered on a buffered channel (size 10). If the subscriber is too
// slow, events may be dropped by Redis Pub/Sub (at-most-once delivery).
func (c *Client) Subscribe(ctx context.Context) (*Subscription, error) {
	channel := SelectionEventsChannel(c.instanceName)
	pubsub := c.rdb.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	eventsChan := make(chan *Message, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var m Message
				if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal selection event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &m:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
