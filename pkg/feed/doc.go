// Package feed mirrors selection events onto Redis Pub/Sub so that other
// processes can observe containers as they change.
//
// # Overview
//
// Every container event (selected, deselected, select:*, add, remove, reset)
// becomes a Message published on a single instance-scoped channel. The feed is
// observation only: nothing is ever read back into a container, and a failed
// publish never affects the selection call that produced the event.
//
// # Usage Example
//
//	client, err := feed.NewClient(&redis.Options{Addr: "localhost:6379"}, "default-1")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	detach := client.Attach(ctx, "colours", container)
//	defer detach()
//
// # Redis Schema
//
// Pub/Sub channel: picky:{instance_name}:selection_events
//
// Messages are JSON-encoded Message values. Delivery is at-most-once, as with
// any Redis Pub/Sub channel.
package feed
