// Package selection adds a selection capability to plain data items and keeps
// the selection state of every item consistent with the containers that hold it.
//
// # Overview
//
// An Item is a Model (an opaque attribute payload with a stable ID) that has been
// augmented with per-label selection state. A Container groups items and enforces
// one of two consistency rules across its members:
//
//   - Exclusive: at most one member is selected per label.
//   - Inclusive: any subset of members may be selected per label, and the container
//     reports an aggregate status (none, some or all).
//
// Labels are independent selection channels. Operations that name no label use the
// item's or the container's default label, which is DefaultLabel unless configured.
//
// # Population
//
// Data enters a container through NewContainer, Add, Set or Reset. Raw attribute
// maps, nil entries, plain Models and Items can be mixed freely. Every element that
// is not yet an Item is run through the container's augmentation pipeline: a Factory
// turns raw attributes into a host object, and a Mixin grants it the selection
// capability. Items are passed through untouched.
//
//	one, err := selection.NewContainer(selection.Config{Kind: selection.Exclusive}, []any{
//		selection.Attributes{"n": 1},
//		selection.Attributes{"n": 2},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	one.At(0).Select()
//	one.At(1).Select() // deselects the first item
//
// # Notifications
//
// Containers and items emit events synchronously, after all consistency work for the
// call has completed. Passing Silently() to any call suppresses delivery for that
// call and its cascades but changes nothing else.
//
// # Concurrency
//
// Items and containers are not safe for concurrent use. All operations run to
// completion on the calling goroutine.
package selection
