// Package state provides the thread-safe entity store for the Kasuwa
// application.
//
// # Overview
//
// The Store holds the normalized collections of Products, Users, and
// MessageThreads loaded from the marketplace API. It is the single source of
// truth for everything rendered: derived views recompute from a Snapshot,
// and a view is never stored independently.
//
// # Architecture
//
// The store sits between the mutation coordinator and the UI:
//
//	Writer (actions.Coordinator):       Reader (UI):
//	┌──────────────────────┐           ┌──────────────────┐
//	│ validate             │           │                  │
//	│ remote call          │           │ store.Snapshot() │
//	│ store.Prepend/Put…() │──────────→│       ↓          │
//	│                      │  (mutex)  │ derive + render  │
//	└──────────────────────┘           └──────────────────┘
//
// Mutations run on command goroutines while the UI reads from the event
// loop, so access is guarded by a readers-writer lock and every Snapshot is
// a defensive copy. A snapshot can therefore never observe a partially
// committed mutation.
//
// # Write Semantics
//
// The store performs no validation of its own; trust is delegated to the
// coordinator, which validates before committing. Failed remote operations
// never reach the store, so there is no rollback path:
//
//	// Success: commit the authoritative result
//	created, err := api.CreateProduct(ctx, p)
//	if err == nil {
//		store.PrependProduct(created)
//	}
//	// Failure: store untouched, user notified
//
// Collections keep display order. Products and users are prepended on
// create, mirroring the newest-first ordering the API returns; threads are
// appended and ordered by the view layer on their cached last-message
// timestamp.
//
// # Testing Considerations
//
// The zero value is ready to use:
//
//	store := &state.Store{}
//
// Snapshot() on a fresh store returns empty collections with Loaded false,
// which the UI renders as the initial loading state.
package state
