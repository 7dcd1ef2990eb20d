// Package market defines the marketplace entity types and the HTTP client
// for the remote persistence service.
//
// # Overview
//
// The package is the boundary between Kasuwa and the hosted marketplace API.
// It owns the entity vocabulary (Product, User, Message, MessageThread), the
// canonical thread-id derivation, and the normalization of legacy wire
// payloads. Everything above this package works with clean Go types only.
//
// # Architecture
//
// The package is split into three files:
//
//   - types.go: Entity structs, ThreadID derivation, image normalization
//   - wire.go: JSON structs mirroring the service's snake_case schema
//   - client.go: HTTP client implementation and the API interface
//
// # Client Usage
//
// Create a client using the API URL from configuration:
//
//	client, err := market.NewClient("https://api.example.com")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	products, err := client.ListProducts(ctx)
//	if err != nil {
//		log.Printf("product fetch failed: %v", err)
//	}
//
// # The API Interface
//
// The mutation coordinator depends on the API interface rather than *Client,
// so tests can substitute an in-memory fake. The interface enumerates the
// exact surface consumed: CRUD for products and users, list/create for
// threads, create for messages, set membership for saved products, and a
// binary upload that returns a retrievable URL.
//
// # Thread Identity
//
// A thread id is a pure function of the product id and the two participant
// ids sorted into canonical order:
//
//	ThreadID("p1", "u2", "u1") == ThreadID("p1", "u1", "u2") == "p1-u1-u2"
//
// This makes thread creation idempotent: messaging the same seller about the
// same product a second time resolves to the existing thread instead of
// minting a duplicate.
//
// # Image Normalization
//
// The service stores a product's images in a single column that historically
// held one URL and now usually holds a JSON-encoded array. The wire layer
// decodes all three observed shapes (array, encoded array in a string, bare
// string) into []string before a Product leaves this package.
//
// # Error Handling
//
// All requests use context for cancellation, set Accept and User-Agent
// headers, and return wrapped errors:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /api/products returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// The client never interprets failures; the mutation coordinator maps them
// into user-visible notifications.
package market
