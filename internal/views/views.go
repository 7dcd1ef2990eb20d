// Package views derives display collections from the entity store and
// session state. Every function is pure: inputs are never mutated and the
// same inputs always produce the same output, so a view can be recomputed on
// any state change without side effects.
package views

import (
	"sort"
	"strings"

	"github.com/auwalms/kasuwa/internal/market"
)

// FilterProducts returns the products matching a category filter and a
// case-insensitive substring query against title or description.
// market.CategoryAll matches every category; an empty query matches
// everything.
func FilterProducts(products []market.Product, category, query string) []market.Product {
	needle := strings.ToLower(query)
	var out []market.Product
	for _, p := range products {
		if category != market.CategoryAll && p.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SavedProducts returns the products whose ids are in the saved set,
// preserving product order.
func SavedProducts(products []market.Product, saved map[string]struct{}) []market.Product {
	var out []market.Product
	for _, p := range products {
		if _, ok := saved[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// OwnedProducts returns the products listed by the given seller. An empty
// seller id (no authenticated user) owns nothing.
func OwnedProducts(products []market.Product, sellerID string) []market.Product {
	if sellerID == "" {
		return nil
	}
	var out []market.Product
	for _, p := range products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out
}

// ActiveThread resolves the thread referenced by a navigation entry.
func ActiveThread(threads []market.MessageThread, threadID string) (market.MessageThread, bool) {
	if threadID == "" {
		return market.MessageThread{}, false
	}
	for _, t := range threads {
		if t.ID == threadID {
			return t, true
		}
	}
	return market.MessageThread{}, false
}

// SortThreads returns the threads ordered by last activity, newest first.
// The input is left untouched.
func SortThreads(threads []market.MessageThread) []market.MessageThread {
	out := make([]market.MessageThread, len(threads))
	copy(out, threads)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTimestamp > out[j].LastMessageTimestamp
	})
	return out
}

// UserThreads returns the threads the given user participates in.
func UserThreads(threads []market.MessageThread, userID string) []market.MessageThread {
	var out []market.MessageThread
	for _, t := range threads {
		if t.Participants[0] == userID || t.Participants[1] == userID {
			out = append(out, t)
		}
	}
	return out
}

// OtherParticipant returns the participant that is not self.
func OtherParticipant(t market.MessageThread, selfID string) (string, bool) {
	if t.Participants[0] == selfID {
		return t.Participants[1], true
	}
	if t.Participants[1] == selfID {
		return t.Participants[0], true
	}
	return "", false
}
