package market

import (
	"encoding/json"
	"sort"
	"time"
)

// Categories is the fixed set a product may belong to. CategoryAll is the
// filter wildcard and never appears on a product itself.
const CategoryAll = "All"

var Categories = []string{
	"Electronics",
	"Phones",
	"Vehicles",
	"Fashion",
	"Home & Garden",
	"Property",
	"Services",
	"Jobs",
}

// DefaultLocation is stamped onto new listings.
const DefaultLocation = "Kano"

// Product is a marketplace listing.
type Product struct {
	ID          string
	Title       string
	Price       float64
	Category    string
	Images      []string // at least one; URLs or data URLs
	Location    string
	Date        string // display date, e.g. "Sep 14"
	Description string
	SellerID    string
}

// User is a registered account.
type User struct {
	ID             string
	Name           string
	Username       string
	ProfilePicture string // URL or data URL
}

// Message is a single chat message inside a thread. Timestamp is assigned by
// the server in Unix milliseconds and increases monotonically within a thread.
type Message struct {
	ID        string
	SenderID  string
	Text      string
	Timestamp int64
}

// MessageThread is a conversation between exactly two users about one product.
// Messages are append-only; LastMessageTimestamp caches the newest message
// timestamp for thread-list ordering.
type MessageThread struct {
	ID                   string
	ProductID            string
	ProductTitle         string
	Participants         [2]string
	Messages             []Message
	LastMessageTimestamp int64
}

// ThreadID derives the canonical thread id for a product and participant
// pair. The participants are sorted first, so the id is identical regardless
// of who opens the conversation. The format matches existing stored data.
func ThreadID(productID, userA, userB string) string {
	lo, hi := userA, userB
	if hi < lo {
		lo, hi = hi, lo
	}
	return productID + "-" + lo + "-" + hi
}

// NewThread builds the thread shell for a first contact about a product.
// The product title is denormalized as a snapshot taken at creation time.
func NewThread(p Product, buyerID string) MessageThread {
	pair := []string{buyerID, p.SellerID}
	sort.Strings(pair)
	return MessageThread{
		ID:           ThreadID(p.ID, buyerID, p.SellerID),
		ProductID:    p.ID,
		ProductTitle: p.Title,
		Participants: [2]string{pair[0], pair[1]},
	}
}

// DisplayDate formats a listing date the way the marketplace shows them.
func DisplayDate(t time.Time) string {
	return t.Format("Jan 2")
}

// normalizeImages converts the wire form of a product image payload into an
// ordered slice. Stored values predate the multi-image schema and arrive as
// either a JSON array of strings, a string holding an encoded array, or a
// bare URL string. Nothing outside this package ever sees the ambiguous form.
func normalizeImages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var images []string
	if err := json.Unmarshal(raw, &images); err == nil {
		return images
	}

	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil
	}
	if single == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(single), &images); err == nil {
		return images
	}
	return []string{single}
}
