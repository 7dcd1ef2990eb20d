package state

import (
	"sync"

	"github.com/auwalms/kasuwa/internal/market"
)

// Snapshot is an immutable view of the entity collections at a point in time.
// Products and Users keep their display order (newest first); Threads keep
// load/append order and are sorted by the view layer.
type Snapshot struct {
	Products []market.Product
	Users    []market.User
	Threads  []market.MessageThread
	Loaded   bool
}

// Product returns the product with the given id.
func (s Snapshot) Product(id string) (market.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return market.Product{}, false
}

// User returns the user with the given id.
func (s Snapshot) User(id string) (market.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return market.User{}, false
}

// UserByUsername returns the user with the given username. Usernames are
// matched case-sensitively.
func (s Snapshot) UserByUsername(username string) (market.User, bool) {
	for _, u := range s.Users {
		if u.Username == username {
			return u, true
		}
	}
	return market.User{}, false
}

// Thread returns the thread with the given id.
func (s Snapshot) Thread(id string) (market.MessageThread, bool) {
	for _, t := range s.Threads {
		if t.ID == id {
			return t, true
		}
	}
	return market.MessageThread{}, false
}

// Store holds the normalized entity collections. It is the single source of
// truth for derived views; all writes go through the mutation coordinator.
type Store struct {
	mu       sync.RWMutex
	products []market.Product
	users    []market.User
	threads  []market.MessageThread
	loaded   bool
}

// ReplaceAll installs the result of the initial load.
func (s *Store) ReplaceAll(products []market.Product, users []market.User, threads []market.MessageThread) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = cloneProducts(products)
	s.users = cloneUsers(users)
	s.threads = cloneThreads(threads)
	s.loaded = true
}

// PrependProduct inserts a newly created listing at the front.
func (s *Store) PrependProduct(p market.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]market.Product{p}, s.products...)
}

// PutProduct replaces an existing listing in place. Unknown ids are ignored.
func (s *Store) PutProduct(p market.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return
		}
	}
}

// RemoveProduct deletes a listing.
func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// PrependUser inserts a newly registered user at the front.
func (s *Store) PrependUser(u market.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]market.User{u}, s.users...)
}

// PutUser replaces an existing user in place. Unknown ids are ignored.
func (s *Store) PutUser(u market.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return
		}
	}
}

// AppendThread records a newly created thread.
func (s *Store) AppendThread(t market.MessageThread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads = append(s.threads, cloneThread(t))
}

// AppendMessage appends a message to a thread and bumps its cached
// last-message timestamp. It reports whether the thread was found.
func (s *Store) AppendMessage(threadID string, m market.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.threads {
		if s.threads[i].ID == threadID {
			s.threads[i].Messages = append(s.threads[i].Messages, m)
			s.threads[i].LastMessageTimestamp = m.Timestamp
			return true
		}
	}
	return false
}

// ReplaceThreads installs a freshly fetched thread list, leaving products and
// users alone. Used by the background refresh so incoming messages appear
// without a full reload.
func (s *Store) ReplaceThreads(threads []market.MessageThread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads = cloneThreads(threads)
}

// Snapshot returns a copy of the current collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Products: cloneProducts(s.products),
		Users:    cloneUsers(s.users),
		Threads:  cloneThreads(s.threads),
		Loaded:   s.loaded,
	}
}

func cloneProducts(items []market.Product) []market.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]market.Product, len(items))
	copy(dup, items)
	return dup
}

func cloneUsers(items []market.User) []market.User {
	if len(items) == 0 {
		return nil
	}
	dup := make([]market.User, len(items))
	copy(dup, items)
	return dup
}

func cloneThreads(items []market.MessageThread) []market.MessageThread {
	if len(items) == 0 {
		return nil
	}
	dup := make([]market.MessageThread, len(items))
	for i, t := range items {
		dup[i] = cloneThread(t)
	}
	return dup
}

func cloneThread(t market.MessageThread) market.MessageThread {
	if len(t.Messages) > 0 {
		msgs := make([]market.Message, len(t.Messages))
		copy(msgs, t.Messages)
		t.Messages = msgs
	}
	return t
}
