// Package session owns the per-device state: the authenticated user, the
// saved-product-id set, and the theme preference. The user snapshot and
// theme are persisted through an injected store and rehydrated at startup;
// the saved set lives in memory only and is reloaded from the API on login.
package session

import (
	"sync"

	"github.com/auwalms/kasuwa/internal/market"
)

// Theme is the persisted appearance preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Mode is a resolved appearance: ThemeSystem collapses to light or dark.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseTheme maps a stored string onto a Theme, defaulting to system.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s)
	default:
		return ThemeSystem
	}
}

// Persistence is the durable local store behind the session. prefs.Store
// implements it; tests substitute an in-memory fake. Implementations must
// swallow their own failures.
type Persistence interface {
	Theme() string
	SetTheme(theme string)
	CurrentUser() (market.User, bool)
	SetCurrentUser(u market.User)
	ClearCurrentUser()
}

// Session tracks the current user, saved products, and theme. It is safe for
// concurrent use from the event loop and command goroutines.
type Session struct {
	mu    sync.RWMutex
	store Persistence

	user     *market.User
	saved    map[string]struct{}
	theme    Theme
	mode     Mode
	darkTerm func() bool // samples the platform color-scheme signal
}

// New rehydrates a session from the persistence store. darkTerm reports
// whether the platform currently prefers a dark scheme; it is sampled only
// when the system theme is (re)applied, never reactively.
func New(store Persistence, darkTerm func() bool) *Session {
	if darkTerm == nil {
		darkTerm = func() bool { return true }
	}
	s := &Session{
		store:    store,
		saved:    make(map[string]struct{}),
		darkTerm: darkTerm,
	}
	if u, ok := store.CurrentUser(); ok {
		s.user = &u
	}
	s.theme = ParseTheme(store.Theme())
	s.mode = s.resolve(s.theme)
	return s
}

// User returns a copy of the current user, if authenticated.
func (s *Session) User() (market.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return market.User{}, false
	}
	return *s.user, true
}

// Authenticate sets the current user and persists the snapshot. The saved
// set is cleared; the caller loads the user's own set afterwards.
func (s *Session) Authenticate(u market.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := u
	s.user = &user
	s.saved = make(map[string]struct{})
	s.store.SetCurrentUser(u)
}

// Update replaces the current user's fields and re-persists the snapshot.
// No-op when unauthenticated.
func (s *Session) Update(u market.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != u.ID {
		return
	}
	user := u
	s.user = &user
	s.store.SetCurrentUser(u)
}

// Deauthenticate clears the current user and the saved set, and removes the
// persisted user record. The theme preference is not touched.
func (s *Session) Deauthenticate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.saved = make(map[string]struct{})
	s.store.ClearCurrentUser()
}

// Theme returns the persisted preference.
func (s *Session) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Mode returns the appearance resolved at the last SetTheme (or startup).
func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetTheme updates and persists the preference, re-resolving system against
// the platform signal at this moment. A platform preference change later in
// the session is not picked up until the next SetTheme call.
func (s *Session) SetTheme(t Theme) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	s.mode = s.resolve(t)
	s.store.SetTheme(string(t))
	return s.mode
}

func (s *Session) resolve(t Theme) Mode {
	switch t {
	case ThemeLight:
		return ModeLight
	case ThemeDark:
		return ModeDark
	default:
		if s.darkTerm() {
			return ModeDark
		}
		return ModeLight
	}
}

// SavedIDs returns a copy of the saved-product-id set.
func (s *Session) SavedIDs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dup := make(map[string]struct{}, len(s.saved))
	for id := range s.saved {
		dup[id] = struct{}{}
	}
	return dup
}

// ReplaceSaved installs the authoritative saved set loaded from the API.
func (s *Session) ReplaceSaved(ids map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = make(map[string]struct{}, len(ids))
	for id := range ids {
		s.saved[id] = struct{}{}
	}
}

// MarkSaved records a confirmed save or unsave for one product.
func (s *Session) MarkSaved(productID string, saved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if saved {
		s.saved[productID] = struct{}{}
		return
	}
	delete(s.saved, productID)
}

// IsSaved reports membership in the saved set.
func (s *Session) IsSaved(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.saved[productID]
	return ok
}
