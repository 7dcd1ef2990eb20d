package session

import (
	"testing"

	"github.com/auwalms/kasuwa/internal/market"
)

// fakePersistence is an in-memory session.Persistence.
type fakePersistence struct {
	theme   string
	user    market.User
	hasUser bool
}

func (f *fakePersistence) Theme() string         { return f.theme }
func (f *fakePersistence) SetTheme(theme string) { f.theme = theme }
func (f *fakePersistence) CurrentUser() (market.User, bool) {
	return f.user, f.hasUser
}
func (f *fakePersistence) SetCurrentUser(u market.User) { f.user, f.hasUser = u, true }
func (f *fakePersistence) ClearCurrentUser()            { f.user, f.hasUser = market.User{}, false }

func TestNew_RehydratesUserAndTheme(t *testing.T) {
	p := &fakePersistence{theme: "dark", user: market.User{ID: "u1", Username: "amina"}, hasUser: true}
	s := New(p, func() bool { return false })

	u, ok := s.User()
	if !ok || u.ID != "u1" {
		t.Fatalf("User = %#v/%v, want rehydrated u1", u, ok)
	}
	if s.Theme() != ThemeDark {
		t.Fatalf("Theme = %q, want dark", s.Theme())
	}
	if s.Mode() != ModeDark {
		t.Fatalf("Mode = %q, want dark", s.Mode())
	}
}

func TestNew_UnknownThemeFallsBackToSystem(t *testing.T) {
	p := &fakePersistence{theme: "neon"}
	s := New(p, func() bool { return true })

	if s.Theme() != ThemeSystem {
		t.Fatalf("Theme = %q, want system", s.Theme())
	}
	if s.Mode() != ModeDark {
		t.Fatalf("Mode = %q, want dark from platform signal", s.Mode())
	}
}

func TestSetTheme_ResolvesSystemAtCallTimeOnly(t *testing.T) {
	dark := false
	p := &fakePersistence{}
	s := New(p, func() bool { return dark })

	if mode := s.SetTheme(ThemeSystem); mode != ModeLight {
		t.Fatalf("SetTheme(system) = %q, want light", mode)
	}

	// The platform flips, but nothing re-resolves until the next SetTheme.
	dark = true
	if s.Mode() != ModeLight {
		t.Fatalf("Mode = %q after platform change, want stale light", s.Mode())
	}
	if mode := s.SetTheme(ThemeSystem); mode != ModeDark {
		t.Fatalf("SetTheme(system) = %q after platform change, want dark", mode)
	}

	if p.theme != "system" {
		t.Fatalf("persisted theme = %q, want system", p.theme)
	}
}

func TestAuthenticate_PersistsAndClearsSaved(t *testing.T) {
	p := &fakePersistence{}
	s := New(p, nil)

	s.ReplaceSaved(map[string]struct{}{"p9": {}})
	s.Authenticate(market.User{ID: "u1", Username: "amina"})

	if !p.hasUser || p.user.ID != "u1" {
		t.Fatalf("persisted user = %#v/%v, want u1", p.user, p.hasUser)
	}
	if len(s.SavedIDs()) != 0 {
		t.Fatalf("saved = %v after Authenticate, want empty until reload", s.SavedIDs())
	}
}

func TestDeauthenticate_ClearsSavedButKeepsTheme(t *testing.T) {
	p := &fakePersistence{}
	s := New(p, func() bool { return false })
	s.Authenticate(market.User{ID: "u1"})
	s.SetTheme(ThemeDark)
	s.MarkSaved("p1", true)

	s.Deauthenticate()

	if _, ok := s.User(); ok {
		t.Fatalf("User = true after Deauthenticate")
	}
	if p.hasUser {
		t.Fatalf("persisted user still present after Deauthenticate")
	}
	if len(s.SavedIDs()) != 0 {
		t.Fatalf("saved = %v after Deauthenticate, want empty", s.SavedIDs())
	}
	if s.Theme() != ThemeDark || p.theme != "dark" {
		t.Fatalf("theme = %q/%q after Deauthenticate, want dark kept", s.Theme(), p.theme)
	}
}

func TestMarkSaved_RoundTrip(t *testing.T) {
	s := New(&fakePersistence{}, nil)

	if s.IsSaved("p1") {
		t.Fatalf("IsSaved(p1) = true on fresh session")
	}
	s.MarkSaved("p1", true)
	if !s.IsSaved("p1") {
		t.Fatalf("IsSaved(p1) = false after save")
	}
	s.MarkSaved("p1", false)
	if s.IsSaved("p1") {
		t.Fatalf("IsSaved(p1) = true after unsave")
	}
	if len(s.SavedIDs()) != 0 {
		t.Fatalf("saved set = %v, want the original empty set", s.SavedIDs())
	}
}

func TestUpdate_IgnoresOtherUsers(t *testing.T) {
	p := &fakePersistence{}
	s := New(p, nil)
	s.Authenticate(market.User{ID: "u1", Name: "Amina"})

	s.Update(market.User{ID: "u2", Name: "Bala"})
	if u, _ := s.User(); u.ID != "u1" || u.Name != "Amina" {
		t.Fatalf("User = %#v, want unchanged u1", u)
	}

	s.Update(market.User{ID: "u1", Name: "Amina S."})
	if u, _ := s.User(); u.Name != "Amina S." {
		t.Fatalf("User.Name = %q, want updated", u.Name)
	}
	if p.user.Name != "Amina S." {
		t.Fatalf("persisted name = %q, want re-synced", p.user.Name)
	}
}
