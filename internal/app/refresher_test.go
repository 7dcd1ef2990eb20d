package app

import (
	"context"
	"errors"
	"testing"

	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/session"
	"github.com/auwalms/kasuwa/internal/state"
)

type stubLister struct {
	threads []market.MessageThread
	err     error
	calls   int
}

func (s *stubLister) ListThreads(ctx context.Context) ([]market.MessageThread, error) {
	s.calls++
	return s.threads, s.err
}

type stubPersistence struct{}

func (stubPersistence) Theme() string                    { return "dark" }
func (stubPersistence) SetTheme(string)                  {}
func (stubPersistence) CurrentUser() (market.User, bool) { return market.User{}, false }
func (stubPersistence) SetCurrentUser(market.User)       {}
func (stubPersistence) ClearCurrentUser()                {}

func loadedStore() *state.Store {
	store := &state.Store{}
	store.ReplaceAll(nil, nil, []market.MessageThread{{ID: "t1"}})
	return store
}

func TestRefreshThreads_SkipsWhenLoggedOut(t *testing.T) {
	api := &stubLister{}
	sess := session.New(stubPersistence{}, nil)

	refreshThreads(context.Background(), loadedStore(), api, sess)

	if api.calls != 0 {
		t.Fatalf("ListThreads called %d times with no user, want 0", api.calls)
	}
}

func TestRefreshThreads_SkipsBeforeInitialLoad(t *testing.T) {
	api := &stubLister{}
	sess := session.New(stubPersistence{}, nil)
	sess.Authenticate(market.User{ID: "u1"})

	refreshThreads(context.Background(), &state.Store{}, api, sess)

	if api.calls != 0 {
		t.Fatalf("ListThreads called %d times before initial load, want 0", api.calls)
	}
}

func TestRefreshThreads_ReplacesThreads(t *testing.T) {
	api := &stubLister{threads: []market.MessageThread{{ID: "t1"}, {ID: "t2"}}}
	sess := session.New(stubPersistence{}, nil)
	sess.Authenticate(market.User{ID: "u1"})
	store := loadedStore()

	refreshThreads(context.Background(), store, api, sess)

	if got := len(store.Snapshot().Threads); got != 2 {
		t.Fatalf("threads = %d after refresh, want 2", got)
	}
}

func TestRefreshThreads_FailureLeavesStoreUntouched(t *testing.T) {
	api := &stubLister{err: errors.New("boom")}
	sess := session.New(stubPersistence{}, nil)
	sess.Authenticate(market.User{ID: "u1"})
	store := loadedStore()

	refreshThreads(context.Background(), store, api, sess)

	threads := store.Snapshot().Threads
	if len(threads) != 1 || threads[0].ID != "t1" {
		t.Fatalf("threads = %#v after failed refresh, want original t1", threads)
	}
}
