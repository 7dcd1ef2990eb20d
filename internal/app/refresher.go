package app

import (
	"context"
	"log"
	"time"

	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/session"
	"github.com/auwalms/kasuwa/internal/state"
)

const defaultRefreshInterval = 30 * time.Second

// threadLister is the slice of the API the refresher needs.
type threadLister interface {
	ListThreads(ctx context.Context) ([]market.MessageThread, error)
}

// StartThreadRefresher launches a background goroutine that refetches
// conversation threads at a fixed cadence, so incoming messages appear
// without a manual reload. It returns immediately. The first fetch happens
// one interval in; the initial load covers startup.
func StartThreadRefresher(ctx context.Context, store *state.Store, api threadLister, sess *session.Session, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			refreshThreads(ctx, store, api, sess)
		}
	}()
}

// refreshThreads replaces the stored threads with the server's view. Nothing
// is fetched before the initial load lands or while no user is signed in.
func refreshThreads(ctx context.Context, store *state.Store, api threadLister, sess *session.Session) {
	if _, ok := sess.User(); !ok {
		return
	}
	if !store.Snapshot().Loaded {
		return
	}

	threads, err := api.ListThreads(ctx)
	if err != nil {
		log.Printf("thread refresh failed: %v", err)
		return
	}
	store.ReplaceThreads(threads)
}
