package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/auwalms/kasuwa/internal/actions"
	"github.com/auwalms/kasuwa/internal/config"
	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
	"github.com/auwalms/kasuwa/internal/prefs"
	"github.com/auwalms/kasuwa/internal/session"
	"github.com/auwalms/kasuwa/internal/state"
	"github.com/auwalms/kasuwa/internal/ui"
)

// Options configure the Kasuwa application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses the config file's prefs_path
	RefreshEvery int    // seconds; zero uses the default
}

// Run boots the Kasuwa TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = cfg.PrefsPath
	}
	prefsStore := prefs.NewStore(prefsPath)

	sess := session.New(prefsStore, lipgloss.HasDarkBackground)

	// Without an api_url every call errors through the nil client; the
	// coordinator turns those into user-visible notifications.
	var api market.API = (*market.Client)(nil)
	if cfg.Configured() {
		client, err := market.NewClient(cfg.APIURL)
		if err != nil {
			return fmt.Errorf("init api client: %w", err)
		}
		api = client
	}

	store := &state.Store{}

	relay := &ui.Relay{}
	coord := actions.New(api, store, sess, relay, cfg.Configured())

	interval := defaultRefreshInterval
	if opts.RefreshEvery > 0 {
		interval = time.Duration(opts.RefreshEvery) * time.Second
	}
	StartThreadRefresher(ctx, store, api, sess, interval)

	uiOpts := ui.Options{
		Context:     ctx,
		Coordinator: coord,
		Store:       store,
		Session:     sess,
		Nav:         nav.NewController(&nav.Stack{}),
	}
	return ui.Run(uiOpts, relay)
}
