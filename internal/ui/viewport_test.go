package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
	"github.com/auwalms/kasuwa/internal/session"
	"github.com/auwalms/kasuwa/internal/state"
)

type stubPrefs struct {
	user   market.User
	authed bool
	theme  string
}

func (s *stubPrefs) Theme() string                    { return s.theme }
func (s *stubPrefs) SetTheme(theme string)            { s.theme = theme }
func (s *stubPrefs) CurrentUser() (market.User, bool) { return s.user, s.authed }
func (s *stubPrefs) SetCurrentUser(u market.User)     { s.user, s.authed = u, true }
func (s *stubPrefs) ClearCurrentUser()                { s.authed = false }

// newTestModel builds a sized model with amina logged in.
func newTestModel(t *testing.T, snap state.Snapshot) Model {
	t.Helper()
	sess := session.New(&stubPrefs{
		user:   market.User{ID: "u1", Name: "Amina", Username: "amina"},
		authed: true,
	}, func() bool { return true })

	m := New(Options{
		Session: sess,
		Nav:     nav.NewController(&nav.Stack{}),
	})
	m.width = 80
	m.height = 12
	m.ready = true
	m.initInputs()
	m.snapshot = snap
	return m
}

func chatFixture(messageCount int) state.Snapshot {
	thread := market.MessageThread{
		ID:           market.ThreadID("p1", "u1", "u2"),
		ProductID:    "p1",
		ProductTitle: "Bike",
		Participants: [2]string{"u1", "u2"},
	}
	for i := 0; i < messageCount; i++ {
		thread.Messages = append(thread.Messages, market.Message{
			ID:       fmt.Sprintf("m%d", i),
			SenderID: "u2",
			Text:     fmt.Sprintf("message-%c", 'a'+i),
		})
	}
	return state.Snapshot{
		Users: []market.User{
			{ID: "u1", Name: "Amina"},
			{ID: "u2", Name: "Bala"},
		},
		Threads: []market.MessageThread{thread},
		Loaded:  true,
	}
}

func TestChatViewport_WholeHistoryReachable(t *testing.T) {
	m := newTestModel(t, chatFixture(10))
	m.nav.GoToPage(nav.PageMessages)
	m.nav.OpenThread(market.ThreadID("p1", "u1", "u2"))
	m.updateChatViewport()

	if got := m.chatViewport.TotalLineCount(); got != 10 {
		t.Fatalf("scrollback holds %d lines, want all 10 messages", got)
	}

	// Opens pinned to the newest message.
	if !m.chatViewport.AtBottom() {
		t.Fatalf("scrollback should open at the newest message")
	}
	if view := m.chatViewport.View(); !strings.Contains(view, "message-j") {
		t.Fatalf("newest message missing from the visible window:\n%s", view)
	}

	// The oldest message is still reachable by scrolling up.
	m.chatViewport.GotoTop()
	if view := m.chatViewport.View(); !strings.Contains(view, "message-a") {
		t.Fatalf("oldest message unreachable after scrolling to top:\n%s", view)
	}
}

func TestChatViewport_RefreshKeepsScrollPosition(t *testing.T) {
	m := newTestModel(t, chatFixture(10))
	m.nav.GoToPage(nav.PageMessages)
	m.nav.OpenThread(market.ThreadID("p1", "u1", "u2"))
	m.updateChatViewport()

	// Reading old history: a background refresh must not yank the view back
	// down to the newest message.
	m.chatViewport.GotoTop()
	m.snapshot = chatFixture(11)
	m.updateChatViewport()
	if view := m.chatViewport.View(); !strings.Contains(view, "message-a") {
		t.Fatalf("refresh moved the view away from the oldest message:\n%s", view)
	}

	// Pinned to the bottom, a refresh follows the newest message.
	m.chatViewport.GotoBottom()
	m.snapshot = chatFixture(12)
	m.updateChatViewport()
	if view := m.chatViewport.View(); !strings.Contains(view, "message-l") {
		t.Fatalf("refresh at bottom should follow the newest message:\n%s", view)
	}
}

func TestDetailViewport_LongDescriptionScrolls(t *testing.T) {
	var desc []string
	for i := 0; i < 40; i++ {
		desc = append(desc, fmt.Sprintf("para-%02d", i))
	}

	snap := state.Snapshot{
		Products: []market.Product{{
			ID:          "p1",
			Title:       "Bike",
			Price:       85000,
			Category:    "Vehicles",
			SellerID:    "u2",
			Description: strings.Join(desc, "\n"),
		}},
		Users: []market.User{
			{ID: "u2", Name: "Bala", Username: "bala"},
		},
		Loaded: true,
	}

	m := newTestModel(t, snap)
	m.nav.OpenProduct("p1", 0)
	m.updateDetailViewport()
	m.detailViewport.GotoTop()

	if view := m.detailViewport.View(); !strings.Contains(view, "Bike") {
		t.Fatalf("detail pane should open on the title:\n%s", view)
	}

	// The seller card sits below the description and stays reachable.
	m.detailViewport.GotoBottom()
	if view := m.detailViewport.View(); !strings.Contains(view, "@bala") {
		t.Fatalf("seller card unreachable below a long description:\n%s", view)
	}
}
