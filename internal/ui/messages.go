package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
	"github.com/auwalms/kasuwa/internal/state"
	"github.com/auwalms/kasuwa/internal/views"
)

// visibleThreads returns the authenticated user's conversations, newest
// activity first.
func (m Model) visibleThreads() []market.MessageThread {
	user, ok := m.session.User()
	if !ok {
		return nil
	}
	return views.SortThreads(views.UserThreads(m.snapshot.Threads, user.ID))
}

// renderMessagesList renders the conversations page.
func (m Model) renderMessagesList() string {
	user, ok := m.session.User()
	if !ok {
		return m.renderEmpty("Log in to see your messages")
	}

	threads := m.visibleThreads()
	if len(threads) == 0 {
		return m.renderEmpty("No conversations yet. Message a seller to start one.")
	}

	var lines []string
	for i, t := range threads {
		lines = append(lines, m.formatThreadRow(t, user.ID, i == m.threadRow))
	}
	return strings.Join(lines, "\n")
}

// formatThreadRow renders one conversation line:
// "Name  Product Title  last message…  time"
func (m Model) formatThreadRow(t market.MessageThread, selfID string, selected bool) string {
	bgColor := m.theme.Background
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	otherName := "Unknown"
	if otherID, ok := views.OtherParticipant(t, selfID); ok {
		if other, found := m.snapshot.User(otherID); found {
			otherName = other.Name
		}
	}

	preview, when := "", ""
	if n := len(t.Messages); n > 0 {
		last := t.Messages[n-1]
		preview = last.Text
		if last.SenderID == selfID {
			preview = "You: " + preview
		}
		when = formatMessageTime(last.Timestamp)
	}

	var nameStyle, productStyle, previewStyle, timeStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, productStyle, previewStyle, timeStyle = selText.Bold(true), selText, selText, selText
	} else {
		styles := m.theme.Styles()
		nameStyle = styles.Text.Bold(true)
		productStyle = styles.AccentText
		previewStyle = styles.MutedText
		timeStyle = styles.FaintText
	}

	parts := []string{
		bg.Render(truncate(otherName, 20), nameStyle),
		bg.Render(truncate(t.ProductTitle, 28), productStyle),
		bg.Render(truncate(preview, 40), previewStyle),
	}
	if when != "" {
		parts = append(parts, bg.Render(when, timeStyle))
	}

	return bg.FillLine(strings.Join(parts, bg.Spaces(2)), m.width)
}

// chatHeight is the rows available to the chat scrollback, under the title
// line and above the input.
func (m Model) chatHeight() int {
	h := m.contentHeight() - 3
	if h < 1 {
		h = 1
	}
	return h
}

// initChatViewport initializes the chat scrollback viewport.
func (m *Model) initChatViewport() {
	m.chatViewport = viewport.New(m.width, m.chatHeight())
	m.chatViewport.Style = lipgloss.NewStyle()
}

// updateChatViewport refreshes the scrollback when a chat is open. It stays
// pinned to the newest message unless the reader has scrolled up, so a
// background refresh does not yank the view away from older history.
func (m *Model) updateChatViewport() {
	entry := m.nav.Current()
	if entry.View != nav.ViewThread {
		return
	}
	if m.chatViewport.Width == 0 {
		m.initChatViewport()
	}
	m.chatViewport.Width = m.width
	m.chatViewport.Height = m.chatHeight()

	user, ok := m.session.User()
	if !ok {
		return
	}
	follow := m.chatViewport.AtBottom()

	thread, exists := views.ActiveThread(m.snapshot.Threads, entry.ThreadID)
	if !exists || len(thread.Messages) == 0 {
		styles := m.theme.Styles()
		m.chatViewport.SetContent(lipgloss.Place(m.width, m.chatViewport.Height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No messages yet. Say hello!")))
	} else {
		m.chatViewport.SetContent(m.renderChatHistory(thread, user.ID))
	}

	if follow {
		m.chatViewport.GotoBottom()
	}
}

// renderThread renders the chat overlay: scrollback above the input.
func (m Model) renderThread(threadID string) string {
	user, ok := m.session.User()
	if !ok {
		return m.renderEmpty("Log in to see your messages")
	}
	styles := m.theme.Styles()

	thread, exists := views.ActiveThread(m.snapshot.Threads, threadID)

	// Title line: who and about what.
	title := "New conversation"
	if exists {
		otherName := "Unknown"
		if otherID, found := views.OtherParticipant(thread, user.ID); found {
			if other, found := m.snapshot.User(otherID); found {
				otherName = other.Name
			}
		}
		title = otherName + " · " + thread.ProductTitle
	} else if product, found := productForThread(m.snapshot, user.ID, threadID); found {
		if seller, found := m.snapshot.User(product.SellerID); found {
			title = seller.Name + " · " + product.Title
		} else {
			title = product.Title
		}
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(truncate(title, m.width-2)))
	b.WriteString("\n")
	b.WriteString(m.chatViewport.View())
	b.WriteString("\n")
	b.WriteString(m.chatInput.View())
	return b.String()
}

// renderChatHistory renders the full message history. The viewport windows
// it, so every message stays reachable no matter how long the thread gets.
func (m Model) renderChatHistory(thread market.MessageThread, selfID string) string {
	styles := m.theme.Styles()

	var lines []string
	for _, msg := range thread.Messages {
		prefix := styles.MutedText.Render(formatMessageTime(msg.Timestamp) + " ")
		var body string
		if msg.SenderID == selfID {
			body = styles.AccentText.Render("You: ") + styles.Text.Render(msg.Text)
		} else {
			name := "Them"
			if sender, ok := m.snapshot.User(msg.SenderID); ok {
				name = sender.Name
			}
			body = styles.SuccessText.Render(name+": ") + styles.Text.Render(msg.Text)
		}
		lines = append(lines, prefix+body)
	}
	return strings.Join(lines, "\n")
}

// productForThread finds the product whose canonical thread id with the
// current user matches. Used when a chat is opened before its thread exists.
func productForThread(snap state.Snapshot, selfID, threadID string) (market.Product, bool) {
	for _, p := range snap.Products {
		if market.ThreadID(p.ID, selfID, p.SellerID) == threadID {
			return p, true
		}
	}
	return market.Product{}, false
}

// formatMessageTime renders a Unix-millisecond timestamp: clock time for
// today, the listing date format otherwise.
func formatMessageTime(unixMillis int64) string {
	if unixMillis == 0 {
		return ""
	}
	ts := time.UnixMilli(unixMillis)
	now := time.Now()
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		return ts.Format("15:04")
	}
	return market.DisplayDate(ts)
}
