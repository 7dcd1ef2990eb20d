// Package ui provides the Bubble Tea terminal interface for Kasuwa.
package ui

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/auwalms/kasuwa/internal/actions"
	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
	"github.com/auwalms/kasuwa/internal/session"
	"github.com/auwalms/kasuwa/internal/state"
)

// categoryFilters is the category cycle for the home page: the wildcard
// followed by every real category.
var categoryFilters = append([]string{market.CategoryAll}, market.Categories...)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Coordinator *actions.Coordinator
	Store       *state.Store
	Session     *session.Session
	Nav         *nav.Controller
	RefreshTick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	coord       *actions.Coordinator
	store       *state.Store
	session     *session.Session
	nav         *nav.Controller
	refreshTick time.Duration

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot

	// List cursors
	selectedRow int // product list (home and saved pages)
	threadRow   int // thread list
	ownedRow    int // own listings on the profile page
	imageIdx    int // image cycle on the product detail overlay

	// Home filter state
	categoryIdx int
	searchQuery string
	searchInput textinput.Model
	searching   bool

	// Chat overlay input and scrollback
	chatInput    textinput.Model
	chatViewport viewport.Model

	// Product detail scrollback
	detailViewport viewport.Model

	// Spinner shown until the initial load lands
	loadSpinner spinner.Model

	// Toast notification
	toast    string
	toastSeq int

	// Modal form, nil when none is open
	form *formState

	// Delete confirmation: the product id awaiting a second keypress
	confirmDelete string

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refreshTick := opts.RefreshTick
	if refreshTick == 0 {
		refreshTick = 5 * time.Second
	}

	theme := ThemeForMode(opts.Session.Mode())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:         ctx,
		coord:       opts.Coordinator,
		store:       opts.Store,
		session:     opts.Session,
		nav:         opts.Nav,
		refreshTick: refreshTick,
		theme:       theme,
		loadSpinner: sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loadInitialCmd(),
		m.loadSpinner.Tick,
		tickCmd(m.refreshTick),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initInputs()
		}
		m.ready = true
		m.syncViewports()
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.Loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.loadSpinner, cmd = m.loadSpinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.snapshot = m.store.Snapshot()
		m.clampCursors()
		m.syncViewports()
		return m, tickCmd(m.refreshTick)

	case refreshMsg:
		m.snapshot = m.store.Snapshot()
		m.clampCursors()
		m.syncViewports()
		return m, nil

	case threadOpenedMsg:
		m.snapshot = m.store.Snapshot()
		m.clampCursors()
		if m.nav.Current().View != nav.ViewThread {
			m.nav.GoToPage(nav.PageMessages)
			m.nav.OpenThread(string(msg))
			m.chatInput.Focus()
		}
		m.updateChatViewport()
		m.chatViewport.GotoBottom()
		return m, nil

	case notificationMsg:
		m.toast = string(msg)
		m.toastSeq++
		return m, toastClearCmd(m.toastSeq)

	case toastClearMsg:
		if int(msg) == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.loadSpinner.View() + " Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.form != nil {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderContent())
	}
	return b.String()
}

// renderContent renders the main content area based on the navigation entry.
func (m Model) renderContent() string {
	entry := m.nav.Current()
	switch entry.View {
	case nav.ViewProduct:
		return m.renderProductDetail(entry.ProductID)
	case nav.ViewThread:
		return m.renderThread(entry.ThreadID)
	}

	switch entry.Page {
	case nav.PageSaved:
		return m.renderSaved()
	case nav.PageMessages:
		return m.renderMessagesList()
	case nav.PageProfile, nav.PageEditProfile:
		return m.renderProfile()
	default:
		return m.renderHome()
	}
}

// initInputs builds the text inputs once the terminal size is known.
func (m *Model) initInputs() {
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "/ "
	m.searchInput.Placeholder = "search products"
	m.searchInput.CharLimit = 80

	m.chatInput = textinput.New()
	m.chatInput.Prompt = "> "
	m.chatInput.Placeholder = "type a message"
	m.chatInput.CharLimit = 500
}

// syncViewports re-renders whichever overlay pane is open from the latest
// snapshot and terminal size.
func (m *Model) syncViewports() {
	m.updateDetailViewport()
	m.updateChatViewport()
}

// clampCursors keeps list cursors inside the current collections.
func (m *Model) clampCursors() {
	clamp := func(cursor, count int) int {
		if count == 0 {
			return 0
		}
		if cursor >= count {
			return count - 1
		}
		if cursor < 0 {
			return 0
		}
		return cursor
	}
	m.selectedRow = clamp(m.selectedRow, len(m.visibleProducts()))
	m.threadRow = clamp(m.threadRow, len(m.visibleThreads()))
	m.ownedRow = clamp(m.ownedRow, len(m.ownedProducts()))
}

// contentHeight is the rows left for the content area under the two header
// lines.
func (m Model) contentHeight() int {
	h := m.height - 2
	if m.toast != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Messages

type tickMsg time.Time

type refreshMsg struct{}

type threadOpenedMsg string

type notificationMsg string

type toastClearMsg int

const toastDuration = 4 * time.Second

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func toastClearCmd(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastClearMsg(seq)
	})
}

func (m Model) loadInitialCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.coord.LoadInitial(m.ctx)
		return refreshMsg{}
	}
}

// Relay forwards coordinator notifications into the running program as toast
// messages. Notifications raised before the program starts are queued and
// flushed on Bind.
type Relay struct {
	mu     sync.Mutex
	send   func(tea.Msg)
	queued []string
}

// Notify implements actions.Notifier.
func (r *Relay) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.send == nil {
		r.queued = append(r.queued, message)
		return
	}
	r.send(notificationMsg(message))
}

// Bind attaches the program's Send function and flushes queued notifications.
func (r *Relay) Bind(send func(tea.Msg)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = send
	for _, message := range r.queued {
		send(notificationMsg(message))
	}
	r.queued = nil
}

// Run starts the Bubble Tea program.
func Run(opts Options, relay *Relay) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if relay != nil {
		relay.Bind(func(msg tea.Msg) { p.Send(msg) })
	}
	_, err := p.Run()
	return err
}
