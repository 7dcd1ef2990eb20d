// Package nav implements the history-synced navigation model: a tagged
// Entry describing the visible view, a History that records entries, and a
// Controller mapping user navigation onto both.
//
// The asymmetry is deliberate and checkable: forward navigation always
// pushes an entry, backward navigation only reads the restored entry. The
// restore path never pushes, so back/forward gestures replay state instead
// of growing it.
package nav

// Page is a top-level application page.
type Page string

const (
	PageHome        Page = "home"
	PageSaved       Page = "saved"
	PageMessages    Page = "messages"
	PageProfile     Page = "profile"
	PageEditProfile Page = "edit-profile"
)

// View tags the optional overlay on top of a page.
type View string

const (
	ViewNone    View = ""
	ViewProduct View = "product"
	ViewThread  View = "thread"
)

// Entry is one addressable application view: a page plus an optional
// overlay. Entries are immutable once pushed.
type Entry struct {
	Page      Page
	View      View
	ProductID string
	ThreadID  string
}

// Fragment renders the address-bar form of an entry.
func (e Entry) Fragment() string {
	switch e.View {
	case ViewProduct:
		return "#product=" + e.ProductID
	case ViewThread:
		return "#thread=" + e.ThreadID
	default:
		return "#" + string(e.Page)
	}
}

// History records navigation entries and replays them on back. Push and Back
// are the only two mutation paths.
type History interface {
	Push(e Entry)
	Back()
}

// Stack is the in-process History used by the TUI and by tests. Back pops
// the current entry and delivers the one beneath it to the restore listener;
// when the stack is exhausted the listener receives ok=false and the
// controller falls back to home.
type Stack struct {
	entries []Entry
	restore func(e Entry, ok bool)
}

// SetListener registers the restore listener. The controller's HandleRestore
// is the intended target.
func (s *Stack) SetListener(fn func(e Entry, ok bool)) {
	s.restore = fn
}

// Push records a new entry.
func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries, e)
}

// Back pops the current entry and notifies the listener with the previous
// one.
func (s *Stack) Back() {
	if len(s.entries) > 0 {
		s.entries = s.entries[:len(s.entries)-1]
	}
	if s.restore == nil {
		return
	}
	if len(s.entries) == 0 {
		s.restore(Entry{}, false)
		return
	}
	s.restore(s.entries[len(s.entries)-1], true)
}

// Len reports the number of recorded entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Controller keeps the visible view in lockstep with history. It is driven
// from the event loop only and needs no locking.
type Controller struct {
	hist    History
	current Entry

	// savedScroll captures the list offset at the moment a product overlay
	// opens so closing it can restore the exact position.
	savedScroll int
}

// NewController builds a controller starting on the home page. When the
// history is a *Stack its listener is wired to HandleRestore.
func NewController(h History) *Controller {
	c := &Controller{hist: h, current: Entry{Page: PageHome}}
	if stack, ok := h.(*Stack); ok {
		stack.SetListener(c.HandleRestore)
	}
	return c
}

// Current returns the entry describing the visible view.
func (c *Controller) Current() Entry {
	return c.current
}

// Page returns the current page.
func (c *Controller) Page() Page {
	return c.current.Page
}

// GoToPage switches to a page with no overlay. Already being on that page
// with no overlay open is a no-op; otherwise an entry is pushed and any open
// overlay is cleared.
func (c *Controller) GoToPage(p Page) {
	if c.current.Page == p && c.current.View == ViewNone {
		return
	}
	entry := Entry{Page: p}
	c.hist.Push(entry)
	c.current = entry
}

// OpenProduct overlays a product detail view on the current page, capturing
// the caller's scroll offset for later restoration.
func (c *Controller) OpenProduct(productID string, scroll int) {
	c.savedScroll = scroll
	entry := Entry{Page: c.current.Page, View: ViewProduct, ProductID: productID}
	c.hist.Push(entry)
	c.current = entry
}

// OpenThread overlays a chat view on the current page.
func (c *Controller) OpenThread(threadID string) {
	entry := Entry{Page: c.current.Page, View: ViewThread, ThreadID: threadID}
	c.hist.Push(entry)
	c.current = entry
}

// GoBack delegates to the history; the restored entry arrives through
// HandleRestore.
func (c *Controller) GoBack() {
	c.hist.Back()
}

// HandleRestore applies a restored entry. It sets state directly from the
// entry's fields and never pushes; a missing entry falls back to home.
func (c *Controller) HandleRestore(e Entry, ok bool) {
	if !ok {
		c.current = Entry{Page: PageHome}
		return
	}
	c.current = e
}

// SavedScroll returns the offset captured by the last OpenProduct.
func (c *Controller) SavedScroll() int {
	return c.savedScroll
}
