package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auwalms/kasuwa/internal/avatar"
	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
	"github.com/auwalms/kasuwa/internal/session"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.form != nil {
		return m.handleFormKey(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	entry := m.nav.Current()
	if entry.View == nav.ViewThread {
		return m.handleThreadKey(msg, entry.ThreadID)
	}

	// A pending delete waits for exactly one more key: y commits, anything
	// else cancels.
	if m.confirmDelete != "" {
		productID := m.confirmDelete
		m.confirmDelete = ""
		if msg.String() == "y" {
			return m, m.deleteProductCmd(productID)
		}
		return m, nil
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		mode := m.session.SetTheme(NextTheme(m.session.Theme()))
		m.theme = ThemeForMode(mode)
		return m, nil

	case "1":
		m.goToPage(nav.PageHome)
		return m, nil

	case "2":
		m.goToPage(nav.PageSaved)
		return m, nil

	case "3":
		m.goToPage(nav.PageMessages)
		return m, nil

	case "4":
		m.goToPage(nav.PageProfile)
		return m, nil

	case "esc", "backspace":
		m.goBack()
		return m, nil
	}

	if entry.View == nav.ViewProduct {
		return m.handleProductKey(msg, entry.ProductID)
	}

	switch entry.Page {
	case nav.PageHome, nav.PageSaved:
		return m.handleListKey(msg)
	case nav.PageMessages:
		return m.handleThreadListKey(msg)
	case nav.PageProfile:
		return m.handleProfileKey(msg)
	}

	return m, nil
}

// goToPage navigates to a top-level page.
func (m *Model) goToPage(p nav.Page) {
	m.nav.GoToPage(p)
	m.selectedRow = 0
	m.clampCursors()
}

// goBack pops history. Closing a product overlay restores the list cursor
// captured when it opened.
func (m *Model) goBack() {
	before := m.nav.Current()
	m.nav.GoBack()
	after := m.nav.Current()

	if before.View == nav.ViewProduct && after.View == nav.ViewNone {
		m.selectedRow = m.nav.SavedScroll()
	}
	if before.View == nav.ViewThread {
		m.chatInput.Blur()
		m.chatInput.SetValue("")
	}
	m.syncFormWithPage()
	m.clampCursors()
}

// syncFormWithPage keeps the edit-profile form in lockstep with history
// navigation: arriving on the page rebuilds the form, leaving it drops it.
func (m *Model) syncFormWithPage() {
	onPage := m.nav.Page() == nav.PageEditProfile
	hasForm := m.form != nil && m.form.kind == formEditProfile

	if onPage && !hasForm {
		if user, ok := m.session.User(); ok {
			m.form = newEditProfileForm(user)
		}
	}
	if !onPage && hasForm {
		m.form = nil
	}
}

// handleListKey processes keys on the home and saved product lists.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.visibleProducts()

	switch msg.String() {
	case "j", "down":
		if m.selectedRow < len(items)-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g", "home":
		m.selectedRow = 0
	case "G", "end":
		if len(items) > 0 {
			m.selectedRow = len(items) - 1
		}

	case "enter":
		if m.selectedRow < len(items) {
			m.nav.OpenProduct(items[m.selectedRow].ID, m.selectedRow)
			m.imageIdx = 0
			m.updateDetailViewport()
			m.detailViewport.GotoTop()
		}

	case "s":
		if m.selectedRow < len(items) {
			return m, m.toggleSaveCmd(items[m.selectedRow].ID)
		}

	case "c":
		if m.nav.Page() == nav.PageHome {
			m.categoryIdx = (m.categoryIdx + 1) % len(categoryFilters)
			m.selectedRow = 0
		}

	case "/":
		if m.nav.Page() == nav.PageHome {
			m.searching = true
			m.searchInput.SetValue(m.searchQuery)
			m.searchInput.Focus()
		}

	case "n":
		if _, ok := m.session.User(); !ok {
			return m, notifyCmd("You must be logged in to post an ad.")
		}
		m.form = newSellForm()
	}

	return m, nil
}

// handleSearchKey processes keys while the search input is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		m.searchQuery = strings.TrimSpace(m.searchInput.Value())
		m.searching = false
		m.searchInput.Blur()
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleProductKey processes keys on the product detail overlay.
func (m Model) handleProductKey(msg tea.KeyMsg, productID string) (tea.Model, tea.Cmd) {
	// The listing can vanish underneath the overlay (deleted elsewhere).
	product, ok := m.snapshot.Product(productID)
	if !ok {
		m.goBack()
		return m, nil
	}

	user, authed := m.session.User()
	owner := authed && user.ID == product.SellerID

	switch msg.String() {
	case "h", "left":
		if len(product.Images) > 0 {
			m.imageIdx = (m.imageIdx + len(product.Images) - 1) % len(product.Images)
			m.updateDetailViewport()
		}
	case "l", "right":
		if len(product.Images) > 0 {
			m.imageIdx = (m.imageIdx + 1) % len(product.Images)
			m.updateDetailViewport()
		}

	case "j", "down":
		m.detailViewport.ScrollDown(1)
	case "k", "up":
		m.detailViewport.ScrollUp(1)
	case "pgdown":
		m.detailViewport.PageDown()
	case "pgup":
		m.detailViewport.PageUp()

	case "s":
		return m, m.toggleSaveCmd(product.ID)

	case "m", "enter":
		if !authed {
			return m, notifyCmd("Please log in to message sellers.")
		}
		if owner {
			return m, notifyCmd("You cannot message yourself.")
		}
		// Two entries: the messages page beneath the chat, so back lands
		// on the conversation list.
		m.nav.GoToPage(nav.PageMessages)
		m.nav.OpenThread(market.ThreadID(product.ID, user.ID, product.SellerID))
		m.chatInput.Focus()
		m.updateChatViewport()
		m.chatViewport.GotoBottom()

	case "e":
		if owner {
			m.form = newEditProductForm(product)
		}

	case "d":
		if owner {
			m.confirmDelete = product.ID
		}
	}

	return m, nil
}

// handleThreadListKey processes keys on the messages page.
func (m Model) handleThreadListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	threads := m.visibleThreads()

	switch msg.String() {
	case "j", "down":
		if m.threadRow < len(threads)-1 {
			m.threadRow++
		}
	case "k", "up":
		if m.threadRow > 0 {
			m.threadRow--
		}
	case "enter":
		if m.threadRow < len(threads) {
			m.nav.OpenThread(threads[m.threadRow].ID)
			m.chatInput.Focus()
			m.updateChatViewport()
			m.chatViewport.GotoBottom()
		}
	}

	return m, nil
}

// handleThreadKey processes keys on the chat overlay. Printable keys belong
// to the input.
func (m Model) handleThreadKey(msg tea.KeyMsg, threadID string) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.goBack()
		return m, nil

	case "up":
		m.chatViewport.ScrollUp(1)
		return m, nil
	case "down":
		m.chatViewport.ScrollDown(1)
		return m, nil
	case "pgup":
		m.chatViewport.HalfPageUp()
		return m, nil
	case "pgdown":
		m.chatViewport.HalfPageDown()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" {
			return m, nil
		}
		m.chatInput.SetValue("")
		return m, m.sendChat(threadID, text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// sendChat routes a chat message: an existing thread gets a plain append, a
// not-yet-created one goes through the seller contact path that creates it.
func (m Model) sendChat(threadID, text string) tea.Cmd {
	if _, ok := m.snapshot.Thread(threadID); ok {
		return m.sendMessageCmd(threadID, text)
	}
	user, ok := m.session.User()
	if !ok {
		return notifyCmd("Please log in to message sellers.")
	}
	product, ok := productForThread(m.snapshot, user.ID, threadID)
	if !ok {
		return notifyCmd("Error sending message.")
	}
	return m.messageSellerCmd(product, text)
}

// handleProfileKey processes keys on the profile page.
func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	user, authed := m.session.User()

	if !authed {
		switch msg.String() {
		case "l":
			m.form = newLoginForm()
		case "r":
			m.form = newRegisterForm()
		}
		return m, nil
	}

	owned := m.ownedProducts()

	switch msg.String() {
	case "j", "down":
		if m.ownedRow < len(owned)-1 {
			m.ownedRow++
		}
	case "k", "up":
		if m.ownedRow > 0 {
			m.ownedRow--
		}

	case "enter":
		if m.ownedRow < len(owned) {
			m.nav.OpenProduct(owned[m.ownedRow].ID, m.ownedRow)
			m.imageIdx = 0
			m.updateDetailViewport()
			m.detailViewport.GotoTop()
		}

	case "e":
		m.form = newEditProfileForm(user)
		m.nav.GoToPage(nav.PageEditProfile)

	case "g":
		return m, m.updateProfilePictureCmd(avatar.Generate(user.Name))

	case "o":
		return m, m.logoutCmd()
	}

	return m, nil
}

// NextTheme returns the next appearance preference in the cycle.
func NextTheme(t session.Theme) session.Theme {
	switch t {
	case session.ThemeLight:
		return session.ThemeDark
	case session.ThemeDark:
		return session.ThemeSystem
	default:
		return session.ThemeLight
	}
}

func notifyCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return notificationMsg(message)
	}
}
