package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
	"github.com/auwalms/kasuwa/internal/views"
)

// visibleProducts returns the products shown by the current page: the saved
// page shows the saved set, everything else the filtered catalog.
func (m Model) visibleProducts() []market.Product {
	if m.nav.Page() == nav.PageSaved {
		return views.SavedProducts(m.snapshot.Products, m.session.SavedIDs())
	}
	return views.FilterProducts(m.snapshot.Products, categoryFilters[m.categoryIdx], m.searchQuery)
}

// ownedProducts returns the authenticated user's own listings.
func (m Model) ownedProducts() []market.Product {
	user, ok := m.session.User()
	if !ok {
		return nil
	}
	return views.OwnedProducts(m.snapshot.Products, user.ID)
}

// renderHome renders the browsable catalog.
func (m Model) renderHome() string {
	items := m.visibleProducts()
	if len(items) == 0 {
		msg := "No products found"
		if !m.snapshot.Loaded {
			msg = "Loading products..."
		}
		return m.renderEmpty(msg)
	}
	if m.searching {
		return m.searchInput.View() + "\n" + m.renderProductList(items, m.selectedRow, m.contentHeight()-1)
	}
	return m.renderProductList(items, m.selectedRow, m.contentHeight())
}

// renderSaved renders the saved-products page.
func (m Model) renderSaved() string {
	if _, ok := m.session.User(); !ok {
		return m.renderEmpty("Log in to see your saved products")
	}
	items := m.visibleProducts()
	if len(items) == 0 {
		return m.renderEmpty("Nothing saved yet. Press s on a product to save it.")
	}
	return m.renderProductList(items, m.selectedRow, m.contentHeight())
}

// renderEmpty centers a muted message in the content area.
func (m Model) renderEmpty(msg string) string {
	styles := m.theme.Styles()
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center,
		styles.MutedText.Render(msg))
}

// renderProductList renders product rows with the cursor kept in view.
func (m Model) renderProductList(items []market.Product, selected, height int) string {
	if height < 1 {
		height = 1
	}

	// Scroll window around the cursor
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := start + height
	if end > len(items) {
		end = len(items)
	}

	var lines []string
	for i := start; i < end; i++ {
		lines = append(lines, m.formatProductRow(items[i], i == selected))
	}
	return strings.Join(lines, "\n")
}

// formatProductRow renders one product line:
// "Title  ₦price · Category · Location · Date ♥"
func (m Model) formatProductRow(p market.Product, selected bool) string {
	bgColor := m.theme.Background
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	var titleStyle, priceStyle, metaStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle, priceStyle, metaStyle = selText, selText.Bold(true), selText
	} else {
		styles := m.theme.Styles()
		titleStyle = styles.Text
		priceStyle = styles.AccentText.Bold(true)
		metaStyle = styles.MutedText
	}

	meta := strings.Join([]string{p.Category, p.Location, p.Date}, " · ")
	price := formatPrice(p.Price)

	titleWidth := m.width - len(price) - len(meta) - 8
	if titleWidth < 10 {
		titleWidth = 10
	}

	parts := []string{
		bg.Render(truncate(p.Title, titleWidth), titleStyle),
		bg.Render(price, priceStyle),
		bg.Render(meta, metaStyle),
	}
	if m.session.IsSaved(p.ID) {
		heart := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Danger))
		if selected {
			heart = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		}
		parts = append(parts, bg.Render("♥", heart))
	}

	content := strings.Join(parts, bg.Sep(" · "))
	return bg.FillLine(content, m.width)
}

// formatPrice renders a naira amount with thousands grouping, e.g.
// ₦1,250,000. Kobo are kept when present: ₦999.75.
func formatPrice(price float64) string {
	neg := price < 0
	if neg {
		price = -price
	}
	kobo := int64(math.Round(price * 100))
	whole := kobo / 100

	digits := fmt.Sprintf("%d", whole)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "₦" + strings.Join(groups, ",")
	if rem := kobo % 100; rem != 0 {
		out += fmt.Sprintf(".%02d", rem)
	}
	if neg {
		out = "-" + out
	}
	return out
}
