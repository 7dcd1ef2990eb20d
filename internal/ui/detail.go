package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
)

// detailWidth is the inner width of the product detail pane.
func (m Model) detailWidth() int {
	w := m.width - 8
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// detailHeight is the inner height of the product detail pane, under the
// border and padding rows.
func (m Model) detailHeight() int {
	h := m.contentHeight() - 4
	if h < 3 {
		h = 3
	}
	return h
}

// initDetailViewport initializes the detail viewport.
func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(m.detailWidth(), m.detailHeight())
	m.detailViewport.Style = lipgloss.NewStyle()
}

// updateDetailViewport refreshes the detail pane when a product overlay is
// open, so a long description stays reachable by scrolling.
func (m *Model) updateDetailViewport() {
	entry := m.nav.Current()
	if entry.View != nav.ViewProduct {
		return
	}
	if m.detailViewport.Width == 0 {
		m.initDetailViewport()
	}
	m.detailViewport.Width = m.detailWidth()
	m.detailViewport.Height = m.detailHeight()

	product, ok := m.snapshot.Product(entry.ProductID)
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(product))
}

// renderProductDetail renders the product overlay.
func (m Model) renderProductDetail(productID string) string {
	if _, ok := m.snapshot.Product(productID); !ok {
		return m.renderEmpty("This listing is no longer available")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(1, 2).
		Render(m.detailViewport.View())

	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Top, box)
}

// renderDetailContent builds the scrollable body of the detail pane.
func (m Model) renderDetailContent(product market.Product) string {
	styles := m.theme.Styles()

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(truncate(product.Title, m.detailWidth()-10)))
	if m.session.IsSaved(product.ID) {
		b.WriteString("  ")
		b.WriteString(styles.DangerText.Render("♥ saved"))
	}
	b.WriteString("\n")

	b.WriteString(styles.AccentText.Bold(true).Render(formatPrice(product.Price)))
	b.WriteString("  ")
	b.WriteString(styles.CategoryStyle(product.Category).Render(product.Category))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render(product.Location + " · " + product.Date))
	b.WriteString("\n\n")

	if len(product.Images) > 0 {
		idx := m.imageIdx
		if idx >= len(product.Images) {
			idx = 0
		}
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("Image %d/%d  ", idx+1, len(product.Images))))
		b.WriteString(styles.InfoText.Render(truncate(product.Images[idx], m.detailWidth()-12)))
		b.WriteString("\n\n")
	}

	if product.Description != "" {
		wrapped := lipgloss.NewStyle().Width(m.detailWidth()).Render(product.Description)
		b.WriteString(styles.Text.Render(wrapped))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderSellerCard(product.SellerID))
	return b.String()
}

// renderSellerCard renders the seller line of the detail overlay.
func (m Model) renderSellerCard(sellerID string) string {
	styles := m.theme.Styles()

	seller, ok := m.snapshot.User(sellerID)
	if !ok {
		return styles.FaintText.Render("Seller unknown")
	}

	line := styles.MutedText.Render("Seller  ") +
		styles.Text.Render(seller.Name) +
		styles.FaintText.Render(" @"+seller.Username)

	if user, authed := m.session.User(); authed && user.ID == sellerID {
		line += styles.SuccessText.Render("  (you)")
	}
	return line
}
