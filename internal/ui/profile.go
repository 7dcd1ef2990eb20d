package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderProfile renders the profile page: account card plus own listings, or
// the login/register prompt for guests.
func (m Model) renderProfile() string {
	styles := m.theme.Styles()

	user, ok := m.session.User()
	if !ok {
		prompt := styles.Text.Render("You are not logged in.") + "\n\n" +
			styles.AccentText.Render("l") + styles.MutedText.Render(" log in    ") +
			styles.AccentText.Render("r") + styles.MutedText.Render(" create an account")
		return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, prompt)
	}

	var b strings.Builder

	card := styles.Text.Bold(true).Render(user.Name) + "\n" +
		styles.MutedText.Render("@"+user.Username) + "\n" +
		styles.FaintText.Render(avatarKind(user.ProfilePicture))
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 2).
		Render(card))
	b.WriteString("\n\n")

	owned := m.ownedProducts()
	b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("My Ads (%d)", len(owned))))
	b.WriteString("\n")

	if len(owned) == 0 {
		b.WriteString(styles.MutedText.Render("You have not posted any ads yet. Press n on the home page to sell."))
	} else {
		listHeight := m.contentHeight() - 7
		if listHeight < 1 {
			listHeight = 1
		}
		b.WriteString(m.renderProductList(owned, m.ownedRow, listHeight))
	}

	return b.String()
}

// avatarKind describes the profile picture without dumping the data URL.
func avatarKind(pictureURL string) string {
	switch {
	case pictureURL == "":
		return "no profile picture"
	case strings.HasPrefix(pictureURL, "data:image/svg"):
		return "generated avatar"
	default:
		return "profile picture: " + truncate(pictureURL, 50)
	}
}
