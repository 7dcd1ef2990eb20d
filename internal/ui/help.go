package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	type binding struct{ key, desc string }
	sections := []struct {
		title    string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"1 / 2 / 3 / 4", "Home, Saved, Messages, Profile"},
			{"Enter", "Open selected product or conversation"},
			{"Esc / Backspace", "Go back"},
			{"j / k", "Move down / up"},
			{"g / G", "Jump to top / bottom"},
		}},
		{"Browsing", []binding{
			{"c", "Cycle category filter"},
			{"/", "Search products"},
			{"s", "Save or unsave the selected product"},
			{"n", "Post a new ad"},
		}},
		{"Listings", []binding{
			{"h / l", "Previous / next image"},
			{"j / k", "Scroll the listing"},
			{"m", "Message the seller"},
			{"e / d", "Edit / delete your own ad"},
		}},
		{"Chat", []binding{
			{"Enter", "Send message"},
			{"Up / Down", "Scroll history"},
			{"PgUp / PgDn", "Scroll half a page"},
		}},
		{"Account", []binding{
			{"l / r", "Log in / register (profile page)"},
			{"e", "Edit profile"},
			{"g", "Generate a new avatar"},
			{"o", "Log out"},
		}},
		{"General", []binding{
			{"T", "Cycle theme (light, dark, system)"},
			{"?", "Toggle this help"},
			{"q / Ctrl+C", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Kasuwa Help"))
	b.WriteString("\n\n")

	for _, section := range sections {
		b.WriteString(styles.Text.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, bind := range section.bindings {
			b.WriteString("  ")
			b.WriteString(styles.AccentText.Render(padLabel(bind.key)))
			b.WriteString("    ")
			b.WriteString(styles.MutedText.Render(bind.desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render("Press any key to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
