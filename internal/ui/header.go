package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
)

var pageTitles = map[nav.Page]string{
	nav.PageHome:        "Home",
	nav.PageSaved:       "Saved",
	nav.PageMessages:    "Messages",
	nav.PageProfile:     "Profile",
	nav.PageEditProfile: "Edit Profile",
}

// renderHeader renders the status bar: logo, location, current page, filter
// state, and the signed-in user.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	var parts []string

	parts = append(parts, bg.Render("kasuwa", styles.Logo))
	parts = append(parts, bg.Render("⚲ "+market.DefaultLocation, styles.MutedText))

	entry := m.nav.Current()
	title := pageTitles[entry.Page]
	switch entry.View {
	case nav.ViewProduct:
		title = "Listing"
	case nav.ViewThread:
		title = "Chat"
	}
	parts = append(parts, bg.Render(title, styles.Text))

	if entry.Page == nav.PageHome && entry.View == nav.ViewNone {
		if cat := categoryFilters[m.categoryIdx]; cat != market.CategoryAll {
			parts = append(parts,
				bg.Render("Category:", styles.MutedText)+bg.Space()+
					bg.Render(cat, styles.AccentText))
		}
		if m.searchQuery != "" {
			parts = append(parts, bg.Render("/"+truncate(m.searchQuery, 24), styles.AccentText))
		}
	}

	if !m.snapshot.Loaded {
		parts = append(parts, m.loadSpinner.View()+bg.Space()+bg.Render("Loading", styles.WarningText))
	}

	if user, ok := m.session.User(); ok {
		saved := len(m.session.SavedIDs())
		userPart := bg.Render("@"+user.Username, styles.SuccessText)
		if saved > 0 {
			userPart += sep + bg.Render(fmt.Sprintf("♥ %d", saved), styles.DangerText)
		}
		parts = append(parts, userPart)
	} else {
		parts = append(parts, bg.Render("guest", styles.FaintText))
	}

	line := styles.Header.Width(m.width).Render(bg.Join(parts, "  "))

	if m.toast != "" {
		return line + "\n" + m.renderToast()
	}
	return line
}

// renderToast renders the transient notification bar under the header.
func (m Model) renderToast() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Padding(0, 1).
		Width(m.width).
		Render(styles.InfoText.Render(truncate(m.toast, m.width-4)))
}

// renderCommandBar renders the key hints for the current context.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	entry := m.nav.Current()
	_, authed := m.session.User()

	switch {
	case m.showHelp:
		commands = []cmd{{"any key", "Close"}}

	case m.form != nil:
		commands = []cmd{
			{"Enter", "Next/Submit"},
			{"Tab", "Move"},
			{"Esc", "Cancel"},
		}

	case m.searching:
		commands = []cmd{
			{"Enter", "Apply"},
			{"Esc", "Cancel"},
		}

	case m.confirmDelete != "":
		commands = []cmd{
			{"y", "Delete ad"},
			{"any key", "Keep"},
		}

	case entry.View == nav.ViewProduct:
		commands = []cmd{
			{"h/l", "Images"},
			{"j/k", "Scroll"},
			{"s", "Save"},
			{"m", "Message"},
		}
		if product, ok := m.snapshot.Product(entry.ProductID); ok && authed {
			if user, _ := m.session.User(); user.ID == product.SellerID {
				commands = append(commands, cmd{"e", "Edit"}, cmd{"d", "Delete"})
			}
		}
		commands = append(commands, cmd{"Esc", "Back"})

	case entry.View == nav.ViewThread:
		commands = []cmd{
			{"Enter", "Send"},
			{"↑/↓", "Scroll"},
			{"Esc", "Back"},
		}

	case entry.Page == nav.PageMessages:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Open"},
			{"1-4", "Pages"},
			{"?", "More"},
		}

	case entry.Page == nav.PageProfile || entry.Page == nav.PageEditProfile:
		if authed {
			commands = []cmd{
				{"j/k", "My ads"},
				{"Enter", "Open"},
				{"e", "Edit profile"},
				{"g", "New avatar"},
				{"o", "Log out"},
			}
		} else {
			commands = []cmd{
				{"l", "Log in"},
				{"r", "Register"},
				{"1-4", "Pages"},
			}
		}

	default: // home and saved
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Open"},
			{"s", "Save"},
		}
		if entry.Page == nav.PageHome {
			commands = append(commands,
				cmd{"c", categoryFilters[m.categoryIdx]},
				cmd{"/", "Search"},
				cmd{"n", "Sell"},
			)
		}
		commands = append(commands, cmd{"1-4", "Pages"}, cmd{"?", "More"})
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(string(m.session.Theme()), styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// truncate truncates a string to max runes with ellipsis. Slicing runes, not
// bytes, keeps multibyte titles and messages valid UTF-8.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
