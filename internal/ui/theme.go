package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/auwalms/kasuwa/internal/session"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Content panels
	FocusBg    string // Focused pane background

	// List colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border      string // Default border
	BorderFocus string // Focus border

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Category badge colors
	CategoryColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		categoryColors: t.CategoryColors,
		background:     t.Background,
		muted:          t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	// For dynamic category badge colors
	categoryColors map[string]string
	background     string
	muted          string
}

// CategoryStyle returns a badge style for the given product category.
func (s Styles) CategoryStyle(category string) lipgloss.Style {
	color := s.categoryColors[category]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with all text styles carrying the
// given background. Styled text then renders with explicit backgrounds rather
// than inheriting whatever the terminal shows.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),

		Header:   s.Header.Background(bg),
		Logo:     s.Logo.Background(bg),
		Selected: s.Selected.Background(bg),

		categoryColors: s.categoryColors,
		background:     s.background,
		muted:          s.muted,
	}
}

// ThemeForMode maps the session's resolved appearance onto a palette.
func ThemeForMode(mode session.Mode) Theme {
	if mode == session.ModeLight {
		return lightTheme()
	}
	return darkTheme()
}

func darkTheme() Theme {
	// Tailwind CSS Slate/Emerald palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Dark",

		// Base colors
		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548", // between slate-800 and slate-700

		// List colors
		SelectionBg:   "#059669", // emerald-600
		SelectionText: "#f8fafc", // slate-50

		// Border colors
		Border:      "#334155", // slate-700
		BorderFocus: "#34d399", // emerald-400

		// Text colors
		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#34d399", // emerald-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		CategoryColors: map[string]string{
			"Electronics":   "#06b6d4", // cyan-500
			"Phones":        "#38bdf8", // sky-400
			"Vehicles":      "#f59e0b", // amber-500
			"Fashion":       "#ec4899", // pink-500
			"Home & Garden": "#22c55e", // green-500
			"Property":      "#8b5cf6", // violet-500
			"Services":      "#14b8a6", // teal-500
			"Jobs":          "#f97316", // orange-500
		},
	}
}

func lightTheme() Theme {
	// Tailwind CSS Stone/Emerald palette, darker shades for light terminals.
	return Theme{
		Name: "Light",

		// Base colors
		Background: "#fafaf9", // stone-50
		Surface:    "#e7e5e4", // stone-200
		SurfaceAlt: "#f5f5f4", // stone-100
		FocusBg:    "#d6d3d1", // stone-300

		// List colors
		SelectionBg:   "#047857", // emerald-700
		SelectionText: "#fafaf9", // stone-50

		// Border colors
		Border:      "#a8a29e", // stone-400
		BorderFocus: "#047857", // emerald-700

		// Text colors
		Text:    "#1c1917", // stone-900
		Muted:   "#57534e", // stone-600
		Faint:   "#a8a29e", // stone-400
		Accent:  "#047857", // emerald-700
		Success: "#15803d", // green-700
		Warning: "#b45309", // amber-700
		Danger:  "#b91c1c", // red-700
		Info:    "#0e7490", // cyan-700

		CategoryColors: map[string]string{
			"Electronics":   "#0e7490", // cyan-700
			"Phones":        "#0369a1", // sky-700
			"Vehicles":      "#b45309", // amber-700
			"Fashion":       "#be185d", // pink-700
			"Home & Garden": "#15803d", // green-700
			"Property":      "#6d28d9", // violet-700
			"Services":      "#0f766e", // teal-700
			"Jobs":          "#c2410c", // orange-700
		},
	}
}
