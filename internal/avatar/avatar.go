// Package avatar generates placeholder profile pictures for accounts
// registered without one.
package avatar

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var palette = []string{
	"#F44336", "#E91E63", "#9C27B0", "#673AB7", "#3F51B5", "#2196F3",
	"#03A9F4", "#00BCD4", "#009688", "#4CAF50", "#8BC34A", "#FF5722",
	"#795548", "#607D8B",
}

// Generate returns an SVG data URL showing up to two initials on a colored
// square. The color is a stable function of the name, so the same name
// always produces the same avatar. An empty name yields an empty string.
func Generate(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}

	var initials strings.Builder
	for _, word := range strings.Fields(trimmed) {
		if initials.Len() >= 2 {
			break
		}
		runes := []rune(word)
		initials.WriteString(strings.ToUpper(string(runes[0])))
	}

	sum := 0
	for _, r := range trimmed {
		sum += int(r)
	}
	color := palette[sum%len(palette)]

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">`+
		`<rect width="100" height="100" fill="%s" />`+
		`<text x="50%%" y="50%%" dominant-baseline="central" text-anchor="middle" font-family="Arial, sans-serif" font-size="40" fill="white" font-weight="bold">%s</text>`+
		`</svg>`, color, initials.String())

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
