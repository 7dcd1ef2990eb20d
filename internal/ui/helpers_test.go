package ui

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/session"
	"github.com/auwalms/kasuwa/internal/state"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{0, "₦0"},
		{950, "₦950"},
		{1250, "₦1,250"},
		{85000, "₦85,000"},
		{1250000, "₦1,250,000"},
		{999.75, "₦999.75"},
		{1250000.5, "₦1,250,000.50"},
		{-12.5, "-₦12.50"},
	}
	for _, tc := range cases {
		if got := formatPrice(tc.price); got != tc.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tc.price, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short, 10) = %q", got)
	}
	if got := truncate("a very long product title", 10); got != "a very ..." {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Errorf("truncate with zero max = %q", got)
	}

	// Multibyte text must be cut on rune boundaries, never mid-rune.
	got := truncate("chézàn kēke da naira ₦₦₦", 10)
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if got != "chézàn ..." {
		t.Errorf("truncate multibyte = %q, want %q", got, "chézàn ...")
	}
	if got := truncate("₦₦₦₦", 3); got != "₦₦₦" {
		t.Errorf("truncate tiny multibyte = %q, want %q", got, "₦₦₦")
	}
}

func TestSplitImages(t *testing.T) {
	got := splitImages(" a.jpg , ,https://x/b.png,")
	want := []string{"a.jpg", "https://x/b.png"}
	if len(got) != len(want) {
		t.Fatalf("splitImages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitImages[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitImages("  ") != nil {
		t.Fatalf("splitImages(blank) should be nil")
	}
}

func TestNextTheme_Cycle(t *testing.T) {
	order := []session.Theme{session.ThemeLight, session.ThemeDark, session.ThemeSystem}
	for i, cur := range order {
		want := order[(i+1)%len(order)]
		if got := NextTheme(cur); got != want {
			t.Errorf("NextTheme(%s) = %s, want %s", cur, got, want)
		}
	}
}

func TestThemeForMode(t *testing.T) {
	if got := ThemeForMode(session.ModeLight).Name; got != "Light" {
		t.Errorf("ThemeForMode(light) = %q", got)
	}
	if got := ThemeForMode(session.ModeDark).Name; got != "Dark" {
		t.Errorf("ThemeForMode(dark) = %q", got)
	}
}

func TestCategoryStyle_FallsBackForUnknownCategory(t *testing.T) {
	styles := darkTheme().Styles()
	// Unknown categories should still render, just with the muted badge.
	if out := styles.CategoryStyle("Nonsense").Render("Nonsense"); out == "" {
		t.Fatalf("CategoryStyle produced empty output")
	}
}

func TestProductForThread(t *testing.T) {
	snap := state.Snapshot{
		Products: []market.Product{
			{ID: "p1", SellerID: "u2"},
			{ID: "p2", SellerID: "u3"},
		},
	}

	threadID := market.ThreadID("p2", "u1", "u3")
	p, ok := productForThread(snap, "u1", threadID)
	if !ok || p.ID != "p2" {
		t.Fatalf("productForThread = %#v/%v, want p2", p, ok)
	}

	if _, ok := productForThread(snap, "u1", "p9-u1-u9"); ok {
		t.Fatalf("productForThread matched a thread with no product")
	}
}

func TestFormatMessageTime(t *testing.T) {
	if got := formatMessageTime(0); got != "" {
		t.Errorf("formatMessageTime(0) = %q, want empty", got)
	}

	now := time.Now()
	if got := formatMessageTime(now.UnixMilli()); got != now.Format("15:04") {
		t.Errorf("formatMessageTime(today) = %q, want clock time", got)
	}

	old := now.AddDate(0, -2, 0)
	if got := formatMessageTime(old.UnixMilli()); got != market.DisplayDate(old) {
		t.Errorf("formatMessageTime(old) = %q, want %q", got, market.DisplayDate(old))
	}
}
