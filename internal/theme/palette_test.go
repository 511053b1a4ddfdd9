package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_DarkFills(t *testing.T) {
	base := &Theme{
		Bg:      "#101010",
		Fg:      "#ffffff",
		Accent:  "#ff0000",
		Event:   "#112233",
		AllDay:  "#445566",
		Today:   "#777777",
		Warning: "#888888",
	}
	base.applyDefaults()

	palette := NewPalette(base)

	if palette.EventBg != lipgloss.Color(darkenColor(base.Event)) {
		t.Fatalf("EventBg = %q, want %q", palette.EventBg, darkenColor(base.Event))
	}
	if palette.AllDayBg != lipgloss.Color(darkenColor(base.AllDay)) {
		t.Fatalf("AllDayBg = %q, want %q", palette.AllDayBg, darkenColor(base.AllDay))
	}
	if palette.EventBgAlt != lipgloss.Color(alternateShade(darkenColor(base.Event), false)) {
		t.Fatalf("EventBgAlt = %q", palette.EventBgAlt)
	}
	if palette.TextOnEvent != lipgloss.Color(base.Fg) {
		t.Fatalf("TextOnEvent = %q, want %q", palette.TextOnEvent, base.Fg)
	}
}

func TestNewPalette_LightThemeLightensFills(t *testing.T) {
	base := &Theme{
		Bg:     "#f5f5f5",
		Fg:     "#222222",
		Accent: "#2f6feb",
		Event:  "#1d8a8a",
		AllDay: "#2f8f2f",
	}
	base.applyDefaults()

	palette := NewPalette(base)
	if relativeLuminance(string(palette.EventBg)) <= relativeLuminance(base.Event) {
		t.Fatalf("EventBg luminance = %f, want greater than Event", relativeLuminance(string(palette.EventBg)))
	}
	if relativeLuminance(string(palette.AllDayBg)) <= relativeLuminance(base.AllDay) {
		t.Fatalf("AllDayBg luminance = %f, want greater than AllDay", relativeLuminance(string(palette.AllDayBg)))
	}
	if palette.TextOnEvent != lipgloss.Color(base.Fg) {
		t.Fatalf("TextOnEvent = %q, want %q", palette.TextOnEvent, base.Fg)
	}
}

func TestNewPalette_NilUsesDefault(t *testing.T) {
	palette := NewPalette(nil)
	mocha, err := Load(DefaultName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if palette.Bg != lipgloss.Color(mocha.Bg) {
		t.Errorf("Bg = %q, want %q", palette.Bg, mocha.Bg)
	}
}

func TestDarkenColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#ffffff", "#7f7f7f"},
		{"#000000", "#282828"},
		{"bad", "bad"},
	}
	for _, tt := range tests {
		if got := darkenColor(tt.in); got != tt.want {
			t.Errorf("darkenColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBlendColors(t *testing.T) {
	if got := blendColors("#000000", "#ffffff", 0.5); got != "#7f7f7f" {
		t.Errorf("blendColors = %q, want #7f7f7f", got)
	}
	if got := blendColors("#000000", "#ffffff", 2); got != "#ffffff" {
		t.Errorf("blendColors clamped = %q, want #ffffff", got)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
