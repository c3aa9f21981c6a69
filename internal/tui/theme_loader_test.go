package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestParseThemeOverrides(t *testing.T) {
	data := []byte(`
Primary = "#FF0000"
SignalHigh = "#00FF00"
`)
	theme, err := parseTheme(data)
	if err != nil {
		t.Fatalf("parseTheme: %v", err)
	}
	if theme.Primary != lipgloss.Color("#FF0000") {
		t.Errorf("Primary = %v", theme.Primary)
	}
	if theme.SignalHigh != lipgloss.Color("#00FF00") {
		t.Errorf("SignalHigh = %v", theme.SignalHigh)
	}
	// Unset values keep the defaults.
	if theme.Error != NewDefaultTheme().Error {
		t.Errorf("Error should keep default, got %v", theme.Error)
	}
}

func TestParseThemeEmpty(t *testing.T) {
	theme, err := parseTheme(nil)
	if err != nil {
		t.Fatalf("parseTheme: %v", err)
	}
	if theme != NewDefaultTheme() {
		t.Error("empty file should yield the default theme")
	}
}

func TestParseThemeInvalid(t *testing.T) {
	if _, err := parseTheme([]byte(`Primary = [not toml`)); err == nil {
		t.Error("expected error for invalid TOML")
	}
}
