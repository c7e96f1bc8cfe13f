package ui

import (
	"testing"
)

func TestNewThemeProvider_Default(t *testing.T) {
	tp := NewThemeProvider("")

	if tp == nil {
		t.Fatal("expected non-nil ThemeProvider")
	}
	if tp.CurrentName() != DefaultTheme {
		t.Errorf("expected default theme %q, got %q", DefaultTheme, tp.CurrentName())
	}
}

func TestNewThemeProvider_WithTheme(t *testing.T) {
	tp := NewThemeProvider("nord")

	if tp.CurrentName() != "nord" {
		t.Errorf("expected theme 'nord', got %q", tp.CurrentName())
	}
}

func TestNewThemeProvider_InvalidTheme(t *testing.T) {
	// An unknown theme falls back to the default.
	tp := NewThemeProvider("nonexistent-theme-xyz")

	if tp == nil {
		t.Fatal("expected non-nil ThemeProvider")
	}
	if tp.CurrentName() != DefaultTheme {
		t.Errorf("expected fallback to %q, got %q", DefaultTheme, tp.CurrentName())
	}
}

func TestThemeProvider_SetTheme(t *testing.T) {
	tp := NewThemeProvider("")

	if !tp.SetTheme("nord") {
		t.Error("expected SetTheme to return true for a valid theme")
	}
	if tp.CurrentName() != "nord" {
		t.Errorf("expected theme 'nord', got %q", tp.CurrentName())
	}

	if tp.SetTheme("nonexistent-theme-xyz") {
		t.Error("expected SetTheme to return false for an invalid theme")
	}
	if tp.CurrentName() != "nord" {
		t.Error("theme should not change after an invalid SetTheme")
	}
}

func TestThemeProvider_AvailableThemes(t *testing.T) {
	tp := NewThemeProvider("")

	themes := tp.AvailableThemes()
	if len(themes) == 0 {
		t.Fatal("expected at least one available theme")
	}
	for i := 1; i < len(themes); i++ {
		if themes[i] < themes[i-1] {
			t.Errorf("themes not sorted: %q < %q", themes[i], themes[i-1])
		}
	}

	found := false
	for _, theme := range themes {
		if theme == "dracula" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected 'dracula' in available themes")
	}
}

func TestThemeProvider_Styles(t *testing.T) {
	tp := NewThemeProvider("dracula")

	styles := tp.Styles()
	if styles.App.GetPaddingTop() == 0 && styles.App.GetPaddingBottom() == 0 {
		t.Error("expected App style to have padding")
	}
	if !styles.ViewTitle.GetBold() {
		t.Error("expected the title style to be bold")
	}
	if !styles.Markup.Bold.GetBold() {
		t.Error("expected the markup bold style to be bold")
	}
}
