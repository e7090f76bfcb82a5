package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "kacl"

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{
	DefaultTheme,
	"base",
	"base16",
	"catppuccin",
	"charm",
	"dracula",
}

// currentTheme is nil until SetTheme picks a non-default theme.
var currentTheme *huh.Theme

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// SetTheme selects the prompt theme. Unknown or empty names select the
// default theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
	if name == DefaultTheme {
		currentTheme = nil
	}
}

// GetTheme returns the huh.Theme for the given theme name.
// Returns nil if the theme name is not recognized.
func GetTheme(name string) *huh.Theme {
	switch name {
	case DefaultTheme:
		return kaclTheme()
	case "base":
		return huh.ThemeBase()
	case "base16":
		return huh.ThemeBase16()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	default:
		return nil
	}
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return kaclTheme()
	}
	return currentTheme
}

// kaclTheme is the base theme with bold titles and a rounded border.
func kaclTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.AdaptiveColor{Light: "#1F7A4D", Dark: "#3FD68A"}
	muted := lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9A9A9A"}

	t.Focused.Base = t.Focused.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent)
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Bold(true).Padding(0, 1).Background(accent)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
