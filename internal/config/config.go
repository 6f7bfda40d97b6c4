package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gblame/internal/gradient"
)

// Config holds the application configuration
type Config struct {
	Theme        Theme
	ThemePreset  ThemePreset
	HighContrast bool
	Buckets      int
	SidebarWidth int
	ShowLineNo   bool
	TabSize      int
	Keybindings  Keybindings
}

// ThemePreset describes a named theme configuration.
type ThemePreset string

const (
	PresetDefault  ThemePreset = "default"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// Keybindings maps semantic actions to one or more key sequences.
type Keybindings map[string][]string

// Theme defines the color scheme for the application. GradientOldest and
// GradientNewest are the two fixed endpoints of the commit-age gradient; the
// buckets in between are interpolated, never configured individually.
type Theme struct {
	GradientOldest lipgloss.Color
	GradientNewest lipgloss.Color
	UncommittedFg  lipgloss.Color
	SourceFg       lipgloss.Color
	SidebarFg      lipgloss.Color
	LineNumberFg   lipgloss.Color
	BorderFg       lipgloss.Color
	TitleFg        lipgloss.Color
	TitleBg        lipgloss.Color
	HelpFg         lipgloss.Color
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ThemePreset:  PresetDefault,
		Theme:        ThemeForPreset(PresetDefault, false),
		HighContrast: false,
		Buckets:      gradient.DefaultBuckets,
		SidebarWidth: 36,
		ShowLineNo:   true,
		TabSize:      4,
		Keybindings:  DefaultKeybindings(),
	}
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		GradientOldest: lipgloss.Color("#1B3A2A"),
		GradientNewest: lipgloss.Color("#A8E6A3"),
		UncommittedFg:  lipgloss.Color("#666666"),
		SourceFg:       lipgloss.Color("#B0B0B0"),
		SidebarFg:      lipgloss.Color("#E0E0E0"),
		LineNumberFg:   lipgloss.Color("#666666"),
		BorderFg:       lipgloss.Color("#3A3A3A"),
		TitleFg:        lipgloss.Color("#FFFFFF"),
		TitleBg:        lipgloss.Color("#5F5FAF"),
		HelpFg:         lipgloss.Color("#888888"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme, optionally
// applying a high-contrast variation.
func ThemeForPreset(preset ThemePreset, highContrast bool) Theme {
	switch preset {
	case PresetSolarize:
		return applyContrast(Theme{
			GradientOldest: lipgloss.Color("#073642"),
			GradientNewest: lipgloss.Color("#859900"),
			UncommittedFg:  lipgloss.Color("#586E75"),
			SourceFg:       lipgloss.Color("#93A1A1"),
			SidebarFg:      lipgloss.Color("#EEE8D5"),
			LineNumberFg:   lipgloss.Color("#586E75"),
			BorderFg:       lipgloss.Color("#657B83"),
			TitleFg:        lipgloss.Color("#EEE8D5"),
			TitleBg:        lipgloss.Color("#586E75"),
			HelpFg:         lipgloss.Color("#93A1A1"),
		}, highContrast)
	case PresetDracula:
		return applyContrast(Theme{
			GradientOldest: lipgloss.Color("#2B2640"),
			GradientNewest: lipgloss.Color("#BD93F9"),
			UncommittedFg:  lipgloss.Color("#6272A4"),
			SourceFg:       lipgloss.Color("#F8F8F2"),
			SidebarFg:      lipgloss.Color("#F8F8F2"),
			LineNumberFg:   lipgloss.Color("#6272A4"),
			BorderFg:       lipgloss.Color("#44475A"),
			TitleFg:        lipgloss.Color("#F8F8F2"),
			TitleBg:        lipgloss.Color("#6272A4"),
			HelpFg:         lipgloss.Color("#BD93F9"),
		}, highContrast)
	default:
		return applyContrast(DefaultTheme(), highContrast)
	}
}

// DefaultKeybindings returns the built-in keybinding map.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		"quit":                {"ctrl+c", "q"},
		"toggle_sidebar":      {"b"},
		"close_sidebar":       {"esc"},
		"toggle_help":         {"?", "h"},
		"toggle_line_numbers": {"ctrl+n"},
		"scroll_down":         {"j", "down"},
		"scroll_up":           {"k", "up"},
		"page_down":           {"d"},
		"page_up":             {"u"},
		"go_top":              {"g"},
		"go_bottom":           {"G"},
	}
}

// MergeKeybindings overlays user overrides onto defaults.
func MergeKeybindings(overrides Keybindings) Keybindings {
	defaults := DefaultKeybindings()
	for action, keys := range overrides {
		if len(keys) == 0 {
			continue
		}
		defaults[action] = keys
	}
	return defaults
}

func applyContrast(theme Theme, highContrast bool) Theme {
	if !highContrast {
		return theme
	}

	return Theme{
		GradientOldest: lipgloss.Color(adjustBrightness(string(theme.GradientOldest), 0.15)),
		GradientNewest: lipgloss.Color(adjustBrightness(string(theme.GradientNewest), 0.25)),
		UncommittedFg:  lipgloss.Color(adjustBrightness(string(theme.UncommittedFg), 0.2)),
		SourceFg:       lipgloss.Color(adjustBrightness(string(theme.SourceFg), 0.2)),
		SidebarFg:      lipgloss.Color(adjustBrightness(string(theme.SidebarFg), 0.2)),
		LineNumberFg:   lipgloss.Color(adjustBrightness(string(theme.LineNumberFg), 0.2)),
		BorderFg:       lipgloss.Color(adjustBrightness(string(theme.BorderFg), 0.2)),
		TitleFg:        lipgloss.Color(adjustBrightness(string(theme.TitleFg), 0.2)),
		TitleBg:        lipgloss.Color(adjustBrightness(string(theme.TitleBg), 0.2)),
		HelpFg:         lipgloss.Color(adjustBrightness(string(theme.HelpFg), 0.2)),
	}
}

func adjustBrightness(hex string, factor float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	var r, g, b int
	_, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return hex
	}

	boost := func(value int) int {
		adjusted := float64(value) * (1 + factor)
		if adjusted > 255 {
			adjusted = 255
		}
		return int(adjusted)
	}

	return fmt.Sprintf("#%02x%02x%02x", boost(r), boost(g), boost(b))
}
