package config

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, PresetDefault, cfg.ThemePreset)
	assert.Equal(t, 10, cfg.Buckets)
	assert.Greater(t, cfg.SidebarWidth, 0)
	assert.True(t, cfg.ShowLineNo)
	assert.NotEmpty(t, cfg.Keybindings["toggle_sidebar"])
	assert.NotEmpty(t, cfg.Keybindings["close_sidebar"])
}

func TestThemeForPresetDiffersPerPreset(t *testing.T) {
	def := ThemeForPreset(PresetDefault, false)
	dracula := ThemeForPreset(PresetDracula, false)
	solarized := ThemeForPreset(PresetSolarize, false)

	assert.NotEqual(t, def.GradientNewest, dracula.GradientNewest)
	assert.NotEqual(t, def.GradientNewest, solarized.GradientNewest)

	// an unknown preset falls back to the default theme
	assert.Equal(t, def, ThemeForPreset(ThemePreset("nope"), false))
}

func TestHighContrastBrightensGradient(t *testing.T) {
	plain := ThemeForPreset(PresetDefault, false)
	contrast := ThemeForPreset(PresetDefault, true)

	assert.NotEqual(t, plain.GradientOldest, contrast.GradientOldest)
	assert.NotEqual(t, plain.GradientNewest, contrast.GradientNewest)
}

func TestAdjustBrightnessLeavesMalformedInput(t *testing.T) {
	assert.Equal(t, "oops", adjustBrightness("oops", 0.2))
	assert.Equal(t, "#fff", adjustBrightness("#fff", 0.2))
	assert.Equal(t, "#ffffff", adjustBrightness("#ffffff", 0.5))
}

func TestMergeKeybindings(t *testing.T) {
	merged := MergeKeybindings(Keybindings{
		"quit":           {"x"},
		"toggle_sidebar": nil, // empty override keeps the default
	})

	assert.Equal(t, []string{"x"}, merged["quit"])
	assert.Equal(t, DefaultKeybindings()["toggle_sidebar"], merged["toggle_sidebar"])
	assert.Equal(t, DefaultKeybindings()["scroll_down"], merged["scroll_down"])
}

func TestApplyFileConfig(t *testing.T) {
	raw := []byte(`
[theme]
preset = "dracula"
gradient_newest = "#123456"

[sidebar]
width = 48
buckets = 5

[view]
line_numbers = false

[keybindings]
quit = ["x"]
`)

	var fc fileConfig
	require.NoError(t, toml.Unmarshal(raw, &fc))

	cfg := DefaultConfig()
	cfg.apply(fc)

	assert.Equal(t, PresetDracula, cfg.ThemePreset)
	assert.Equal(t, ThemeForPreset(PresetDracula, false).GradientOldest, cfg.Theme.GradientOldest)
	assert.Equal(t, lipgloss.Color("#123456"), cfg.Theme.GradientNewest)
	assert.Equal(t, 48, cfg.SidebarWidth)
	assert.Equal(t, 5, cfg.Buckets)
	assert.False(t, cfg.ShowLineNo)
	assert.Equal(t, []string{"x"}, cfg.Keybindings["quit"])
	assert.Equal(t, DefaultKeybindings()["go_top"], cfg.Keybindings["go_top"])
}

func TestApplyEmptyFileConfigKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.apply(fileConfig{})

	assert.Equal(t, DefaultConfig().SidebarWidth, cfg.SidebarWidth)
	assert.Equal(t, DefaultConfig().Buckets, cfg.Buckets)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
}
