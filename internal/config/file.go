package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the on-disk TOML layout. Every field is optional; unset
// fields keep their defaults.
type fileConfig struct {
	Theme struct {
		Preset         string `toml:"preset"`
		HighContrast   bool   `toml:"high_contrast"`
		GradientOldest string `toml:"gradient_oldest"`
		GradientNewest string `toml:"gradient_newest"`
	} `toml:"theme"`
	Sidebar struct {
		Width   int `toml:"width"`
		Buckets int `toml:"buckets"`
	} `toml:"sidebar"`
	View struct {
		LineNumbers *bool `toml:"line_numbers"`
		TabSize     int   `toml:"tab_size"`
	} `toml:"view"`
	Keybindings map[string][]string `toml:"keybindings"`
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "gblame.toml"), nil
}

// Load reads the user config file and overlays it onto the defaults. A
// missing file is not an error; the config file is never written.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.apply(fc)
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) {
	if fc.Theme.Preset != "" {
		c.ThemePreset = ThemePreset(fc.Theme.Preset)
	}
	c.HighContrast = c.HighContrast || fc.Theme.HighContrast
	c.Theme = ThemeForPreset(c.ThemePreset, c.HighContrast)

	if fc.Theme.GradientOldest != "" {
		c.Theme.GradientOldest = lipgloss.Color(fc.Theme.GradientOldest)
	}
	if fc.Theme.GradientNewest != "" {
		c.Theme.GradientNewest = lipgloss.Color(fc.Theme.GradientNewest)
	}

	if fc.Sidebar.Width > 0 {
		c.SidebarWidth = fc.Sidebar.Width
	}
	if fc.Sidebar.Buckets > 0 {
		c.Buckets = fc.Sidebar.Buckets
	}

	if fc.View.LineNumbers != nil {
		c.ShowLineNo = *fc.View.LineNumbers
	}
	if fc.View.TabSize > 0 {
		c.TabSize = fc.View.TabSize
	}

	if len(fc.Keybindings) > 0 {
		c.Keybindings = MergeKeybindings(fc.Keybindings)
	}
}
