// Package config provides configuration types and defaults for diffpane.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"diffpane/internal/diff"
	"diffpane/internal/styles"
)

// Config holds all configuration options for diffpane.
type Config struct {
	// View selects the initial presentation. Valid values: "unified"
	// (default) or "split".
	View string `mapstructure:"view"`

	// Wrap selects line wrapping. Valid values: "none" (default),
	// "char", or "word".
	Wrap string `mapstructure:"wrap"`

	// SimilarityThreshold is the minimum similarity score for paired
	// removed/added lines to receive word-level highlights. Range 0..1.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`

	// NoWordHighlights disables word-level highlighting entirely.
	NoWordHighlights bool `mapstructure:"no_word_highlights"`

	// Conceal hides the line-number and sign gutters.
	Conceal bool `mapstructure:"conceal"`

	// Watch re-renders when the input file changes on disk.
	Watch bool `mapstructure:"watch"`

	Theme ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig holds color customization options.
type ThemeConfig struct {
	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors overrides individual color tokens with hex values.
	// Recognized keys: added_bg, removed_bg, context_bg, added_sign,
	// removed_sign, line_number_bg, added_word_bg, removed_word_bg.
	Colors map[string]string `mapstructure:"colors"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		View:                "unified",
		Wrap:                "none",
		SimilarityThreshold: diff.DefaultSimilarityThreshold,
	}
}

// DefaultConfigPath returns the per-user config file path,
// ~/.config/diffpane/config.yaml, or empty string if the home directory is
// unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "diffpane", "config.yaml")
}

// LocalConfigPath returns the project-local config file path relative to
// the working directory.
func LocalConfigPath() string {
	return filepath.Join(".diffpane", "config.yaml")
}

var validColorKeys = map[string]bool{
	"added_bg":        true,
	"removed_bg":      true,
	"context_bg":      true,
	"added_sign":      true,
	"removed_sign":    true,
	"line_number_bg":  true,
	"added_word_bg":   true,
	"removed_word_bg": true,
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	switch c.View {
	case "unified", "split":
	default:
		return fmt.Errorf("view: must be \"unified\" or \"split\", got %q", c.View)
	}

	switch c.Wrap {
	case "none", "char", "word":
	default:
		return fmt.Errorf("wrap: must be \"none\", \"char\", or \"word\", got %q", c.Wrap)
	}

	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold: must be in [0, 1], got %v", c.SimilarityThreshold)
	}

	switch c.Theme.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode: must be \"light\", \"dark\", or empty, got %q", c.Theme.Mode)
	}

	for key, val := range c.Theme.Colors {
		if !validColorKeys[key] {
			return fmt.Errorf("theme.colors: unknown key %q", key)
		}
		if err := styles.ValidateHex(val); err != nil {
			return fmt.Errorf("theme.colors.%s: %w", key, err)
		}
	}
	return nil
}
