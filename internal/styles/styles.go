// Package styles contains Lip Gloss style definitions and color tokens for
// the diff viewer.
package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Color tokens for diff classification. Light/dark pairs follow the
// terminal background, as lipgloss adaptive colors do.
var (
	// Row backgrounds per classification.
	AddedBgColor   = lipgloss.AdaptiveColor{Light: "#D8F3DC", Dark: "#12391B"}
	RemovedBgColor = lipgloss.AdaptiveColor{Light: "#FADBD8", Dark: "#3B1219"}
	ContextBgColor = lipgloss.AdaptiveColor{Light: "", Dark: ""}

	// Sign glyph colors.
	AddedSignColor   = lipgloss.AdaptiveColor{Light: "#1E8449", Dark: "#4ADE80"}
	RemovedSignColor = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#F87171"}

	// Gutter.
	LineNumberColor   = lipgloss.AdaptiveColor{Light: "#85929E", Dark: "#6B7280"}
	LineNumberBgColor = lipgloss.AdaptiveColor{Light: "#F4F6F7", Dark: "#16181D"}

	// General text.
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1C2833", Dark: "#E5E7EB"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#85929E", Dark: "#6B7280"}
	ErrorColor       = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#F87171"}
	SeparatorColor   = lipgloss.AdaptiveColor{Light: "#D5D8DC", Dark: "#374151"}
	FileHeaderColor  = lipgloss.AdaptiveColor{Light: "#2471A3", Dark: "#60A5FA"}
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHex checks that a color override is a #RRGGBB hex string.
func ValidateHex(value string) error {
	if !hexColorRegex.MatchString(value) {
		return fmt.Errorf("invalid hex color: %s", value)
	}
	return nil
}

// Brighten derives a word-highlight background from a row background by
// scaling luminance by factor and blending slightly toward white. Terminals
// have no alpha channel, so the blend stands in for the extra opacity the
// highlight carries over the row background.
func Brighten(hex string, factor float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	l = min(l*factor, 1.0)
	out := colorful.Hsl(h, s, l).BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.15).Clamped()
	return out.Hex()
}

// BrightenAdaptive applies Brighten to both halves of an adaptive color.
func BrightenAdaptive(c lipgloss.AdaptiveColor, factor float64) lipgloss.AdaptiveColor {
	out := c
	if c.Light != "" {
		out.Light = Brighten(c.Light, factor)
	}
	if c.Dark != "" {
		out.Dark = Brighten(c.Dark, factor)
	}
	return out
}
