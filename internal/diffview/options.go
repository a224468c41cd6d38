package diffview

import (
	"github.com/charmbracelet/lipgloss"

	"diffpane/internal/diff"
	"diffpane/internal/pane"
	"diffpane/internal/styles"
)

// ViewMode selects the diff presentation layout.
type ViewMode int

const (
	// ViewUnified shows changes in a single interleaved column.
	ViewUnified ViewMode = iota
	// ViewSplit shows old and new versions in parallel columns.
	ViewSplit
)

// String returns a human-readable name for the view mode.
func (m ViewMode) String() string {
	switch m {
	case ViewUnified:
		return "UNIFIED"
	case ViewSplit:
		return "SPLIT"
	default:
		return "UNKNOWN"
	}
}

// ParseViewMode converts a config string to a ViewMode.
func ParseViewMode(s string) (ViewMode, bool) {
	switch s {
	case "unified", "":
		return ViewUnified, true
	case "split":
		return ViewSplit, true
	default:
		return ViewUnified, false
	}
}

// wordBgBrightenFactor derives the word-highlight background from the row
// background when no explicit override is configured.
const wordBgBrightenFactor = 1.5

// Options is the full configuration surface of the viewer.
type Options struct {
	View ViewMode
	Wrap pane.WrapMode

	// Conceal hides the line-number gutters.
	Conceal bool

	DisableWordHighlights bool
	// SimilarityThreshold gates word highlighting per pair; clamped to [0,1].
	SimilarityThreshold float64

	AddedBg      lipgloss.AdaptiveColor
	RemovedBg    lipgloss.AdaptiveColor
	ContextBg    lipgloss.AdaptiveColor
	AddedSign    lipgloss.AdaptiveColor
	RemovedSign  lipgloss.AdaptiveColor
	LineNumberBg lipgloss.AdaptiveColor

	// AddedWordBg/RemovedWordBg default to the row background brightened
	// by wordBgBrightenFactor when left zero.
	AddedWordBg   lipgloss.AdaptiveColor
	RemovedWordBg lipgloss.AdaptiveColor
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		View:                ViewUnified,
		Wrap:                pane.WrapNone,
		SimilarityThreshold: diff.DefaultSimilarityThreshold,
		AddedBg:             styles.AddedBgColor,
		RemovedBg:           styles.RemovedBgColor,
		ContextBg:           styles.ContextBgColor,
		AddedSign:           styles.AddedSignColor,
		RemovedSign:         styles.RemovedSignColor,
		LineNumberBg:        styles.LineNumberBgColor,
	}
}

// Patch is a partial options update; nil fields are left unchanged.
// View and Wrap changes go through their dedicated setters because they
// have their own scheduling rules.
type Patch struct {
	Conceal               *bool
	DisableWordHighlights *bool
	SimilarityThreshold   *float64
	AddedBg               *lipgloss.AdaptiveColor
	RemovedBg             *lipgloss.AdaptiveColor
	ContextBg             *lipgloss.AdaptiveColor
	AddedSign             *lipgloss.AdaptiveColor
	RemovedSign           *lipgloss.AdaptiveColor
	LineNumberBg          *lipgloss.AdaptiveColor
	AddedWordBg           *lipgloss.AdaptiveColor
	RemovedWordBg         *lipgloss.AdaptiveColor
}

// apply merges a patch into the options, clamping out-of-range values
// rather than rejecting them.
func (o Options) apply(p Patch) Options {
	if p.Conceal != nil {
		o.Conceal = *p.Conceal
	}
	if p.DisableWordHighlights != nil {
		o.DisableWordHighlights = *p.DisableWordHighlights
	}
	if p.SimilarityThreshold != nil {
		o.SimilarityThreshold = min(max(*p.SimilarityThreshold, 0), 1)
	}
	if p.AddedBg != nil {
		o.AddedBg = *p.AddedBg
	}
	if p.RemovedBg != nil {
		o.RemovedBg = *p.RemovedBg
	}
	if p.ContextBg != nil {
		o.ContextBg = *p.ContextBg
	}
	if p.AddedSign != nil {
		o.AddedSign = *p.AddedSign
	}
	if p.RemovedSign != nil {
		o.RemovedSign = *p.RemovedSign
	}
	if p.LineNumberBg != nil {
		o.LineNumberBg = *p.LineNumberBg
	}
	if p.AddedWordBg != nil {
		o.AddedWordBg = *p.AddedWordBg
	}
	if p.RemovedWordBg != nil {
		o.RemovedWordBg = *p.RemovedWordBg
	}
	return o
}

// normalize clamps Options fields that accept external input.
func (o Options) normalize() Options {
	o.SimilarityThreshold = min(max(o.SimilarityThreshold, 0), 1)
	return o
}

func (o Options) addedWordBg() lipgloss.AdaptiveColor {
	if o.AddedWordBg.Light != "" || o.AddedWordBg.Dark != "" {
		return o.AddedWordBg
	}
	return styles.BrightenAdaptive(o.AddedBg, wordBgBrightenFactor)
}

func (o Options) removedWordBg() lipgloss.AdaptiveColor {
	if o.RemovedWordBg.Light != "" || o.RemovedWordBg.Dark != "" {
		return o.RemovedWordBg
	}
	return styles.BrightenAdaptive(o.RemovedBg, wordBgBrightenFactor)
}

// paneStyles builds the pane styles for the current options.
func (o Options) paneStyles() pane.Styles {
	return pane.Styles{
		Context:     lipgloss.NewStyle().Background(o.ContextBg).Foreground(styles.TextPrimaryColor),
		Added:       lipgloss.NewStyle().Background(o.AddedBg).Foreground(styles.TextPrimaryColor),
		Removed:     lipgloss.NewStyle().Background(o.RemovedBg).Foreground(styles.TextPrimaryColor),
		Empty:       lipgloss.NewStyle().Background(o.LineNumberBg),
		AddedWord:   lipgloss.NewStyle().Background(o.addedWordBg()).Foreground(styles.TextPrimaryColor),
		RemovedWord: lipgloss.NewStyle().Background(o.removedWordBg()).Foreground(styles.TextPrimaryColor),
	}
}

// rawStyles paints un-diffed fallback text with no diff classification.
func rawStyles() pane.Styles {
	plain := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	return pane.Styles{
		Context: plain, Added: plain, Removed: plain, Empty: plain,
		AddedWord: plain, RemovedWord: plain,
	}
}

// gutterStyles builds the gutter styles for the current options.
func (o Options) gutterStyles() pane.GutterStyles {
	return pane.GutterStyles{
		Number:     lipgloss.NewStyle().Background(o.LineNumberBg).Foreground(styles.LineNumberColor),
		AddSign:    lipgloss.NewStyle().Background(o.LineNumberBg).Foreground(o.AddedSign),
		RemoveSign: lipgloss.NewStyle().Background(o.LineNumberBg).Foreground(o.RemovedSign),
		Blank:      lipgloss.NewStyle().Background(o.LineNumberBg),
	}
}
