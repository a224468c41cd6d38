// Package pane provides the text-rendering column and line-number gutter
// used by the diff viewer. A pane takes a content string plus a wrap mode,
// reflows it to its width, and exposes the visual-row to logical-line
// mapping the split-view alignment depends on.
package pane

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/rivo/uniseg"

	"diffpane/internal/diff"
)

// WrapMode controls how a pane reflows logical lines.
type WrapMode int

const (
	// WrapNone truncates long lines at the pane edge.
	WrapNone WrapMode = iota
	// WrapChar hard-wraps at the cell boundary.
	WrapChar
	// WrapWord wraps at word boundaries, hard-breaking oversized words.
	WrapWord
)

// String returns the config name of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapChar:
		return "char"
	case WrapWord:
		return "word"
	default:
		return "unknown"
	}
}

// ParseWrapMode converts a config string to a WrapMode.
func ParseWrapMode(s string) (WrapMode, bool) {
	switch s {
	case "none", "":
		return WrapNone, true
	case "char":
		return WrapChar, true
	case "word":
		return WrapWord, true
	default:
		return WrapNone, false
	}
}

// Styles holds the lipgloss styles a pane paints rows with.
type Styles struct {
	Context     lipgloss.Style
	Added       lipgloss.Style
	Removed     lipgloss.Style
	Empty       lipgloss.Style
	AddedWord   lipgloss.Style
	RemovedWord lipgloss.Style
}

// Pane is one rendered text column. It is long-lived: rebuilds mutate it in
// place via SetContent/SetMetadata so transient state (scroll offset)
// survives.
type Pane struct {
	lines []string // logical lines (final row sequence)
	wrap  WrapMode

	width  int
	height int

	yOffset int

	// Derived by reflow().
	rows      []string // visual rows, plain text
	sources   []int    // visual row -> logical line index
	rowStarts []int    // visual row -> starting display column within its logical line

	meta   diff.RowMetadata
	styles Styles
}

// New creates an empty pane.
func New(styles Styles) *Pane {
	return &Pane{styles: styles}
}

// SetStyles replaces the pane's styles.
func (p *Pane) SetStyles(styles Styles) {
	p.styles = styles
}

// SetContent replaces the pane content with newline-joined logical lines
// and reflows. Scroll position is preserved (clamped to the new extent).
func (p *Pane) SetContent(content string) {
	if content == "" {
		p.lines = nil
	} else {
		p.lines = strings.Split(content, "\n")
	}
	p.reflow()
}

// Content returns the current content string.
func (p *Pane) Content() string {
	return strings.Join(p.lines, "\n")
}

// SetWrapMode changes the wrap mode and reflows.
func (p *Pane) SetWrapMode(mode WrapMode) {
	if p.wrap == mode {
		return
	}
	p.wrap = mode
	p.reflow()
}

// WrapMode returns the active wrap mode.
func (p *Pane) WrapMode() WrapMode {
	return p.wrap
}

// SetSize updates pane dimensions. Width changes trigger a reflow; height
// only affects how many rows View slices out.
func (p *Pane) SetSize(width, height int) {
	heightOnly := width == p.width
	p.width = width
	p.height = height
	if !heightOnly {
		p.reflow()
	}
	p.clampYOffset()
}

// Width returns the pane width in cells, 0 before layout.
func (p *Pane) Width() int { return p.width }

// Height returns the pane height in rows, 0 before layout.
func (p *Pane) Height() int { return p.height }

// SetMetadata installs the per-row display metadata, keyed by logical line
// index in the current content.
func (p *Pane) SetMetadata(meta diff.RowMetadata) {
	p.meta = meta
}

// LineSources returns, per visual row, the index of the logical line it
// renders. The slice is owned by the pane; callers must not mutate it.
func (p *Pane) LineSources() []int {
	return p.sources
}

// TotalRows returns the number of visual rows after wrapping.
func (p *Pane) TotalRows() int {
	return len(p.rows)
}

// YOffset returns the scroll position (first visible visual row).
func (p *Pane) YOffset() int { return p.yOffset }

// SetYOffset sets the scroll position, clamped to the valid range.
func (p *Pane) SetYOffset(offset int) {
	p.yOffset = offset
	p.clampYOffset()
}

// GotoTop scrolls to the first row.
func (p *Pane) GotoTop() { p.yOffset = 0 }

// GotoBottom scrolls to the last page.
func (p *Pane) GotoBottom() {
	p.yOffset = p.maxYOffset()
}

func (p *Pane) maxYOffset() int {
	return max(len(p.rows)-p.height, 0)
}

func (p *Pane) clampYOffset() {
	if p.yOffset > p.maxYOffset() {
		p.yOffset = p.maxYOffset()
	}
	if p.yOffset < 0 {
		p.yOffset = 0
	}
}

// reflow recomputes visual rows, their logical sources, and each row's
// starting display column.
func (p *Pane) reflow() {
	p.rows = p.rows[:0]
	p.sources = p.sources[:0]
	p.rowStarts = p.rowStarts[:0]

	for i, line := range p.lines {
		for _, piece := range p.wrapLine(line) {
			p.rows = append(p.rows, piece.text)
			p.sources = append(p.sources, i)
			p.rowStarts = append(p.rowStarts, piece.startCol)
		}
	}
	p.clampYOffset()
}

type rowPiece struct {
	text     string
	startCol int
}

// wrapLine splits one logical line into visual rows per the wrap mode.
// Every logical line yields at least one row, even when empty.
func (p *Pane) wrapLine(line string) []rowPiece {
	if p.width <= 0 || p.wrap == WrapNone || diff.DisplayWidth(line) <= p.width {
		return []rowPiece{{text: line}}
	}

	var wrapped string
	switch p.wrap {
	case WrapChar:
		wrapped = wrap.String(line, p.width)
	case WrapWord:
		// Word wrap first, then hard-wrap anything still over width
		// (unbroken words longer than the pane).
		wrapped = wrap.String(wordwrap.String(line, p.width), p.width)
	}

	parts := strings.Split(wrapped, "\n")
	pieces := make([]rowPiece, 0, len(parts))

	// Word wrapping eats the whitespace it breaks on, so each row's
	// starting column is recovered by locating the row text within the
	// unconsumed remainder of the logical line.
	rest := line
	col := 0
	for _, part := range parts {
		start := col
		if part != "" {
			if idx := strings.Index(rest, part); idx >= 0 {
				start = col + diff.DisplayWidth(rest[:idx])
				rest = rest[idx+len(part):]
			}
		}
		pieces = append(pieces, rowPiece{text: part, startCol: start})
		col = start + diff.DisplayWidth(part)
	}
	return pieces
}

// View renders the visible window of the pane.
func (p *Pane) View() string {
	if p.width < 1 || p.height < 1 {
		return ""
	}

	var b strings.Builder
	end := min(p.yOffset+p.height, len(p.rows))
	n := 0
	for v := p.yOffset; v < end; v++ {
		if n > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.renderRow(v))
		n++
	}
	// Pad to full height.
	for ; n < p.height; n++ {
		if n > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", p.width))
	}
	return b.String()
}

// renderRow paints one visual row: background classification for the whole
// row plus inline word highlights at their display columns.
func (p *Pane) renderRow(v int) string {
	text := p.rows[v]
	src := p.sources[v]
	startCol := p.rowStarts[v]

	base := p.styles.Context
	switch p.meta.Types[src] {
	case diff.LineAdd:
		base = p.styles.Added
	case diff.LineRemove:
		base = p.styles.Removed
	case diff.LineEmpty:
		base = p.styles.Empty
	}

	if p.wrap == WrapNone && diff.DisplayWidth(text) > p.width {
		text = runewidth.Truncate(text, p.width, "")
	}

	highlights := p.meta.Highlights[src]
	var out strings.Builder
	if len(highlights) == 0 {
		out.WriteString(base.Render(text))
	} else {
		out.WriteString(p.renderHighlighted(text, startCol, base, highlights))
	}

	if pad := p.width - diff.DisplayWidth(text); pad > 0 {
		out.WriteString(base.Render(strings.Repeat(" ", pad)))
	}
	return out.String()
}

// renderHighlighted walks the row's grapheme clusters, switching between
// the base style and the word-highlight style as display columns enter and
// leave highlight ranges.
func (p *Pane) renderHighlighted(text string, startCol int, base lipgloss.Style, highlights []diff.InlineHighlight) string {
	var out strings.Builder
	var segment strings.Builder

	col := startCol
	current, currentOK := p.highlightAt(highlights, col)

	flush := func() {
		if segment.Len() == 0 {
			return
		}
		if currentOK {
			out.WriteString(p.highlightStyle(current).Render(segment.String()))
		} else {
			out.WriteString(base.Render(segment.String()))
		}
		segment.Reset()
	}

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		kind, ok := p.highlightAt(highlights, col)
		if ok != currentOK || kind != current {
			flush()
			current, currentOK = kind, ok
		}
		segment.WriteString(cluster)
		col += diff.DisplayWidth(cluster)
	}
	flush()
	return out.String()
}

func (p *Pane) highlightAt(highlights []diff.InlineHighlight, col int) (diff.HighlightKind, bool) {
	for _, h := range highlights {
		if col >= h.StartCol && col < h.EndCol {
			return h.Kind, true
		}
	}
	return 0, false
}

func (p *Pane) highlightStyle(kind diff.HighlightKind) lipgloss.Style {
	if kind == diff.HighlightRemovedWord {
		return p.styles.RemovedWord
	}
	return p.styles.AddedWord
}
