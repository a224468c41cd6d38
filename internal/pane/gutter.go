package pane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"diffpane/internal/diff"
)

// signWidth is the cell width of the trailing sign glyph (" +" / " -").
const signWidth = 2

// minNumberWidth keeps short files from producing a one-cell gutter.
const minNumberWidth = 3

// GutterStyles holds the styles for the line-number sidebar.
type GutterStyles struct {
	Number     lipgloss.Style
	AddSign    lipgloss.Style
	RemoveSign lipgloss.Style
	Blank      lipgloss.Style
}

// Gutter paints per-row line numbers and signs for one pane. It is a pure
// consumer of the row metadata maps; nothing feeds back into the builders.
type Gutter struct {
	meta    diff.RowMetadata
	sources []int
	styles  GutterStyles

	numberWidth int
}

// NewGutter creates a gutter with the given styles.
func NewGutter(styles GutterStyles) *Gutter {
	return &Gutter{styles: styles, numberWidth: minNumberWidth}
}

// SetStyles replaces the gutter's styles.
func (g *Gutter) SetStyles(styles GutterStyles) {
	g.styles = styles
}

// SetMetadata installs row metadata and recomputes the number column width
// from the largest line number present.
func (g *Gutter) SetMetadata(meta diff.RowMetadata) {
	g.meta = meta
	maxNum := 0
	for _, n := range meta.LineNumbers {
		maxNum = max(maxNum, n)
	}
	g.numberWidth = max(len(fmt.Sprintf("%d", maxNum)), minNumberWidth)
}

// SetSources installs the pane's visual-row to logical-line mapping so the
// gutter can blank out wrap-continuation rows.
func (g *Gutter) SetSources(sources []int) {
	g.sources = sources
}

// Width returns the total gutter width in cells.
func (g *Gutter) Width() int {
	return g.numberWidth + signWidth + 1 // number, sign, trailing space
}

// View renders height gutter rows starting at the given visual offset.
func (g *Gutter) View(yOffset, height int) string {
	if height < 1 {
		return ""
	}

	var b strings.Builder
	for i := range height {
		if i > 0 {
			b.WriteString("\n")
		}
		v := yOffset + i
		if v < 0 || v >= len(g.sources) {
			b.WriteString(g.styles.Blank.Render(strings.Repeat(" ", g.Width())))
			continue
		}
		b.WriteString(g.renderRow(v))
	}
	return b.String()
}

func (g *Gutter) renderRow(v int) string {
	src := g.sources[v]

	// Numbers only on the first visual row of a logical line; continuation
	// rows and hidden rows show blanks.
	first := v == 0 || g.sources[v-1] != src
	num, hasNum := g.meta.LineNumbers[src]

	numberCell := strings.Repeat(" ", g.numberWidth)
	if first && hasNum && !g.meta.HiddenNums[src] {
		numberCell = fmt.Sprintf("%*d", g.numberWidth, num)
	}

	signCell := strings.Repeat(" ", signWidth)
	signStyle := g.styles.Blank
	if first {
		if sign, ok := g.meta.Signs[src]; ok {
			signCell = sign
			if g.meta.Types[src] == diff.LineRemove {
				signStyle = g.styles.RemoveSign
			} else {
				signStyle = g.styles.AddSign
			}
		}
	}

	return g.styles.Number.Render(numberCell) + signStyle.Render(signCell) + g.styles.Blank.Render(" ")
}
