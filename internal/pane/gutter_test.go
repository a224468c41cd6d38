package pane

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"diffpane/internal/diff"
)

func gutterMeta() diff.RowMetadata {
	meta := diff.NewRowMetadata()
	meta.RowCount = 3
	meta.LineNumbers[0] = 7
	meta.Types[0] = diff.LineContext
	meta.LineNumbers[1] = 8
	meta.Types[1] = diff.LineRemove
	meta.Signs[1] = diff.SignRemove
	meta.Types[2] = diff.LineEmpty
	meta.HiddenNums[2] = true
	return meta
}

func TestGutter_Width(t *testing.T) {
	g := NewGutter(GutterStyles{})
	require.Equal(t, 6, g.Width(), "minimum number width plus sign and space")

	meta := diff.NewRowMetadata()
	meta.LineNumbers[0] = 12345
	g.SetMetadata(meta)
	require.Equal(t, 8, g.Width())
}

func TestGutter_View(t *testing.T) {
	g := NewGutter(GutterStyles{})
	g.SetMetadata(gutterMeta())
	g.SetSources([]int{0, 1, 2})

	lines := strings.Split(g.View(0, 3), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "  7   ", lines[0])
	require.Equal(t, "  8 - ", lines[1])
	require.Equal(t, "      ", lines[2], "hidden rows show no number")
}

func TestGutter_ContinuationRowsBlank(t *testing.T) {
	g := NewGutter(GutterStyles{})
	meta := diff.NewRowMetadata()
	meta.RowCount = 1
	meta.LineNumbers[0] = 4
	meta.Types[0] = diff.LineAdd
	meta.Signs[0] = diff.SignAdd
	g.SetMetadata(meta)

	// Logical line 0 wrapped to three visual rows.
	g.SetSources([]int{0, 0, 0})

	lines := strings.Split(g.View(0, 3), "\n")
	require.Equal(t, "  4 + ", lines[0])
	require.Equal(t, "      ", lines[1], "wrap continuation rows carry no number or sign")
	require.Equal(t, "      ", lines[2])
}

func TestGutter_RowsPastContentBlank(t *testing.T) {
	g := NewGutter(GutterStyles{})
	g.SetMetadata(gutterMeta())
	g.SetSources([]int{0})

	lines := strings.Split(g.View(0, 3), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, strings.Repeat(" ", g.Width()), lines[1])
	require.Equal(t, strings.Repeat(" ", g.Width()), lines[2])
}

func TestGutter_ViewHonorsOffset(t *testing.T) {
	g := NewGutter(GutterStyles{})
	g.SetMetadata(gutterMeta())
	g.SetSources([]int{0, 1, 2})

	lines := strings.Split(g.View(1, 2), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "  8 - ", lines[0])
}
