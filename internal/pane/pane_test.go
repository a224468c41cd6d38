package pane

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"diffpane/internal/diff"
)

func TestParseWrapMode(t *testing.T) {
	tests := []struct {
		input    string
		expected WrapMode
		ok       bool
	}{
		{"none", WrapNone, true},
		{"", WrapNone, true},
		{"char", WrapChar, true},
		{"word", WrapWord, true},
		{"bogus", WrapNone, false},
	}

	for _, tt := range tests {
		mode, ok := ParseWrapMode(tt.input)
		require.Equal(t, tt.ok, ok, "input %q", tt.input)
		require.Equal(t, tt.expected, mode, "input %q", tt.input)
	}
}

func TestPane_NoWrapOneRowPerLine(t *testing.T) {
	p := New(Styles{})
	p.SetSize(10, 5)
	p.SetContent("first\nsecond line that is long\nthird")

	require.Equal(t, 3, p.TotalRows())
	require.Equal(t, []int{0, 1, 2}, p.LineSources())
}

func TestPane_CharWrap(t *testing.T) {
	p := New(Styles{})
	p.SetWrapMode(WrapChar)
	p.SetSize(3, 5)
	p.SetContent("abcdefgh\nxy")

	require.Equal(t, 4, p.TotalRows())
	require.Equal(t, []int{0, 0, 0, 1}, p.LineSources())
	require.Equal(t, []int{0, 3, 6, 0}, p.rowStarts)
	require.Equal(t, []string{"abc", "def", "gh", "xy"}, p.rows)
}

func TestPane_WordWrap(t *testing.T) {
	p := New(Styles{})
	p.SetWrapMode(WrapWord)
	p.SetSize(6, 5)
	p.SetContent("hello world foo")

	require.Equal(t, []string{"hello", "world", "foo"}, p.rows)
	require.Equal(t, []int{0, 0, 0}, p.LineSources())

	// Wrapping eats the break spaces; start columns still point at where
	// each row begins in the logical line.
	require.Equal(t, []int{0, 6, 12}, p.rowStarts)
}

func TestPane_WordWrapHardBreaksOversizedWords(t *testing.T) {
	p := New(Styles{})
	p.SetWrapMode(WrapWord)
	p.SetSize(4, 5)
	p.SetContent("abcdefghij")

	require.GreaterOrEqual(t, p.TotalRows(), 3)
	for _, row := range p.rows {
		require.LessOrEqual(t, diff.DisplayWidth(row), 4)
	}
}

func TestPane_EmptyLineStillYieldsRow(t *testing.T) {
	p := New(Styles{})
	p.SetWrapMode(WrapChar)
	p.SetSize(5, 5)
	p.SetContent("a\n\nb")

	require.Equal(t, 3, p.TotalRows())
}

func TestPane_EmptyContent(t *testing.T) {
	p := New(Styles{})
	p.SetSize(5, 3)
	p.SetContent("")
	require.Equal(t, 0, p.TotalRows())
}

func TestPane_HeightOnlyResizeKeepsRows(t *testing.T) {
	p := New(Styles{})
	p.SetWrapMode(WrapChar)
	p.SetSize(3, 5)
	p.SetContent("abcdefgh")
	rows := p.TotalRows()

	p.SetSize(3, 2)
	require.Equal(t, rows, p.TotalRows())
}

func TestPane_WidthResizeReflows(t *testing.T) {
	p := New(Styles{})
	p.SetWrapMode(WrapChar)
	p.SetSize(3, 5)
	p.SetContent("abcdefgh")
	require.Equal(t, 3, p.TotalRows())

	p.SetSize(8, 5)
	require.Equal(t, 1, p.TotalRows())
}

func TestPane_ScrollClamping(t *testing.T) {
	p := New(Styles{})
	p.SetSize(10, 2)
	p.SetContent("a\nb\nc\nd\ne")

	p.SetYOffset(99)
	require.Equal(t, 3, p.YOffset())

	p.SetYOffset(-5)
	require.Equal(t, 0, p.YOffset())

	p.GotoBottom()
	require.Equal(t, 3, p.YOffset())
	p.GotoTop()
	require.Equal(t, 0, p.YOffset())
}

func TestPane_ScrollSurvivesSetContent(t *testing.T) {
	p := New(Styles{})
	p.SetSize(10, 2)
	p.SetContent("a\nb\nc\nd\ne")
	p.SetYOffset(2)

	p.SetContent("a\nb\nc\nd\ne\nf")
	require.Equal(t, 2, p.YOffset())

	// Shrinking content clamps the offset back into range.
	p.SetContent("a\nb")
	require.Equal(t, 0, p.YOffset())
}

func TestPane_ViewPadsToWidthAndHeight(t *testing.T) {
	p := New(Styles{})
	p.SetSize(5, 3)
	p.SetContent("ab")

	lines := strings.Split(p.View(), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "ab   ", lines[0])
	require.Equal(t, "     ", lines[1])
	require.Equal(t, "     ", lines[2])
}

func TestPane_ViewTruncatesWithoutWrap(t *testing.T) {
	p := New(Styles{})
	p.SetSize(3, 1)
	p.SetContent("abcdef")

	require.Equal(t, "abc", p.View())
}

func TestPane_ViewWindowFollowsOffset(t *testing.T) {
	p := New(Styles{})
	p.SetSize(1, 2)
	p.SetContent("a\nb\nc\nd")
	p.SetYOffset(1)

	require.Equal(t, "b\nc", p.View())
}

func TestPane_ViewBeforeLayout(t *testing.T) {
	p := New(Styles{})
	p.SetContent("anything")
	require.Equal(t, "", p.View())
}

func TestPane_HighlightSegmentation(t *testing.T) {
	p := New(Styles{})
	p.SetSize(20, 1)
	p.SetContent("say goodbye")

	meta := diff.NewRowMetadata()
	meta.RowCount = 1
	meta.Types[0] = diff.LineAdd
	meta.Highlights[0] = []diff.InlineHighlight{{StartCol: 4, EndCol: 11, Kind: diff.HighlightAddedWord}}
	p.SetMetadata(meta)

	// Styles carry no terminal attributes here, so rendering must
	// reproduce the text byte for byte regardless of segmentation.
	require.Equal(t, "say goodbye"+strings.Repeat(" ", 9), p.View())
}

func TestPane_HighlightAt(t *testing.T) {
	p := New(Styles{})
	highlights := []diff.InlineHighlight{
		{StartCol: 2, EndCol: 5, Kind: diff.HighlightRemovedWord},
		{StartCol: 8, EndCol: 9, Kind: diff.HighlightAddedWord},
	}

	kind, ok := p.highlightAt(highlights, 2)
	require.True(t, ok)
	require.Equal(t, diff.HighlightRemovedWord, kind)

	_, ok = p.highlightAt(highlights, 5)
	require.False(t, ok, "EndCol is exclusive")

	kind, ok = p.highlightAt(highlights, 8)
	require.True(t, ok)
	require.Equal(t, diff.HighlightAddedWord, kind)

	_, ok = p.highlightAt(highlights, 0)
	require.False(t, ok)
}

func TestPane_WideRuneWrap(t *testing.T) {
	p := New(Styles{})
	p.SetWrapMode(WrapChar)
	p.SetSize(4, 5)
	p.SetContent("价格价格")

	// Two cells per rune: two runes per row.
	require.Equal(t, 2, p.TotalRows())
	require.Equal(t, []int{0, 4}, p.rowStarts)
}
