// Package diff turns unified-diff text into per-row display metadata for
// unified and split (side-by-side) terminal views.
package diff

import (
	"github.com/mattn/go-runewidth"
)

// LineType represents the type of a diff line.
type LineType int

const (
	LineContext LineType = iota // ' ' prefix - unchanged line
	LineAdd                     // '+' prefix - added line
	LineRemove                  // '-' prefix - removed line
	LineEmpty                   // synthetic alignment padding, no source counterpart
)

// String returns a short name for the line type.
func (t LineType) String() string {
	switch t {
	case LineContext:
		return "context"
	case LineAdd:
		return "add"
	case LineRemove:
		return "remove"
	case LineEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Line is a single source line within a hunk.
type Line struct {
	Type       LineType
	OldLineNum int // Line number in old file (0 if addition)
	NewLineNum int // Line number in new file (0 if deletion)
	Content    string
}

// Hunk represents a contiguous section of changes in a diff.
type Hunk struct {
	OldStart int    // Starting line number in old file
	OldCount int    // Number of lines from old file
	NewStart int    // Starting line number in new file
	NewCount int    // Number of lines from new file
	Header   string // The @@ line text
	Lines    []Line
}

// File represents a single file's changes in a diff.
type File struct {
	OldPath   string // Path in old version (or /dev/null for new files)
	NewPath   string // Path in new version (or /dev/null for deleted files)
	Additions int    // Count of added lines
	Deletions int    // Count of deleted lines
	IsBinary  bool   // True if file is binary
	IsRenamed bool   // True if file was renamed
	IsNew     bool   // True if new file (OldPath = /dev/null)
	IsDeleted bool   // True if deleted file (NewPath = /dev/null)
	Hunks     []Hunk
}

// HighlightKind distinguishes added-word from removed-word highlights.
type HighlightKind int

const (
	HighlightAddedWord HighlightKind = iota
	HighlightRemovedWord
)

// InlineHighlight is a word-level highlight range within one logical line.
// Columns are display-width units, not byte or rune offsets.
type InlineHighlight struct {
	StartCol int
	EndCol   int
	Kind     HighlightKind
}

// Sign glyphs rendered in the gutter next to changed rows.
const (
	SignAdd    = " +"
	SignRemove = " -"
)

// LogicalLine is one row of display content before visual wrapping.
type LogicalLine struct {
	Content        string
	LineNum        int // old- or new-file line number; 0 when absent
	HideLineNumber bool
	Type           LineType
	Sign           string
	Highlights     []InlineHighlight
}

// EmptyLine returns a synthetic padding row used only for alignment.
func EmptyLine() LogicalLine {
	return LogicalLine{Type: LineEmpty, HideLineNumber: true}
}

// RowMetadata is the contract handed to the gutter/pane collaborators:
// parallel maps keyed by final row index, plus a hidden-number set.
type RowMetadata struct {
	LineNumbers map[int]int
	Types       map[int]LineType
	Signs       map[int]string
	Highlights  map[int][]InlineHighlight
	HiddenNums  map[int]bool
	RowCount    int
}

// NewRowMetadata returns empty metadata maps.
func NewRowMetadata() RowMetadata {
	return RowMetadata{
		LineNumbers: make(map[int]int),
		Types:       make(map[int]LineType),
		Signs:       make(map[int]string),
		Highlights:  make(map[int][]InlineHighlight),
		HiddenNums:  make(map[int]bool),
	}
}

// DeriveMetadata builds row metadata from a final row sequence, keyed by
// each row's position in that sequence.
func DeriveMetadata(rows []LogicalLine) RowMetadata {
	meta := NewRowMetadata()
	meta.RowCount = len(rows)
	for i, row := range rows {
		meta.Types[i] = row.Type
		if row.LineNum > 0 {
			meta.LineNumbers[i] = row.LineNum
		}
		if row.HideLineNumber {
			meta.HiddenNums[i] = true
		}
		if row.Sign != "" {
			meta.Signs[i] = row.Sign
		}
		if len(row.Highlights) > 0 {
			meta.Highlights[i] = row.Highlights
		}
	}
	return meta
}

// Contents joins a row sequence into the content string handed to a pane.
func Contents(rows []LogicalLine) string {
	if len(rows) == 0 {
		return ""
	}
	var n int
	for _, r := range rows {
		n += len(r.Content) + 1
	}
	buf := make([]byte, 0, n)
	for i, r := range rows {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, r.Content...)
	}
	return string(buf)
}

// DisplayWidth is the width metric shared by the scorer, the highlight
// mapper, and the pane. The two must agree or highlight ranges misalign
// with rendered glyphs.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
