package diff

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// MaxHighlightLineLength skips word-level diffing for lines exceeding this
// many bytes.
const MaxHighlightLineLength = 500

// Span is one word-level diff segment. Concatenating the Text of all
// non-added spans reconstructs the old line; non-removed spans the new line.
type Span struct {
	Text    string
	Added   bool
	Removed bool
}

// tokenize splits a line into tokens (words, whitespace, and punctuation).
// Example: "foo.bar.baz()" -> ["foo", ".", "bar", ".", "baz", "(", ")"]
func tokenize(line string) []string {
	if line == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// DiffSpans computes a word-level diff between two lines. Spans come out in
// output order; diffmatchpatch runs on token boundaries rather than bytes so
// highlights snap to whole words and punctuation.
func DiffSpans(oldLine, newLine string) []Span {
	if oldLine == "" && newLine == "" {
		return nil
	}
	if oldLine == "" {
		return []Span{{Text: newLine, Added: true}}
	}
	if newLine == "" {
		return []Span{{Text: oldLine, Removed: true}}
	}

	oldTokens := tokenize(oldLine)
	newTokens := tokenize(newLine)

	// Join tokens with NUL so diffmatchpatch aligns on token boundaries,
	// then strip the separators from the output text.
	dmp := diffmatchpatch.New()
	oldText := strings.Join(oldTokens, "\x00")
	newText := strings.Join(newTokens, "\x00")

	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var spans []Span
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\x00", "")
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			spans = append(spans, Span{Text: text})
		case diffmatchpatch.DiffDelete:
			spans = append(spans, Span{Text: text, Removed: true})
		case diffmatchpatch.DiffInsert:
			spans = append(spans, Span{Text: text, Added: true})
		}
	}

	return spans
}
