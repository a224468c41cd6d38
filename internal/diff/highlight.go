package diff

// HighlightPair runs the word-level diff between a removed/added line pair
// and converts the spans into display-column highlight ranges for each side.
//
// Two running column cursors track the old and new side: added spans emit a
// highlight on the new side and advance the new cursor, removed spans emit
// on the old side and advance the old cursor, unchanged spans advance both
// without emitting. Columns are display-width units so the ranges line up
// with what the pane actually renders, wide/CJK runes included.
func HighlightPair(oldText, newText string) (oldHs, newHs []InlineHighlight) {
	oldCol, newCol := 0, 0

	for _, span := range DiffSpans(oldText, newText) {
		w := DisplayWidth(span.Text)
		if w == 0 {
			continue
		}
		switch {
		case span.Added:
			newHs = append(newHs, InlineHighlight{
				StartCol: newCol,
				EndCol:   newCol + w,
				Kind:     HighlightAddedWord,
			})
			newCol += w
		case span.Removed:
			oldHs = append(oldHs, InlineHighlight{
				StartCol: oldCol,
				EndCol:   oldCol + w,
				Kind:     HighlightRemovedWord,
			})
			oldCol += w
		default:
			oldCol += w
			newCol += w
		}
	}

	return oldHs, newHs
}
