package diff

// BuildSplit is Phase A of the split view: the same hunk scan as
// BuildUnified, but emitting two parallel row sequences (old/left,
// new/right) of equal length. Context rows land on both sides at the same
// index; change blocks keep their empty padding rows so index parity holds.
func BuildSplit(hunks []Hunk, cfg BuildConfig) (left, right []LogicalLine) {
	for _, hunk := range hunks {
		lines := hunk.Lines
		i := 0
		for i < len(lines) {
			switch lines[i].Type {
			case LineContext:
				left = append(left, LogicalLine{
					Content: lines[i].Content,
					LineNum: lines[i].OldLineNum,
					Type:    LineContext,
				})
				right = append(right, LogicalLine{
					Content: lines[i].Content,
					LineNum: lines[i].NewLineNum,
					Type:    LineContext,
				})
				i++
			case LineRemove:
				nRemoves := collectRun(lines, i, LineRemove)
				nAdds := collectRun(lines, i+nRemoves, LineAdd)
				l, r := ProcessBlock(lines[i:i+nRemoves], lines[i+nRemoves:i+nRemoves+nAdds], cfg)
				left = append(left, l...)
				right = append(right, r...)
				i += nRemoves + nAdds
			case LineAdd:
				nAdds := collectRun(lines, i, LineAdd)
				l, r := ProcessBlock(nil, lines[i:i+nAdds], cfg)
				left = append(left, l...)
				right = append(right, r...)
				i += nAdds
			default:
				i++
			}
		}
	}

	return left, right
}

// VisualCounts derives, from a pane's visual-row to logical-line mapping,
// the number of visual rows each of n logical lines occupies. Lines absent
// from the mapping default to 1.
func VisualCounts(sources []int, n int) []int {
	counts := make([]int, n)
	for i := range counts {
		counts[i] = 1
	}
	seen := make(map[int]int, n)
	for _, src := range sources {
		if src >= 0 && src < n {
			seen[src]++
		}
	}
	for idx, c := range seen {
		counts[idx] = c
	}
	return counts
}

// Realign is Phase B of the split view. After each side has been
// independently wrapped, the two columns drift apart wherever a logical
// line wraps to a different number of visual rows on each side. Realign
// walks both sequences in lock-step, tracking each side's cumulative visual
// position, and inserts synthetic empty rows on whichever side is behind so
// that every logical line starts on the same visual row in both panes.
// Trailing padding equalizes the final totals.
//
// leftCounts/rightCounts are per-logical-index visual row counts (see
// VisualCounts). Both input sequences must have equal length; after the
// walk, for every logical index the two sides' positions were equal at the
// moment its real row was emitted.
func Realign(left, right []LogicalLine, leftCounts, rightCounts []int) (outLeft, outRight []LogicalLine) {
	n := len(left)
	outLeft = make([]LogicalLine, 0, n)
	outRight = make([]LogicalLine, 0, n)

	leftPos, rightPos := 0, 0
	for i := range n {
		for leftPos < rightPos {
			outLeft = append(outLeft, EmptyLine())
			leftPos++
		}
		for rightPos < leftPos {
			outRight = append(outRight, EmptyLine())
			rightPos++
		}

		outLeft = append(outLeft, left[i])
		outRight = append(outRight, right[i])

		lc, rc := 1, 1
		if i < len(leftCounts) {
			lc = leftCounts[i]
		}
		if i < len(rightCounts) {
			rc = rightCounts[i]
		}
		leftPos += lc
		rightPos += rc
	}

	for leftPos < rightPos {
		outLeft = append(outLeft, EmptyLine())
		leftPos++
	}
	for rightPos < leftPos {
		outRight = append(outRight, EmptyLine())
		rightPos++
	}

	return outLeft, outRight
}
