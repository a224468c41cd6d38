package diff

// BuildUnified walks all hunks and emits one interleaved row sequence:
// context rows as-is (carrying the new-file line number), then for each
// change block all removed rows followed by all added rows. Synthetic empty
// rows are dropped entirely; unified view has no alignment requirement.
func BuildUnified(hunks []Hunk, cfg BuildConfig) []LogicalLine {
	var rows []LogicalLine

	for _, hunk := range hunks {
		lines := hunk.Lines
		i := 0
		for i < len(lines) {
			switch lines[i].Type {
			case LineContext:
				rows = append(rows, LogicalLine{
					Content: lines[i].Content,
					LineNum: lines[i].NewLineNum,
					Type:    LineContext,
				})
				i++
			case LineRemove:
				nRemoves := collectRun(lines, i, LineRemove)
				nAdds := collectRun(lines, i+nRemoves, LineAdd)
				left, right := ProcessBlock(lines[i:i+nRemoves], lines[i+nRemoves:i+nRemoves+nAdds], cfg)
				rows = appendReal(rows, left)
				rows = appendReal(rows, right)
				i += nRemoves + nAdds
			case LineAdd:
				// Adds not preceded by removes form an add-only block.
				nAdds := collectRun(lines, i, LineAdd)
				_, right := ProcessBlock(nil, lines[i:i+nAdds], cfg)
				rows = appendReal(rows, right)
				i += nAdds
			default:
				i++
			}
		}
	}

	return rows
}

// appendReal appends rows, filtering out empty padding rows.
func appendReal(dst, src []LogicalLine) []LogicalLine {
	for _, row := range src {
		if row.Type == LineEmpty {
			continue
		}
		dst = append(dst, row)
	}
	return dst
}
