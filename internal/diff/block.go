package diff

// DefaultSimilarityThreshold gates word-level highlighting on a pair; below
// it the remove/add are treated as unrelated. The source design carried two
// competing defaults (0.4 and 0.5); 0.4 is the single reconciled default.
const DefaultSimilarityThreshold = 0.4

// MaxHighlightBlockLines caps the block size (removes + adds) beyond which
// word-level highlighting is skipped for performance.
const MaxHighlightBlockLines = 50

// BuildConfig controls change-block processing for both view builders.
type BuildConfig struct {
	// DisableWordHighlights turns off word-level highlighting globally.
	DisableWordHighlights bool
	// SimilarityThreshold is clamped to [0,1]; pairs scoring below it get
	// no inline highlights.
	SimilarityThreshold float64
	// Scorer rates remove/add pairs. Nil disables highlighting.
	Scorer *Scorer
}

// DefaultBuildConfig returns a config with the documented defaults and a
// fresh scorer.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		SimilarityThreshold: DefaultSimilarityThreshold,
		Scorer:              NewScorer(),
	}
}

func (c BuildConfig) threshold() float64 {
	return min(max(c.SimilarityThreshold, 0), 1)
}

// ProcessBlock pairs the ordered remove-lines and add-lines of one change
// block positionally: removes[j] with adds[j], no best-match search. The
// returned sequences have equal length max(len(removes), len(adds)); the
// shorter side is padded with synthetic empty rows.
//
// A pair that exists on both sides gets word-level highlights only when
// highlighting is enabled, the block is small enough, neither line is
// excessively long, and the pair scores at or above the similarity
// threshold.
func ProcessBlock(removes, adds []Line, cfg BuildConfig) (left, right []LogicalLine) {
	n := max(len(removes), len(adds))
	if n == 0 {
		return nil, nil
	}
	left = make([]LogicalLine, 0, n)
	right = make([]LogicalLine, 0, n)

	highlightable := !cfg.DisableWordHighlights &&
		cfg.Scorer != nil &&
		len(removes)+len(adds) <= MaxHighlightBlockLines

	for j := range n {
		var l, r LogicalLine
		hasLeft := j < len(removes)
		hasRight := j < len(adds)

		if hasLeft {
			l = LogicalLine{
				Content: removes[j].Content,
				LineNum: removes[j].OldLineNum,
				Type:    LineRemove,
				Sign:    SignRemove,
			}
		} else {
			l = EmptyLine()
		}
		if hasRight {
			r = LogicalLine{
				Content: adds[j].Content,
				LineNum: adds[j].NewLineNum,
				Type:    LineAdd,
				Sign:    SignAdd,
			}
		} else {
			r = EmptyLine()
		}

		if hasLeft && hasRight && highlightable &&
			len(l.Content) <= MaxHighlightLineLength &&
			len(r.Content) <= MaxHighlightLineLength &&
			cfg.Scorer.Similarity(l.Content, r.Content) >= cfg.threshold() {
			l.Highlights, r.Highlights = HighlightPair(l.Content, r.Content)
		}

		left = append(left, l)
		right = append(right, r)
	}

	return left, right
}

// collectRun returns the count of consecutive lines of the given type
// starting at start.
func collectRun(lines []Line, start int, t LineType) int {
	n := 0
	for i := start; i < len(lines) && lines[i].Type == t; i++ {
		n++
	}
	return n
}
