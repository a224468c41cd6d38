package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func removeLine(num int, content string) Line {
	return Line{Type: LineRemove, OldLineNum: num, Content: content}
}

func addLine(num int, content string) Line {
	return Line{Type: LineAdd, NewLineNum: num, Content: content}
}

func TestProcessBlock_PositionalPairing(t *testing.T) {
	removes := []Line{removeLine(3, "alpha"), removeLine(4, "beta")}
	adds := []Line{addLine(3, "alpha!"), addLine(4, "beta!")}

	left, right := ProcessBlock(removes, adds, DefaultBuildConfig())

	require.Len(t, left, 2)
	require.Len(t, right, 2)

	require.Equal(t, "alpha", left[0].Content)
	require.Equal(t, "alpha!", right[0].Content)
	require.Equal(t, LineRemove, left[0].Type)
	require.Equal(t, LineAdd, right[0].Type)
	require.Equal(t, SignRemove, left[0].Sign)
	require.Equal(t, SignAdd, right[0].Sign)
	require.Equal(t, 3, left[0].LineNum)
	require.Equal(t, 3, right[0].LineNum)
}

func TestProcessBlock_UnevenSidesPadded(t *testing.T) {
	removes := []Line{removeLine(1, "only removal")}
	adds := []Line{addLine(1, "first addition"), addLine(2, "second addition")}

	left, right := ProcessBlock(removes, adds, DefaultBuildConfig())

	require.Len(t, left, 2)
	require.Len(t, right, 2)
	require.Equal(t, LineEmpty, left[1].Type)
	require.True(t, left[1].HideLineNumber)
	require.Empty(t, left[1].Content)
	require.Equal(t, LineAdd, right[1].Type)
}

func TestProcessBlock_EmptyBlock(t *testing.T) {
	left, right := ProcessBlock(nil, nil, DefaultBuildConfig())
	require.Nil(t, left)
	require.Nil(t, right)
}

func TestProcessBlock_HighlightsAboveThreshold(t *testing.T) {
	removes := []Line{removeLine(1, "const value = 1")}
	adds := []Line{addLine(1, "const value = 2")}

	left, right := ProcessBlock(removes, adds, DefaultBuildConfig())

	require.NotEmpty(t, left[0].Highlights)
	require.NotEmpty(t, right[0].Highlights)
	require.Equal(t, HighlightRemovedWord, left[0].Highlights[0].Kind)
	require.Equal(t, HighlightAddedWord, right[0].Highlights[0].Kind)
}

func TestProcessBlock_NoHighlightsBelowThreshold(t *testing.T) {
	removes := []Line{removeLine(1, "completely unrelated old text")}
	adds := []Line{addLine(1, "zzz qqq xxx")}

	left, right := ProcessBlock(removes, adds, DefaultBuildConfig())

	require.Empty(t, left[0].Highlights)
	require.Empty(t, right[0].Highlights)
}

func TestProcessBlock_ThresholdBoundary(t *testing.T) {
	// "say hello" -> "say goodbye" scores ~0.36: highlighted only when
	// the threshold admits it.
	removes := []Line{removeLine(1, "say hello")}
	adds := []Line{addLine(1, "say goodbye")}

	strict := DefaultBuildConfig()
	strict.SimilarityThreshold = 0.9
	left, right := ProcessBlock(removes, adds, strict)
	require.Empty(t, left[0].Highlights)
	require.Empty(t, right[0].Highlights)

	lax := DefaultBuildConfig()
	lax.SimilarityThreshold = 0.1
	left, right = ProcessBlock(removes, adds, lax)
	require.NotEmpty(t, left[0].Highlights)
	require.NotEmpty(t, right[0].Highlights)
}

func TestProcessBlock_DisabledHighlights(t *testing.T) {
	removes := []Line{removeLine(1, "const value = 1")}
	adds := []Line{addLine(1, "const value = 2")}

	cfg := DefaultBuildConfig()
	cfg.DisableWordHighlights = true

	left, right := ProcessBlock(removes, adds, cfg)
	require.Empty(t, left[0].Highlights)
	require.Empty(t, right[0].Highlights)
}

func TestProcessBlock_LargeBlockSkipsHighlights(t *testing.T) {
	var removes, adds []Line
	for i := range MaxHighlightBlockLines {
		removes = append(removes, removeLine(i+1, "shared prefix old"))
		adds = append(adds, addLine(i+1, "shared prefix new"))
	}

	left, _ := ProcessBlock(removes, adds, DefaultBuildConfig())
	require.Empty(t, left[0].Highlights, "oversized block must skip highlighting")

	left, _ = ProcessBlock(removes[:1], adds[:1], DefaultBuildConfig())
	require.NotEmpty(t, left[0].Highlights, "same pair highlights in a small block")
}

func TestProcessBlock_LongLineSkipsHighlights(t *testing.T) {
	long := strings.Repeat("x", MaxHighlightLineLength+1)
	removes := []Line{removeLine(1, long + " old")}
	adds := []Line{addLine(1, long + " new")}

	left, right := ProcessBlock(removes, adds, DefaultBuildConfig())
	require.Empty(t, left[0].Highlights)
	require.Empty(t, right[0].Highlights)
}

func TestBuildConfig_ThresholdClamped(t *testing.T) {
	cfg := BuildConfig{SimilarityThreshold: 1.7}
	require.Equal(t, 1.0, cfg.threshold())

	cfg.SimilarityThreshold = -0.3
	require.Equal(t, 0.0, cfg.threshold())
}
