package cmd

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"diffpane/internal/config"
	"diffpane/internal/diffview"
	"diffpane/internal/pane"
)

func TestOptionsFromConfig_Defaults(t *testing.T) {
	opts := optionsFromConfig(config.Default())

	require.Equal(t, diffview.ViewUnified, opts.View)
	require.Equal(t, pane.WrapNone, opts.Wrap)
	require.Equal(t, 0.4, opts.SimilarityThreshold)
	require.False(t, opts.DisableWordHighlights)
	require.False(t, opts.Conceal)
}

func TestOptionsFromConfig_Overrides(t *testing.T) {
	cfg := config.Default()
	cfg.View = "split"
	cfg.Wrap = "word"
	cfg.SimilarityThreshold = 0.6
	cfg.NoWordHighlights = true
	cfg.Conceal = true

	opts := optionsFromConfig(cfg)
	require.Equal(t, diffview.ViewSplit, opts.View)
	require.Equal(t, pane.WrapWord, opts.Wrap)
	require.Equal(t, 0.6, opts.SimilarityThreshold)
	require.True(t, opts.DisableWordHighlights)
	require.True(t, opts.Conceal)
}

func TestOptionsFromConfig_ThemeColors(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Colors = map[string]string{
		"added_bg":      "#AABBCC",
		"removed_sign":  "#112233",
		"added_word_bg": "#445566",
	}

	opts := optionsFromConfig(cfg)
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#AABBCC", Dark: "#AABBCC"}, opts.AddedBg)
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#112233", Dark: "#112233"}, opts.RemovedSign)
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#445566", Dark: "#445566"}, opts.AddedWordBg)

	// Untouched tokens keep their defaults.
	require.NotEmpty(t, opts.RemovedBg.Dark)
}

func TestOptionsFromConfig_InvalidModesFallBack(t *testing.T) {
	cfg := config.Default()
	cfg.View = "bogus"
	cfg.Wrap = "bogus"

	// Validate rejects these before the viewer ever sees them; the
	// translation itself keeps the defaults.
	opts := optionsFromConfig(cfg)
	require.Equal(t, diffview.ViewUnified, opts.View)
	require.Equal(t, pane.WrapNone, opts.Wrap)
}

func TestApplyThemeMode(t *testing.T) {
	orig := lipgloss.HasDarkBackground()
	defer lipgloss.SetHasDarkBackground(orig)

	applyThemeMode("dark")
	require.True(t, lipgloss.HasDarkBackground())

	applyThemeMode("light")
	require.False(t, lipgloss.HasDarkBackground())

	// Empty mode leaves the detected background untouched.
	applyThemeMode("")
	require.False(t, lipgloss.HasDarkBackground())
}

func TestReadDiff_File(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/input.diff"
	require.NoError(t, os.WriteFile(path, []byte("diff content"), 0644))

	text, err := readDiff(path)
	require.NoError(t, err)
	require.Equal(t, "diff content", text)
}

func TestReadDiff_MissingFile(t *testing.T) {
	_, err := readDiff(t.TempDir() + "/absent.diff")
	require.Error(t, err)
	require.Contains(t, err.Error(), "absent.diff")
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"view", "wrap", "similarity-threshold", "no-word-highlights", "conceal", "watch", "debug"} {
		require.NotNil(t, rootCmd.Flags().Lookup(name), "flag --%s", name)
	}
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3 (test)")
	require.Equal(t, "1.2.3 (test)", rootCmd.Version)
}
