package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"diffpane/internal/config"
	"diffpane/internal/diffview"
	"diffpane/internal/log"
	"diffpane/internal/pane"
	"diffpane/internal/watch"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "diffpane [file]",
	Short:   "A terminal viewer for unified diffs",
	Long:    `A terminal viewer for unified diffs with side-by-side and interleaved presentation, word-level change highlighting, and line wrapping. Reads a diff from the given file or from stdin.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runViewer,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/diffpane/config.yaml)")
	defaults := config.Default()
	rootCmd.Flags().String("view", defaults.View,
		"presentation mode: unified or split")
	rootCmd.Flags().String("wrap", defaults.Wrap,
		"line wrapping: none, char, or word")
	rootCmd.Flags().Float64("similarity-threshold", defaults.SimilarityThreshold,
		"minimum similarity for word-level highlights (0..1)")
	rootCmd.Flags().Bool("no-word-highlights", false,
		"disable word-level change highlighting")
	rootCmd.Flags().Bool("conceal", false,
		"hide line-number and sign gutters")
	rootCmd.Flags().Bool("watch", false,
		"re-render when the input file changes")
	rootCmd.Flags().Bool("debug", false,
		"write debug logs to diffpane.log")

	// Bind flags to viper so flags override config file values
	_ = viper.BindPFlag("view", rootCmd.Flags().Lookup("view"))
	_ = viper.BindPFlag("wrap", rootCmd.Flags().Lookup("wrap"))
	_ = viper.BindPFlag("similarity_threshold", rootCmd.Flags().Lookup("similarity-threshold"))
	_ = viper.BindPFlag("no_word_highlights", rootCmd.Flags().Lookup("no-word-highlights"))
	_ = viper.BindPFlag("conceal", rootCmd.Flags().Lookup("conceal"))
	_ = viper.BindPFlag("watch", rootCmd.Flags().Lookup("watch"))
}

func initConfig() {
	defaults := config.Default()
	viper.SetDefault("view", defaults.View)
	viper.SetDefault("wrap", defaults.Wrap)
	viper.SetDefault("similarity_threshold", defaults.SimilarityThreshold)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .diffpane/config.yaml (current directory)
		// 2. ~/.config/diffpane/config.yaml (user config)
		if _, err := os.Stat(config.LocalConfigPath()); err == nil {
			viper.SetConfigFile(config.LocalConfigPath())
		} else if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "diffpane"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		// Missing config is fine, defaults apply
	}

	_ = viper.Unmarshal(&cfg)
}

func runViewer(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug || os.Getenv("DIFFPANE_DEBUG") != "" {
		cleanup, err := log.Init("diffpane.log")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer cleanup()
		log.SetEnabled(true)
		log.SetMinLevel(log.LevelDebug)
	}

	// Bound flags take precedence over config file values only when
	// explicitly set; viper resolves that per key.
	cfg.SimilarityThreshold = viper.GetFloat64("similarity_threshold")
	cfg.View = viper.GetString("view")
	cfg.Wrap = viper.GetString("wrap")
	cfg.NoWordHighlights = viper.GetBool("no_word_highlights")
	cfg.Conceal = viper.GetBool("conceal")
	cfg.Watch = viper.GetBool("watch")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readDiff(path)
	if err != nil {
		return err
	}
	if cfg.Watch && path == "" {
		return fmt.Errorf("--watch requires a file argument")
	}

	applyThemeMode(cfg.Theme.Mode)
	model := diffview.New(optionsFromConfig(cfg)).SetDiff(text)

	p := tea.NewProgram(model, tea.WithAltScreen())

	var watcher *watch.Watcher
	if cfg.Watch {
		watcher, err = watch.New(path, watch.DefaultDebounce)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		changes, err := watcher.Start()
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		go func() {
			for range changes {
				text, err := readDiff(path)
				p.Send(diffview.ReloadMsg{Text: text, Err: err})
			}
		}()
	}

	_, err = p.Run()

	if watcher != nil {
		if stopErr := watcher.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// readDiff loads the diff text from the given file, or from stdin when
// path is empty.
func readDiff(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// applyThemeMode forces adaptive colors onto one background half. An
// empty or unknown mode keeps lipgloss's detected background.
func applyThemeMode(mode string) {
	switch mode {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

// optionsFromConfig translates the file/flag configuration into viewer
// options, including theme color overrides.
func optionsFromConfig(c config.Config) diffview.Options {
	opts := diffview.DefaultOptions()
	if mode, ok := diffview.ParseViewMode(c.View); ok {
		opts.View = mode
	}
	if mode, ok := pane.ParseWrapMode(c.Wrap); ok {
		opts.Wrap = mode
	}
	opts.SimilarityThreshold = c.SimilarityThreshold
	opts.DisableWordHighlights = c.NoWordHighlights
	opts.Conceal = c.Conceal

	for key, hex := range c.Theme.Colors {
		color := lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		switch key {
		case "added_bg":
			opts.AddedBg = color
		case "removed_bg":
			opts.RemovedBg = color
		case "context_bg":
			opts.ContextBg = color
		case "added_sign":
			opts.AddedSign = color
		case "removed_sign":
			opts.RemovedSign = color
		case "line_number_bg":
			opts.LineNumberBg = color
		case "added_word_bg":
			opts.AddedWordBg = color
		case "removed_word_bg":
			opts.RemovedWordBg = color
		}
	}
	return opts
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
