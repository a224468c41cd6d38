// Package diffview renders unified-diff text in a terminal UI, either as a
// single interleaved column or as two independently wrapped side-by-side
// columns kept visually synchronized row-for-row.
package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"diffpane/internal/diff"
	"diffpane/internal/log"
	"diffpane/internal/pane"
	"diffpane/internal/styles"
)

const (
	// minSplitWidth is the minimum terminal width for split view. Below
	// it the viewer falls back to unified while remembering the
	// preference.
	minSplitWidth = 80

	// statusBarHeight is the single status line above the panes.
	statusBarHeight = 1

	splitSeparator = "│"
)

// ReloadMsg carries replacement diff text into the viewer, e.g. from the
// file watcher.
type ReloadMsg struct {
	Text string
	Err  error
}

// KeyMap defines the viewer's key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	ToggleView key.Binding
	CycleWrap  key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		Top:        key.NewBinding(key.WithKeys("g", "home")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end")),
		ToggleView: key.NewBinding(key.WithKeys("v")),
		CycleWrap:  key.NewBinding(key.WithKeys("w")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// Model is the diff viewer component state. Row metadata is rebuilt
// wholesale on every trigger; the pane/gutter handles in the cache are
// long-lived and mutated in place.
type Model struct {
	width, height int

	opts Options
	keys KeyMap

	diffText string
	files    []diff.File
	parseErr error

	sched *Scheduler
	cache *ComponentCache
	cfg   diff.BuildConfig

	scroll int
}

// New creates a diff viewer with the given options.
func New(opts Options) Model {
	cfg := diff.BuildConfig{
		SimilarityThreshold:   opts.SimilarityThreshold,
		DisableWordHighlights: opts.DisableWordHighlights,
		Scorer:                diff.NewScorer(),
	}
	return Model{
		opts:  opts.normalize(),
		keys:  DefaultKeyMap(),
		sched: NewScheduler(),
		cache: NewComponentCache(),
		cfg:   cfg,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetDiff replaces the diff text, parses it, and rebuilds synchronously.
// Parse failures switch the viewer into its fail-soft error state; they are
// never returned to the caller.
func (m Model) SetDiff(text string) Model {
	m.diffText = text
	files, err := diff.Parse(text)
	m.files = files
	m.parseErr = err
	if err != nil {
		log.ErrorErr(log.CatParse, "diff parse failed", err)
	} else {
		log.Debug(log.CatParse, "diff parsed", "files", len(files))
	}
	(&m).rebuild()
	return m
}

// SetViewMode switches between unified and split layout. The rebuild runs
// synchronously and immediately regardless of scheduler state: switching
// views must feel instant.
func (m Model) SetViewMode(mode ViewMode) Model {
	m.opts.View = mode
	(&m).rebuild()
	return m
}

// ViewMode returns the preferred view mode (which may be width-constrained;
// see EffectiveViewMode).
func (m Model) ViewMode() ViewMode {
	return m.opts.View
}

// EffectiveViewMode returns the mode actually rendered: split falls back to
// unified on narrow terminals.
func (m Model) EffectiveViewMode() ViewMode {
	if m.opts.View == ViewSplit && m.width > 0 && m.width < minSplitWidth {
		return ViewUnified
	}
	return m.opts.View
}

// SetWrapMode changes the wrap mode. In split view the rebuild goes through
// the scheduler because realignment depends on pane widths; in unified view
// it runs immediately.
func (m Model) SetWrapMode(mode pane.WrapMode) (Model, tea.Cmd) {
	if m.opts.Wrap == mode {
		return m, nil
	}
	m.opts.Wrap = mode
	if m.EffectiveViewMode() == ViewSplit {
		return m, m.sched.Request()
	}
	(&m).rebuild()
	return m, nil
}

// WrapMode returns the active wrap mode.
func (m Model) WrapMode() pane.WrapMode {
	return m.opts.Wrap
}

// ApplyOptions merges an options patch and rebuilds synchronously.
func (m Model) ApplyOptions(p Patch) Model {
	m.opts = m.opts.apply(p)
	(&m).rebuild()
	return m
}

// Options returns a copy of the current options.
func (m Model) Options() Options {
	return m.opts
}

// Destroy marks the viewer destroyed; scheduled rebuilds still in flight
// are dropped when they arrive.
func (m Model) Destroy() {
	m.sched.Destroy()
}

// Err returns the current parse error, nil in the normal state.
func (m Model) Err() error {
	return m.parseErr
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.onResize(msg.Width, msg.Height)

	case rebuildMsg:
		if m.sched.Consume() {
			(&m).rebuild()
		}
		return m, nil

	case ReloadMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatWatch, "diff reload failed", msg.Err)
			return m, nil
		}
		return m.SetDiff(msg.Text), nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

// onResize applies new terminal dimensions. Width changes in split view
// with wrapping enabled go through the scheduler; height changes are a
// derived effect of wrapping and never trigger a rebuild on their own.
func (m Model) onResize(width, height int) (Model, tea.Cmd) {
	first := m.width == 0 && m.height == 0
	prevEffective := m.EffectiveViewMode()
	m.width = width
	m.height = height
	m.applyLayout()

	if first || m.EffectiveViewMode() != prevEffective {
		// Initial layout (the builders ran without a width, so Phase B
		// was skipped) or the width crossed the split fallback boundary.
		(&m).rebuild()
		return m, nil
	}
	if m.EffectiveViewMode() == ViewSplit && m.opts.Wrap != pane.WrapNone {
		return m, m.sched.RequestForWidth(m.paneWidth())
	}
	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Destroy()
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleView):
		if m.opts.View == ViewUnified {
			return m.SetViewMode(ViewSplit), nil
		}
		return m.SetViewMode(ViewUnified), nil
	case key.Matches(msg, m.keys.CycleWrap):
		next := pane.WrapNone
		switch m.opts.Wrap {
		case pane.WrapNone:
			next = pane.WrapChar
		case pane.WrapChar:
			next = pane.WrapWord
		}
		return m.SetWrapMode(next)
	case key.Matches(msg, m.keys.Up):
		return m.scrollBy(-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.scrollBy(1), nil
	case key.Matches(msg, m.keys.PageUp):
		return m.scrollBy(-m.contentHeight()), nil
	case key.Matches(msg, m.keys.PageDown):
		return m.scrollBy(m.contentHeight()), nil
	case key.Matches(msg, m.keys.Top):
		m.scroll = 0
		m.syncScroll()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.scroll = m.maxScroll()
		m.syncScroll()
		return m, nil
	}
	return m, nil
}

func (m Model) scrollBy(delta int) Model {
	m.scroll = min(max(m.scroll+delta, 0), m.maxScroll())
	m.syncScroll()
	return m
}

// maxScroll is bounded by the tallest attached pane.
func (m Model) maxScroll() int {
	total := 0
	for _, slot := range []Slot{SlotLeft, SlotRight, SlotErrorCode} {
		if m.cache.Attached(slot) {
			total = max(total, m.cache.Pane(slot, m.newPane).TotalRows())
		}
	}
	return max(total-m.contentHeight(), 0)
}

// syncScroll pushes the lock-step scroll offset into every attached pane,
// so both split columns move together.
func (m Model) syncScroll() {
	for _, slot := range []Slot{SlotLeft, SlotRight, SlotErrorText, SlotErrorCode} {
		if m.cache.Attached(slot) {
			m.cache.Pane(slot, m.newPane).SetYOffset(m.scroll)
		}
	}
}

func (m Model) contentHeight() int {
	return max(m.height-statusBarHeight, 0)
}

// numberWidth is the gutter digit-column width derived from the largest
// line number the diff can produce. It depends only on the parsed diff,
// never on layout, which keeps pane width computation loop-free.
func (m Model) numberWidth() int {
	maxNum := 0
	for _, f := range m.files {
		for _, h := range f.Hunks {
			maxNum = max(maxNum, h.OldStart+h.OldCount, h.NewStart+h.NewCount)
		}
	}
	return max(len(fmt.Sprintf("%d", maxNum)), 3)
}

func (m Model) gutterWidth() int {
	if m.opts.Conceal {
		return 0
	}
	return m.numberWidth() + 3 // digits, sign, trailing space
}

// paneWidth returns the content width of one pane in the effective view.
func (m Model) paneWidth() int {
	if m.width <= 0 {
		return 0
	}
	if m.EffectiveViewMode() == ViewSplit {
		side := (m.width - lipgloss.Width(splitSeparator)) / 2
		return max(side-m.gutterWidth(), 1)
	}
	return max(m.width-m.gutterWidth(), 1)
}

func (m Model) newPane() *pane.Pane {
	return pane.New(m.opts.paneStyles())
}

func (m Model) newGutter() *pane.Gutter {
	return pane.NewGutter(m.opts.gutterStyles())
}

// applyLayout pushes current dimensions into the attached handles without
// rebuilding row metadata. Resizing reflows a wrapped pane, so each diff
// gutter gets the pane's fresh visual-row map to keep numbers and signs on
// the rows they annotate.
func (m Model) applyLayout() {
	w, h := m.paneWidth(), m.contentHeight()
	for _, slot := range []Slot{SlotLeft, SlotRight, SlotErrorText, SlotErrorCode} {
		if !m.cache.Attached(slot) {
			continue
		}
		p := m.cache.Pane(slot, m.newPane)
		p.SetSize(w, h)
		if slot == SlotLeft || slot == SlotRight {
			m.cache.Gutter(slot, m.newGutter).SetSources(p.LineSources())
		}
	}
}

// rebuild runs the full pipeline: parsed hunks through the block processor
// and view builders into fresh row-metadata maps, pushed into the reused
// pane/gutter handles. Exactly one rebuild runs at a time (the Update loop
// is single-threaded); inputs are read here, at execution time.
func (m *Model) rebuild() {
	if m.sched.Destroyed() {
		return
	}

	if m.parseErr != nil {
		m.buildError()
		m.sched.MarkBuilt(m.paneWidth())
		return
	}

	m.cache.Detach(SlotErrorText)
	m.cache.Detach(SlotErrorCode)

	cfg := m.cfg
	cfg.SimilarityThreshold = m.opts.SimilarityThreshold
	cfg.DisableWordHighlights = m.opts.DisableWordHighlights

	hunks := diff.Hunks(m.files)

	switch m.EffectiveViewMode() {
	case ViewSplit:
		m.buildSplit(hunks, cfg)
	default:
		m.buildUnified(hunks, cfg)
	}

	m.syncScroll()
	m.sched.MarkBuilt(m.paneWidth())
	log.Debug(log.CatBuild, "rebuild complete",
		"view", m.EffectiveViewMode(), "wrap", m.opts.Wrap, "width", m.paneWidth())
}

func (m *Model) buildUnified(hunks []diff.Hunk, cfg diff.BuildConfig) {
	rows := diff.BuildUnified(hunks, cfg)
	meta := diff.DeriveMetadata(rows)

	p := m.cache.Pane(SlotLeft, m.newPane)
	p.SetStyles(m.opts.paneStyles())
	p.SetWrapMode(m.opts.Wrap)
	p.SetSize(m.paneWidth(), m.contentHeight())
	p.SetContent(diff.Contents(rows))
	p.SetMetadata(meta)

	g := m.cache.Gutter(SlotLeft, m.newGutter)
	g.SetStyles(m.opts.gutterStyles())
	g.SetMetadata(meta)
	g.SetSources(p.LineSources())

	m.cache.Attach(SlotLeft)
	m.cache.Detach(SlotRight)
}

// buildSplit is the two-phase split build. Phase A produces two parallel
// row sequences with logical-index parity. Phase B feeds both sides into
// their panes, reads back how many visual rows each logical line occupies,
// and inserts padding so every logical line starts on the same visual row
// in both columns. With no width yet, or wrap disabled, Phase A output is
// final.
func (m *Model) buildSplit(hunks []diff.Hunk, cfg diff.BuildConfig) {
	left, right := diff.BuildSplit(hunks, cfg)

	w, h := m.paneWidth(), m.contentHeight()

	lp := m.cache.Pane(SlotLeft, m.newPane)
	rp := m.cache.Pane(SlotRight, m.newPane)
	for _, p := range []*pane.Pane{lp, rp} {
		p.SetStyles(m.opts.paneStyles())
		p.SetWrapMode(m.opts.Wrap)
		p.SetSize(w, h)
	}
	lp.SetContent(diff.Contents(left))
	rp.SetContent(diff.Contents(right))

	if w > 0 && m.opts.Wrap != pane.WrapNone {
		leftCounts := diff.VisualCounts(lp.LineSources(), len(left))
		rightCounts := diff.VisualCounts(rp.LineSources(), len(right))
		left, right = diff.Realign(left, right, leftCounts, rightCounts)
		lp.SetContent(diff.Contents(left))
		rp.SetContent(diff.Contents(right))
	}

	leftMeta := diff.DeriveMetadata(left)
	rightMeta := diff.DeriveMetadata(right)
	lp.SetMetadata(leftMeta)
	rp.SetMetadata(rightMeta)

	lg := m.cache.Gutter(SlotLeft, m.newGutter)
	rg := m.cache.Gutter(SlotRight, m.newGutter)
	lg.SetStyles(m.opts.gutterStyles())
	rg.SetStyles(m.opts.gutterStyles())
	lg.SetMetadata(leftMeta)
	rg.SetMetadata(rightMeta)
	lg.SetSources(lp.LineSources())
	rg.SetSources(rp.LineSources())

	m.cache.Attach(SlotLeft)
	m.cache.Attach(SlotRight)
}

// buildError shows the fail-soft fallback: an error message plus the raw,
// un-diffed text with no diff coloring. The regular builders are bypassed
// entirely.
func (m *Model) buildError() {
	raw := m.cache.Pane(SlotErrorCode, m.newPane)
	raw.SetStyles(rawStyles())
	raw.SetWrapMode(m.opts.Wrap)
	raw.SetSize(max(m.width, 1), m.contentHeight())
	raw.SetContent(m.diffText)
	raw.SetMetadata(diff.NewRowMetadata())

	msg := m.cache.Pane(SlotErrorText, m.newPane)
	msg.SetStyles(rawStyles())
	msg.SetWrapMode(pane.WrapNone)
	msg.SetSize(max(m.width, 1), 1)
	msg.SetContent(fmt.Sprintf("Cannot render diff: %v", m.parseErr))

	m.cache.Attach(SlotErrorText)
	m.cache.Attach(SlotErrorCode)
	m.cache.Detach(SlotLeft)
	m.cache.Detach(SlotRight)
	m.syncScroll()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	if m.parseErr != nil {
		return m.viewError()
	}
	if len(m.files) == 0 {
		return m.statusLine()
	}

	sections := []string{m.statusLine()}
	if ph := m.placeholder(); ph != "" {
		sections = append(sections, ph)
	}
	if len(diff.Hunks(m.files)) > 0 {
		if m.EffectiveViewMode() == ViewSplit && m.cache.Attached(SlotRight) {
			sections = append(sections, m.viewSplit())
		} else {
			sections = append(sections, m.viewUnified())
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewUnified() string {
	p := m.cache.Pane(SlotLeft, m.newPane)
	if m.opts.Conceal {
		return p.View()
	}
	g := m.cache.Gutter(SlotLeft, m.newGutter)
	return lipgloss.JoinHorizontal(lipgloss.Top, g.View(m.scroll, m.contentHeight()), p.View())
}

func (m Model) viewSplit() string {
	lp := m.cache.Pane(SlotLeft, m.newPane)
	rp := m.cache.Pane(SlotRight, m.newPane)

	sep := separatorColumn(m.contentHeight())

	if m.opts.Conceal {
		return lipgloss.JoinHorizontal(lipgloss.Top, lp.View(), sep, rp.View())
	}

	lg := m.cache.Gutter(SlotLeft, m.newGutter)
	rg := m.cache.Gutter(SlotRight, m.newGutter)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lg.View(m.scroll, m.contentHeight()), lp.View(),
		sep,
		rg.View(m.scroll, m.contentHeight()), rp.View(),
	)
}

func (m Model) viewError() string {
	msgStyle := lipgloss.NewStyle().Foreground(styles.ErrorColor).Bold(true)
	msg := m.cache.Pane(SlotErrorText, m.newPane)
	raw := m.cache.Pane(SlotErrorCode, m.newPane)
	return lipgloss.JoinVertical(lipgloss.Left,
		msgStyle.Render(msg.Content()),
		raw.View(),
	)
}

// statusLine summarizes the loaded diff and active modes.
func (m Model) statusLine() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	header := lipgloss.NewStyle().Foreground(styles.FileHeaderColor)

	var adds, dels int
	names := make([]string, 0, len(m.files))
	for _, f := range m.files {
		adds += f.Additions
		dels += f.Deletions
		if f.NewPath != "" && f.NewPath != "/dev/null" {
			names = append(names, f.NewPath)
		} else if f.OldPath != "" {
			names = append(names, f.OldPath)
		}
	}
	title := "no diff"
	if len(names) > 0 {
		title = strings.Join(names, ", ")
	}

	line := header.Render(title) +
		muted.Render(fmt.Sprintf("  +%d -%d  %s  wrap:%s", adds, dels, m.EffectiveViewMode(), m.opts.Wrap))
	return ansi.Truncate(line, m.width, "…")
}

// placeholder describes files that parsed but produced no hunks to render
// (binary files, pure renames, mode changes). Files with hunks are covered
// by the built rows and skipped here.
func (m Model) placeholder() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	lines := make([]string, 0, len(m.files))
	for _, f := range m.files {
		if len(f.Hunks) > 0 {
			continue
		}
		switch {
		case f.IsBinary:
			lines = append(lines, fmt.Sprintf("%s: binary files differ", f.NewPath))
		case f.IsRenamed:
			lines = append(lines, fmt.Sprintf("%s renamed to %s", f.OldPath, f.NewPath))
		default:
			lines = append(lines, fmt.Sprintf("%s: no textual changes", f.NewPath))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return muted.Render(strings.Join(lines, "\n"))
}

func separatorColumn(height int) string {
	style := lipgloss.NewStyle().Foreground(styles.SeparatorColor)
	rows := make([]string, max(height, 1))
	for i := range rows {
		rows[i] = style.Render(splitSeparator)
	}
	return strings.Join(rows, "\n")
}
