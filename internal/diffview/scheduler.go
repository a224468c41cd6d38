package diffview

import (
	tea "github.com/charmbracelet/bubbletea"

	"diffpane/internal/log"
)

// rebuildMsg is the deferred hop that coalesces rebuild triggers. Bursts of
// triggers inside one Update cycle produce at most one queued message; the
// rebuild reads its inputs when it executes, so the last write wins.
type rebuildMsg struct{}

// Scheduler coalesces rebuild triggers into a single deferred rebuild and
// tells genuine input changes (width) apart from derived effects (height).
// The bubbletea Update loop is single-threaded, so a plain pending flag is
// the whole mutual-exclusion story.
type Scheduler struct {
	pending   bool
	destroyed bool

	// lastWidth is the pane width last used to run a rebuild, not the
	// current width. Comparing against it keeps height-only resizes (a
	// downstream consequence of wrapping) from re-triggering rebuilds.
	lastWidth int
}

// NewScheduler returns a scheduler that treats the first real width as a
// change.
func NewScheduler() *Scheduler {
	return &Scheduler{lastWidth: -1}
}

// Request schedules a rebuild. Redundant requests while one is queued are
// dropped; requests on a destroyed owner return nil.
func (s *Scheduler) Request() tea.Cmd {
	if s.destroyed {
		log.Debug(log.CatSched, "rebuild request dropped, destroyed")
		return nil
	}
	if s.pending {
		log.Debug(log.CatSched, "rebuild request coalesced")
		return nil
	}
	s.pending = true
	return func() tea.Msg { return rebuildMsg{} }
}

// RequestForWidth schedules a rebuild only when width differs from the
// width last used to rebuild. Height is deliberately not an input here.
func (s *Scheduler) RequestForWidth(width int) tea.Cmd {
	if width == s.lastWidth {
		return nil
	}
	return s.Request()
}

// Consume acknowledges a queued rebuildMsg. It reports whether the rebuild
// should actually run: false when the owner was destroyed or the pending
// flag was already cleared by a synchronous rebuild.
func (s *Scheduler) Consume() bool {
	if s.destroyed || !s.pending {
		return false
	}
	s.pending = false
	return true
}

// MarkBuilt records the width a completed rebuild used.
func (s *Scheduler) MarkBuilt(width int) {
	s.lastWidth = width
	s.pending = false
}

// Destroy marks the owner destroyed; queued rebuilds are dropped on arrival.
func (s *Scheduler) Destroy() {
	s.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (s *Scheduler) Destroyed() bool {
	return s.destroyed
}
