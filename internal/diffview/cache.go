package diffview

import (
	"diffpane/internal/pane"
)

// Slot identifies a long-lived component position in the viewer.
type Slot string

const (
	SlotLeft      Slot = "left"
	SlotRight     Slot = "right"
	SlotErrorText Slot = "error-text"
	SlotErrorCode Slot = "error-code"
)

// ComponentCache retains pane and gutter instances across rebuilds. Handles
// are mutated in place instead of recreated, preserving whatever transient
// state they hold (scroll offset). An attached flag tracks membership in
// the visible layout so a handle can be detached on a view-mode switch and
// reattached later without being rebuilt.
type ComponentCache struct {
	panes    map[Slot]*pane.Pane
	gutters  map[Slot]*pane.Gutter
	attached map[Slot]bool
}

// NewComponentCache returns an empty cache.
func NewComponentCache() *ComponentCache {
	return &ComponentCache{
		panes:    make(map[Slot]*pane.Pane),
		gutters:  make(map[Slot]*pane.Gutter),
		attached: make(map[Slot]bool),
	}
}

// Pane returns the cached pane for the slot, creating it via factory on
// first use.
func (c *ComponentCache) Pane(slot Slot, factory func() *pane.Pane) *pane.Pane {
	if p, ok := c.panes[slot]; ok {
		return p
	}
	p := factory()
	c.panes[slot] = p
	return p
}

// Gutter returns the cached gutter for the slot, creating it via factory on
// first use.
func (c *ComponentCache) Gutter(slot Slot, factory func() *pane.Gutter) *pane.Gutter {
	if g, ok := c.gutters[slot]; ok {
		return g
	}
	g := factory()
	c.gutters[slot] = g
	return g
}

// Attach marks a slot as part of the visible layout.
func (c *ComponentCache) Attach(slot Slot) {
	c.attached[slot] = true
}

// Detach removes a slot from the visible layout without destroying its
// handle.
func (c *ComponentCache) Detach(slot Slot) {
	c.attached[slot] = false
}

// Attached reports whether a slot is part of the visible layout.
func (c *ComponentCache) Attached(slot Slot) bool {
	return c.attached[slot]
}
