package diffview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduler_CoalescesBursts(t *testing.T) {
	s := NewScheduler()

	cmd := s.Request()
	require.NotNil(t, cmd)

	// Further requests while one is queued produce nothing.
	require.Nil(t, s.Request())
	require.Nil(t, s.Request())

	require.True(t, s.Consume())
	require.False(t, s.Consume(), "a consumed rebuild cannot run twice")
}

func TestScheduler_RequestAfterConsume(t *testing.T) {
	s := NewScheduler()

	require.NotNil(t, s.Request())
	require.True(t, s.Consume())
	require.NotNil(t, s.Request(), "queue reopens after the pending rebuild ran")
}

func TestScheduler_WidthDiscrimination(t *testing.T) {
	s := NewScheduler()

	// First real width counts as a change.
	require.NotNil(t, s.RequestForWidth(80))
	require.True(t, s.Consume())
	s.MarkBuilt(80)

	// Same width again: height-only resize, no rebuild.
	require.Nil(t, s.RequestForWidth(80))

	require.NotNil(t, s.RequestForWidth(100))
}

func TestScheduler_LastWidthIsBuiltWidthNotRequested(t *testing.T) {
	s := NewScheduler()

	require.NotNil(t, s.RequestForWidth(80))
	// The rebuild never ran, so 80 was never used; requesting it again
	// coalesces rather than being dropped as a duplicate.
	require.True(t, s.Consume())
	s.MarkBuilt(90)

	require.NotNil(t, s.RequestForWidth(80))
}

func TestScheduler_SyncRebuildCancelsQueued(t *testing.T) {
	s := NewScheduler()

	cmd := s.Request()
	require.NotNil(t, cmd)

	// A synchronous rebuild completes before the queued message arrives.
	s.MarkBuilt(80)

	require.False(t, s.Consume(), "queued rebuild was superseded")
}

func TestScheduler_Destroy(t *testing.T) {
	s := NewScheduler()
	require.NotNil(t, s.Request())

	s.Destroy()
	require.True(t, s.Destroyed())
	require.False(t, s.Consume(), "rebuilds pending at destroy are dropped")
	require.Nil(t, s.Request())
	require.Nil(t, s.RequestForWidth(123))
}

func TestScheduler_CommandYieldsRebuildMsg(t *testing.T) {
	s := NewScheduler()
	cmd := s.Request()
	require.NotNil(t, cmd)
	require.IsType(t, rebuildMsg{}, cmd())
}
