package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSequencer_QuietChannelFollowsClock(t *testing.T) {
	req := require.New(t)
	seq := New()
	now := time.UnixMilli(1_000_000).UTC()

	assigned, ok := seq.Next("grp_7", now)
	req.True(ok)
	req.Equal(now, assigned)

	later := now.Add(50 * time.Millisecond)
	assigned, ok = seq.Next("grp_7", later)
	req.True(ok)
	req.Equal(later, assigned)
}

func TestSequencer_SameMillisecondSteps(t *testing.T) {
	req := require.New(t)
	seq := New()
	now := time.UnixMilli(1_000).UTC()

	// Three posts inside the same wall-clock millisecond, the third
	// with a clock that went backward.
	first, ok := seq.Next("grp_7", now)
	req.True(ok)
	second, ok := seq.Next("grp_7", now)
	req.True(ok)
	third, ok := seq.Next("grp_7", now.Add(-100*time.Millisecond))
	req.True(ok)

	req.Equal(time.UnixMilli(1_000).UTC(), first)
	req.Equal(time.UnixMilli(1_001).UTC(), second)
	req.Equal(time.UnixMilli(1_002).UTC(), third)
}

func TestSequencer_DropBeyondDrift(t *testing.T) {
	req := require.New(t)
	seq := New()
	now := time.UnixMilli(1_000).UTC()

	var last time.Time
	// Burst until the synthetic clock reaches the drift ceiling. The
	// first assignment is now itself, then one step each, so exactly
	// 101 posts fit within 100ms of drift.
	for i := 0; i < 101; i++ {
		assigned, ok := seq.Next("grp_7", now)
		req.True(ok)
		req.True(assigned.After(last))
		last = assigned
	}

	_, ok := seq.Next("grp_7", now)
	req.False(ok)

	// The rejected post must not advance the channel: once real time
	// catches up past the ceiling, assignments resume from there.
	resumed, ok := seq.Next("grp_7", now.Add(200*time.Millisecond))
	req.True(ok)
	req.Equal(now.Add(200*time.Millisecond), resumed)
}

func TestSequencer_DriftMeasuredAgainstLatestObservedClock(t *testing.T) {
	req := require.New(t)
	seq := New()
	now := time.UnixMilli(1_000).UTC()

	// Two posts at t=1000 leave the synthetic clock at 1001.
	_, ok := seq.Next("grp_7", now)
	req.True(ok)
	_, ok = seq.Next("grp_7", now)
	req.True(ok)

	// A caller whose clock lags far behind still gets the next step:
	// drift is judged against the latest clock the channel has seen
	// (1000), not the lagging caller's 500.
	assigned, ok := seq.Next("grp_7", now.Add(-500*time.Millisecond))
	req.True(ok)
	req.Equal(time.UnixMilli(1_002).UTC(), assigned)

	// The ceiling itself is unchanged: stepping 100ms past the latest
	// observed clock is the last accepted post.
	for i := 0; i < 97; i++ {
		_, ok = seq.Next("grp_7", now)
		req.True(ok)
	}
	assigned, ok = seq.Next("grp_7", now)
	req.True(ok)
	req.Equal(time.UnixMilli(1_100).UTC(), assigned)
	_, ok = seq.Next("grp_7", now)
	req.False(ok)
}

func TestSequencer_ChannelsAreIndependent(t *testing.T) {
	req := require.New(t)
	seq := New()
	now := time.UnixMilli(5_000).UTC()

	a1, ok := seq.Next("grp_7", now)
	req.True(ok)
	b1, ok := seq.Next("grp_8", now)
	req.True(ok)

	// Both channels get the raw wall clock, no cross-channel stepping.
	req.Equal(a1, b1)
}

func TestSequencer_TruncatesSubMillisecond(t *testing.T) {
	req := require.New(t)
	seq := New()
	now := time.UnixMilli(1_000).Add(700 * time.Microsecond).UTC()

	assigned, ok := seq.Next("grp_7", now)
	req.True(ok)
	req.Equal(time.UnixMilli(1_000).UTC(), assigned)
}
