// Package sequencer turns wall-clock timestamps into strictly ordered,
// collision-free message timestamps, one clock per channel.
package sequencer

import (
	"sync"
	"time"
)

const (
	// granularity is the resolution of assigned timestamps. Two
	// messages in the same channel always differ by at least one step.
	granularity = time.Millisecond

	// maxDrift bounds how far the synthetic clock may run ahead of the
	// latest wall clock the channel has observed before posts are
	// dropped. At 1ms granularity this caps sustained throughput per
	// channel around ten messages per second.
	maxDrift = 100 * time.Millisecond
)

// channelState is the synthetic clock of one channel: the last
// assigned timestamp and the latest wall clock seen so far. Drift is
// measured against the latter, so a caller whose clock jumped backward
// does not get its post rejected for lag it never caused.
type channelState struct {
	last    time.Time
	maxSeen time.Time
}

// Sequencer holds the clock state per channel. State is process-local
// and never expires; channel cardinality is bounded by active
// conversations and groups.
//
// Sequencer is safe for concurrent use. The read-then-commit step is
// atomic per call, so two concurrent posts to the same channel can
// never advance from the same snapshot.
type Sequencer struct {
	mu       sync.Mutex
	channels map[string]channelState
}

func New() *Sequencer {
	return &Sequencer{channels: make(map[string]channelState)}
}

// Next assigns the timestamp for the next message in the channel.
//
// The candidate is now, or one step past the previous assignment when
// the wall clock has not advanced (or went backward). Successive
// accepted results strictly increase. When the candidate would drift
// more than maxDrift ahead of the latest observed wall clock, the
// message is rejected and the channel state is left untouched.
func (s *Sequencer) Next(channelID string, now time.Time) (time.Time, bool) {
	now = now.Truncate(granularity)

	s.mu.Lock()
	defer s.mu.Unlock()

	state, seen := s.channels[channelID]
	latest := now
	if seen && state.maxSeen.After(latest) {
		latest = state.maxSeen
	}
	candidate := now
	if seen && !now.After(state.last) {
		candidate = state.last.Add(granularity)
	}
	if candidate.After(latest.Add(maxDrift)) {
		return time.Time{}, false
	}
	s.channels[channelID] = channelState{last: candidate, maxSeen: latest}
	return candidate, true
}
