package timers

import "time"

// EpisodeEvent is the result of one escalation-counter observation.
type EpisodeEvent int

const (
	// EpisodeNone: signal absent, or held but not yet past the settle
	// duration.
	EpisodeNone EpisodeEvent = iota
	// EpisodeNew: a fresh episode was just recognized and counted.
	EpisodeNew
	// EpisodeOngoing: the already-counted episode is still being held.
	EpisodeOngoing
)

// EscalationCounter counts discrete episodes of a sustained behavior. An
// episode is one hold-then-release cycle: the signal must stay true past
// the settle duration to count, counts exactly once, and the count
// survives release. Only Reset zeroes it.
type EscalationCounter struct {
	settle    time.Duration
	holdStart time.Time
	holding   bool
	inEpisode bool
	count     int
}

// NewEscalationCounter creates a counter with the given settle duration.
func NewEscalationCounter(settle time.Duration) *EscalationCounter {
	return &EscalationCounter{settle: settle}
}

// Observe records the current frame's value. The settle timer re-arms the
// instant the signal drops, so the next sustained occurrence is a new
// episode.
func (counter *EscalationCounter) Observe(signalTrue bool, now time.Time) EpisodeEvent {
	if !signalTrue {
		counter.holding = false
		counter.inEpisode = false
		return EpisodeNone
	}

	if !counter.holding {
		counter.holding = true
		counter.holdStart = now
		return EpisodeNone
	}

	if now.Sub(counter.holdStart) < counter.settle {
		return EpisodeNone
	}

	if counter.inEpisode {
		return EpisodeOngoing
	}
	counter.inEpisode = true
	counter.count++
	return EpisodeNew
}

// Count returns the number of completed episode recognitions so far.
func (counter *EscalationCounter) Count() int {
	return counter.count
}

// InEpisode reports whether an episode is currently being held.
func (counter *EscalationCounter) InEpisode() bool {
	return counter.inEpisode
}

// Reset zeroes the episode count and clears any in-progress hold.
func (counter *EscalationCounter) Reset() {
	counter.holding = false
	counter.inEpisode = false
	counter.count = 0
}
