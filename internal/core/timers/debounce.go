// Package timers contains the stateful time-gating primitives driven once
// per detection frame: the debounce bank, the sliding-window fatigue
// counter, the progressive escalation counter and the long-horizon
// condition timer. None of them block; all waiting is expressed as
// timestamp comparison against the caller-supplied clock.
package timers

import "time"

// Bank tracks hold-start timestamps for a set of named gestures and turns
// raw per-frame booleans into sustained-hold results.
type Bank struct {
	holds  map[string]time.Duration
	starts map[string]time.Time
}

// NewBank creates a bank with per-gesture hold durations.
func NewBank(holds map[string]time.Duration) *Bank {
	copied := make(map[string]time.Duration, len(holds))
	for name, hold := range holds {
		copied[name] = hold
	}
	return &Bank{
		holds:  copied,
		starts: make(map[string]time.Time, len(holds)),
	}
}

// Observe records the current frame's value for the named gesture and
// reports whether the gesture has been held for at least its configured
// duration. The result is level-triggered: it stays true on every frame
// once the threshold is crossed, until the signal drops. Callers needing
// fire-once semantics must guard with their own state.
func (bank *Bank) Observe(name string, signalTrue bool, now time.Time) bool {
	hold, known := bank.holds[name]
	if !known {
		return false
	}
	if !signalTrue {
		delete(bank.starts, name)
		return false
	}
	start, holding := bank.starts[name]
	if !holding {
		bank.starts[name] = now
		return false
	}
	return now.Sub(start) >= hold
}

// Clear drops the hold-start for the named gesture, forcing it to be
// released and re-asserted before it can fire again.
func (bank *Bank) Clear(name string) {
	delete(bank.starts, name)
}

// Holding reports whether the named gesture currently has a hold-start.
func (bank *Bank) Holding(name string) bool {
	_, holding := bank.starts[name]
	return holding
}

// Reset clears every hold-start.
func (bank *Bank) Reset() {
	bank.starts = make(map[string]time.Time, len(bank.holds))
}
