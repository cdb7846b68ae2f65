package timers

import "time"

// ConditionState is the result of one long-horizon observation.
type ConditionState struct {
	StartJustSet bool
	Elapsed      time.Duration
	ShouldAlarm  bool
}

// ConditionTimer tracks continuous sustained-condition duration with a
// long activation threshold. There is no frame-level debounce: the start
// is set on the very first true frame, and a single clean frame cancels
// the entire accumulation. The hysteresis lives in the threshold, not in
// re-arming.
type ConditionTimer struct {
	threshold time.Duration
	start     time.Time
	started   bool
	alarmed   bool
}

// NewConditionTimer creates a timer alarming after threshold of continuous
// condition.
func NewConditionTimer(threshold time.Duration) *ConditionTimer {
	return &ConditionTimer{threshold: threshold}
}

// Observe records the current frame's condition value.
func (timer *ConditionTimer) Observe(conditionTrue bool, now time.Time) ConditionState {
	if !conditionTrue {
		timer.Reset()
		return ConditionState{}
	}

	if !timer.started {
		timer.started = true
		timer.start = now
		return ConditionState{StartJustSet: true}
	}

	elapsed := now.Sub(timer.start)
	if elapsed > timer.threshold {
		timer.alarmed = true
	}
	return ConditionState{
		Elapsed:     elapsed,
		ShouldAlarm: timer.alarmed,
	}
}

// Alarmed reports whether the alarm threshold has been crossed in the
// current accumulation.
func (timer *ConditionTimer) Alarmed() bool {
	return timer.alarmed
}

// Reset clears the accumulation and the alarm.
func (timer *ConditionTimer) Reset() {
	timer.started = false
	timer.start = time.Time{}
	timer.alarmed = false
}
