package timers

import (
	"testing"
	"time"
)

func TestConditionTimerAlarmThreshold(t *testing.T) {
	timer := NewConditionTimer(30 * time.Second)
	start := time.Now()

	state := timer.Observe(true, start)
	if !state.StartJustSet {
		t.Fatal("first true frame must set the start")
	}

	state = timer.Observe(true, start.Add(29900*time.Millisecond))
	if state.ShouldAlarm {
		t.Error("29.9s must not alarm")
	}

	state = timer.Observe(true, start.Add(30100*time.Millisecond))
	if !state.ShouldAlarm {
		t.Error("30.1s must alarm")
	}
	if !timer.Alarmed() {
		t.Error("Alarmed() must track the crossing")
	}

	// Alarm stays up while the condition holds.
	state = timer.Observe(true, start.Add(45*time.Second))
	if !state.ShouldAlarm {
		t.Error("alarm must persist while the condition is true")
	}
}

func TestConditionTimerSingleCleanFrameResets(t *testing.T) {
	timer := NewConditionTimer(30 * time.Second)
	start := time.Now()

	timer.Observe(true, start)
	timer.Observe(true, start.Add(29900*time.Millisecond))

	// One clean frame cancels the whole accumulation.
	state := timer.Observe(false, start.Add(29950*time.Millisecond))
	if state.ShouldAlarm || state.Elapsed != 0 {
		t.Error("clean frame must fully reset")
	}

	state = timer.Observe(true, start.Add(30*time.Second))
	if !state.StartJustSet {
		t.Error("re-detection must start a fresh accumulation")
	}
	state = timer.Observe(true, start.Add(59*time.Second))
	if state.ShouldAlarm {
		t.Error("fresh accumulation must not inherit previous elapsed time")
	}
}

func TestConditionTimerAlarmClearsImmediately(t *testing.T) {
	timer := NewConditionTimer(30 * time.Second)
	start := time.Now()

	timer.Observe(true, start)
	state := timer.Observe(true, start.Add(31*time.Second))
	if !state.ShouldAlarm {
		t.Fatal("expected alarm")
	}

	// No minimum alarm duration.
	state = timer.Observe(false, start.Add(31*time.Second+time.Millisecond))
	if state.ShouldAlarm || timer.Alarmed() {
		t.Error("alarm must clear the instant the condition is false")
	}
}
