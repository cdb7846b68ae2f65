package timers

import "testing"

func TestFatigueWindowDistinctOnsets(t *testing.T) {
	window := NewFatigueWindow(750, 5)

	// Five separate yawns, each three frames long with gaps between.
	for yawn := 0; yawn < 5; yawn++ {
		for index := 0; index < 3; index++ {
			window.Update(true)
		}
		for index := 0; index < 10; index++ {
			window.Update(false)
		}
	}

	if got := window.Count(); got != 5 {
		t.Fatalf("Count() = %d, want 5", got)
	}
	if !window.Triggered() {
		t.Fatal("expected trigger at threshold")
	}

	window.Reset()
	if window.Count() != 0 || window.Triggered() {
		t.Error("Reset() must zero the count and clear the trigger")
	}
	if window.Len() != 0 {
		t.Error("Reset() must clear the sample window")
	}
}

func TestFatigueWindowLongYawnCountsOnce(t *testing.T) {
	window := NewFatigueWindow(750, 5)

	for index := 0; index < 750; index++ {
		window.Update(true)
	}

	if got := window.Count(); got != 1 {
		t.Errorf("continuously-true signal counted %d times, want 1", got)
	}
	if window.Triggered() {
		t.Error("a single long yawn must not trigger")
	}
}

func TestFatigueWindowCountSurvivesEviction(t *testing.T) {
	// The ring bounds the observation horizon, not the count: onsets do
	// not expire individually.
	window := NewFatigueWindow(10, 5)

	for yawn := 0; yawn < 3; yawn++ {
		window.Update(true)
		window.Update(false)
	}
	for index := 0; index < 50; index++ {
		window.Update(false)
	}

	if got := window.Count(); got != 3 {
		t.Errorf("Count() = %d after eviction, want 3", got)
	}
	if window.Len() != 10 {
		t.Errorf("Len() = %d, want capacity 10", window.Len())
	}
}
