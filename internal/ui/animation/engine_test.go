package animation

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestStartBreathingCyclesPhases(t *testing.T) {
	spec := BreathingSpec{Steps: []PhaseStep{
		{PhaseInhale, 5 * time.Millisecond},
		{PhaseExhale, 5 * time.Millisecond},
	}}

	var mu sync.Mutex
	var seen []Phase
	engine := New()
	engine.StartBreathing(context.Background(), spec, func(step PhaseStep) {
		mu.Lock()
		seen = append(seen, step.Phase)
		mu.Unlock()
	}, nil)

	time.Sleep(40 * time.Millisecond)
	engine.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) < 4 {
		t.Fatalf("saw %d phase starts, want at least two full cycles", len(seen))
	}
	for i, phase := range seen {
		want := PhaseInhale
		if i%2 == 1 {
			want = PhaseExhale
		}
		if phase != want {
			t.Errorf("phase %d = %v, want %v", i, phase, want)
		}
	}
}

func TestStartEnergizerRotatesPrompts(t *testing.T) {
	spec := EnergizerSpec{Prompts: []string{"a", "b"}, Interval: 5 * time.Millisecond}

	var mu sync.Mutex
	var seen []string
	engine := New()
	engine.StartEnergizer(context.Background(), spec, func(prompt string) {
		mu.Lock()
		seen = append(seen, prompt)
		mu.Unlock()
	})

	time.Sleep(30 * time.Millisecond)
	engine.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) < 3 {
		t.Fatalf("saw %d prompts, want wrap-around", len(seen))
	}
	if seen[0] != "a" || seen[1] != "b" || seen[2] != "a" {
		t.Errorf("prompt order = %v", seen[:3])
	}
}

func TestStartSupersedesPreviousSequence(t *testing.T) {
	var mu sync.Mutex
	counts := map[string]int{}
	record := func(name string) func(string) {
		return func(string) {
			mu.Lock()
			counts[name]++
			mu.Unlock()
		}
	}

	engine := New()
	engine.StartEnergizer(context.Background(), EnergizerSpec{Prompts: []string{"x"}, Interval: 2 * time.Millisecond}, record("first"))
	time.Sleep(10 * time.Millisecond)
	engine.StartEnergizer(context.Background(), EnergizerSpec{Prompts: []string{"y"}, Interval: 2 * time.Millisecond}, record("second"))
	time.Sleep(10 * time.Millisecond)

	mu.Lock()
	firstAt := counts["first"]
	mu.Unlock()
	time.Sleep(15 * time.Millisecond)
	engine.Stop()

	mu.Lock()
	defer mu.Unlock()
	if counts["second"] == 0 {
		t.Error("second sequence never ran")
	}
	if counts["first"] > firstAt+1 {
		t.Errorf("first sequence kept running after being superseded: %d -> %d", firstAt, counts["first"])
	}
}

func TestStopIsIdempotent(t *testing.T) {
	engine := New()
	engine.Stop()
	engine.Stop()
}
