package timers

import (
	"testing"
	"time"
)

const frame = time.Second / 30

func TestBankHoldThreshold(t *testing.T) {
	tests := []struct {
		name      string
		hold      time.Duration
		frames    int
		wantFired bool
	}{
		{name: "just under hold never fires", hold: 2 * time.Second, frames: 59, wantFired: false},
		{name: "boundary frame fires", hold: 2 * time.Second, frames: 61, wantFired: true},
		{name: "well past hold fires", hold: 2 * time.Second, frames: 90, wantFired: true},
		{name: "short hold", hold: time.Second, frames: 31, wantFired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := NewBank(map[string]time.Duration{"open_palm": tt.hold})
			start := time.Now()
			fired := false
			for index := 0; index < tt.frames; index++ {
				fired = bank.Observe("open_palm", true, start.Add(time.Duration(index)*time.Second/30))
			}
			if fired != tt.wantFired {
				t.Errorf("Observe() after %d frames = %v, want %v", tt.frames, fired, tt.wantFired)
			}
		})
	}
}

func TestBankLevelTriggeredWhileHeld(t *testing.T) {
	bank := NewBank(map[string]time.Duration{"peace_sign": time.Second})
	start := time.Now()

	bank.Observe("peace_sign", true, start)
	for index := 1; index <= 60; index++ {
		fired := bank.Observe("peace_sign", true, start.Add(time.Duration(index)*time.Second/30))
		crossed := time.Duration(index)*time.Second/30 >= time.Second
		if fired != crossed {
			t.Fatalf("frame %d: fired = %v, want %v", index, fired, crossed)
		}
	}
}

func TestBankDropClearsHold(t *testing.T) {
	bank := NewBank(map[string]time.Duration{"ok_sign": time.Second})
	start := time.Now()

	bank.Observe("ok_sign", true, start)
	if !bank.Holding("ok_sign") {
		t.Fatal("expected hold-start after first true frame")
	}
	if fired := bank.Observe("ok_sign", false, start.Add(2*time.Second)); fired {
		t.Error("false signal must not fire")
	}
	if bank.Holding("ok_sign") {
		t.Error("false signal must clear the hold-start")
	}

	// Re-asserting starts a fresh hold.
	if fired := bank.Observe("ok_sign", true, start.Add(3*time.Second)); fired {
		t.Error("first frame of a new hold must not fire")
	}
}

func TestBankClearForcesReassert(t *testing.T) {
	bank := NewBank(map[string]time.Duration{"ok_sign": time.Second})
	start := time.Now()

	bank.Observe("ok_sign", true, start)
	if !bank.Observe("ok_sign", true, start.Add(2*time.Second)) {
		t.Fatal("expected fire past hold")
	}
	bank.Clear("ok_sign")

	// Still held: the cleared slot re-arms instead of firing.
	if bank.Observe("ok_sign", true, start.Add(2*time.Second+frame)) {
		t.Error("cleared gesture must not fire while continuously held")
	}
}

func TestBankUnknownGesture(t *testing.T) {
	bank := NewBank(nil)
	if bank.Observe("unknown", true, time.Now()) {
		t.Error("unconfigured gesture must never fire")
	}
}
