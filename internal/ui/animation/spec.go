package animation

import "time"

// Phase is one step of a guided breathing cycle.
type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHoldIn
	PhaseExhale
	PhaseHoldOut
)

// Label returns the on-screen instruction for the phase.
func (phase Phase) Label() string {
	switch phase {
	case PhaseInhale:
		return "Breathe in"
	case PhaseHoldIn:
		return "Hold"
	case PhaseExhale:
		return "Breathe out"
	case PhaseHoldOut:
		return "Hold"
	default:
		return ""
	}
}

// PhaseStep pairs a phase with its duration.
type PhaseStep struct {
	Phase    Phase
	Duration time.Duration
}

// BreathingSpec is one full breathing cycle, repeated until stopped.
type BreathingSpec struct {
	Steps []PhaseStep
}

// BoxBreathing is the 4-4-4-4 pattern.
func BoxBreathing() BreathingSpec {
	return BreathingSpec{Steps: []PhaseStep{
		{PhaseInhale, 4 * time.Second},
		{PhaseHoldIn, 4 * time.Second},
		{PhaseExhale, 4 * time.Second},
		{PhaseHoldOut, 4 * time.Second},
	}}
}

// RelaxBreathing is the 4-7-8 pattern.
func RelaxBreathing() BreathingSpec {
	return BreathingSpec{Steps: []PhaseStep{
		{PhaseInhale, 4 * time.Second},
		{PhaseHoldIn, 7 * time.Second},
		{PhaseExhale, 8 * time.Second},
	}}
}

// EnergizerSpec rotates through movement prompts during an energy break.
type EnergizerSpec struct {
	Prompts  []string
	Interval time.Duration
}

// DefaultEnergizer is the standard energy-break exercise rotation.
func DefaultEnergizer() EnergizerSpec {
	return EnergizerSpec{
		Prompts: []string{
			"Stand up and stretch",
			"Roll your shoulders back",
			"Reach for the ceiling",
			"Shake out your arms",
			"Look away from the screen",
		},
		Interval: 12 * time.Second,
	}
}
