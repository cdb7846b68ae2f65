package orchestrator

import "zenspace/internal/core/signal"

// DimVariant selects the dim overlay's look.
type DimVariant string

const (
	DimDefault DimVariant = "default"
	DimQuiet   DimVariant = "quiet"
	DimFocus   DimVariant = "focus"
)

// BreathingPattern selects the breathing guide cadence.
type BreathingPattern string

const (
	PatternBox   BreathingPattern = "box"
	PatternRelax BreathingPattern = "relax"
)

// Every collaborator call below must be non-blocking, callable from the
// frame-processing goroutine, and idempotent: redundant Deactivate/Stop
// calls and repeated activations are tolerated, most-recent activation
// wins.

// DimOverlay darkens the screen with a centered message.
type DimOverlay interface {
	Activate(message string, variant DimVariant)
	Deactivate()
}

// BreathingOverlay shows the guided breathing exercise.
type BreathingOverlay interface {
	Activate(pattern BreathingPattern)
	Deactivate()
}

// EnergyBreakOverlay is the full-screen fatigue intervention. It may
// self-terminate (user dismissal); the exit callback is registered once at
// wiring time and must be safe to fire from the overlay's own goroutine.
type EnergyBreakOverlay interface {
	Activate()
	Deactivate()
	SetExitCallback(func())
}

// PostureOverlay is the posture alert surface.
type PostureOverlay interface {
	Activate(issues signal.PostureIssues)
	Deactivate()
}

// Warmer controls the ambient screen-warmth layer.
type Warmer interface {
	SetWarmth(level int)
}

// AudioPlayer is a loopable audio source (noise, meditation, beepers).
type AudioPlayer interface {
	Start()
	Stop()
}

// Collaborators bundles every intervention surface the arbiter drives.
type Collaborators struct {
	Dim               DimOverlay
	Breathing         BreathingOverlay
	EnergyBreak       EnergyBreakOverlay
	PostureAlert      PostureOverlay
	Warmth            Warmer
	Meditation        AudioPlayer
	BrownNoise        AudioPlayer
	DistractionBeeper AudioPlayer
	PostureBeeper     AudioPlayer
}
