package model

import "time"

// GestureHolds defines how long each gesture must be continuously held
// before the orchestrator acts on it.
type GestureHolds struct {
	OpenPalm          time.Duration
	BothHandsRaised   time.Duration
	HandsCoveringEars time.Duration
	ClenchedFist      time.Duration
	PeaceSign         time.Duration
	PalmsTogether     time.Duration
	ExitSign          time.Duration
	LookingDown       time.Duration
}

// FatigueConfig controls the sliding-window yawn counter.
type FatigueConfig struct {
	WindowSize int // samples kept, window duration x frame rate
	Threshold  int // distinct yawn onsets that trigger an energy break
}

// EscalationConfig controls the progressive nail-biting response.
type EscalationConfig struct {
	Settle        time.Duration // continuous hold before an episode counts
	AnxietyAfter  int           // episode count that flips habit into anxiety
	WarmthLevels  []int         // habit-phase warmth, indexed by episode-1
	AnxietyWarmth int
}

// PostureConfig controls the long-horizon posture monitor.
type PostureConfig struct {
	AlarmAfter time.Duration
	Warmth     int
}

// DistractionConfig controls the looking-down monitor.
type DistractionConfig struct {
	Warmth int
}

// OrchestratorConfig contains runtime settings for the mode arbiter.
type OrchestratorConfig struct {
	Holds       GestureHolds
	Fatigue     FatigueConfig
	NailBiting  EscalationConfig
	Posture     PostureConfig
	Distraction DistractionConfig

	// Warmth applied when breathing mode is entered via the clenched fist.
	FistWarmth int

	IdleResetEnabled  bool
	IdleResetAfter    time.Duration
	IdleCheckInterval time.Duration
}
