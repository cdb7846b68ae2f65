package orchestrator

import (
	"time"

	"zenspace/internal/core/signal"
)

// Mode represents the single currently-active full-attention intervention.
type Mode string

const (
	ModeIdle        Mode = "idle"
	ModeZen         Mode = "zen"
	ModeBreathing   Mode = "breathing"
	ModeQuiet       Mode = "quiet"
	ModeFocus       Mode = "focus"
	ModeEnergyBreak Mode = "energy_break"
)

// EventType defines the type of orchestrator event.
type EventType string

const (
	EventModeChange EventType = "mode_change"
	EventWarning    EventType = "warning"
	EventEpisode    EventType = "episode"
	EventFatigue    EventType = "fatigue"
	EventIdleReset  EventType = "idle_reset"
)

// Event represents an orchestrator update for observers.
type Event struct {
	Type    EventType
	Mode    Mode
	Message string
	Count   int
	Warmth  int
	At      time.Time
}

// Status is a point-in-time view of the arbiter, used for the camera
// window status lines and the tray.
type Status struct {
	Mode               Mode
	Paused             bool
	DistractionWarning bool
	PostureWarning     bool
	PostureIssues      signal.PostureIssues
	YawnCount          int
	NailBitingCount    int
	AnxietyActive      bool
	Warmth             int
}
