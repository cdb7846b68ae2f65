package preferences

import (
	"time"

	"zenspace/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	OpenPalmHold      time.Duration
	BothHandsHold     time.Duration
	CoverEarsHold     time.Duration
	ClenchedFistHold  time.Duration
	PeaceSignHold     time.Duration
	PalmsTogetherHold time.Duration
	ExitSignHold      time.Duration
	LookingDownHold   time.Duration

	YawnWindow    time.Duration
	YawnThreshold int

	NailBitingSettle    time.Duration
	NailBitingThreshold int

	PostureAlarmAfter time.Duration

	OverlayOpacity float64

	CameraDevice   int
	DetectorScript string
	PythonBinary   string

	IdleEnabled bool
	Autostart   bool
	LogLevel    string
}

// DefaultSettings returns the standard ZenSpace configuration.
func DefaultSettings() Settings {
	return Settings{
		OpenPalmHold:      2 * time.Second,
		BothHandsHold:     2 * time.Second,
		CoverEarsHold:     time.Second,
		ClenchedFistHold:  3 * time.Second,
		PeaceSignHold:     2 * time.Second,
		PalmsTogetherHold: 2 * time.Second,
		ExitSignHold:      1500 * time.Millisecond,
		LookingDownHold:   3 * time.Second,

		YawnWindow:    25 * time.Second,
		YawnThreshold: 5,

		NailBitingSettle:    2 * time.Second,
		NailBitingThreshold: 6,

		PostureAlarmAfter: 30 * time.Second,

		OverlayOpacity: 0.85,

		CameraDevice:   0,
		DetectorScript: "scripts/detector.py",
		PythonBinary:   "python3",

		IdleEnabled: true,
		Autostart:   false,
		LogLevel:    "info",
	}
}

// frameRate is the assumed detection rate used to size the yawn window in
// samples.
const frameRate = 30

// OrchestratorConfig converts settings into the arbiter configuration.
func (settings Settings) OrchestratorConfig() model.OrchestratorConfig {
	return model.OrchestratorConfig{
		Holds: model.GestureHolds{
			OpenPalm:          settings.OpenPalmHold,
			BothHandsRaised:   settings.BothHandsHold,
			HandsCoveringEars: settings.CoverEarsHold,
			ClenchedFist:      settings.ClenchedFistHold,
			PeaceSign:         settings.PeaceSignHold,
			PalmsTogether:     settings.PalmsTogetherHold,
			ExitSign:          settings.ExitSignHold,
			LookingDown:       settings.LookingDownHold,
		},
		Fatigue: model.FatigueConfig{
			WindowSize: int(settings.YawnWindow.Seconds() * frameRate),
			Threshold:  settings.YawnThreshold,
		},
		NailBiting: model.EscalationConfig{
			Settle:        settings.NailBitingSettle,
			AnxietyAfter:  settings.NailBitingThreshold,
			WarmthLevels:  []int{10, 20, 30, 40, 50},
			AnxietyWarmth: 70,
		},
		Posture: model.PostureConfig{
			AlarmAfter: settings.PostureAlarmAfter,
			Warmth:     50,
		},
		Distraction: model.DistractionConfig{Warmth: 40},
		FistWarmth:  60,

		IdleResetEnabled:  settings.IdleEnabled,
		IdleResetAfter:    5 * time.Minute,
		IdleCheckInterval: 5 * time.Second,
	}
}
