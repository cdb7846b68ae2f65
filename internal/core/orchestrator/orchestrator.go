// Package orchestrator contains the mode arbiter: the per-frame entry
// point that turns classified gesture signals into interventions. It owns
// every timer and counter, enforces the priority and mutual-exclusion
// policy, and is the only component allowed to drive the intervention
// collaborators.
package orchestrator

import (
	"errors"
	"sync"
	"time"

	"zenspace/internal/core/model"
	"zenspace/internal/core/signal"
	"zenspace/internal/core/timers"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Debounce slot names, one per tracked gesture.
const (
	gestureOpenPalm          = "open_palm"
	gestureBothHandsRaised   = "both_hands_raised"
	gestureHandsCoveringEars = "hands_covering_ears"
	gestureClenchedFist      = "clenched_fist"
	gesturePeaceSign         = "peace_sign"
	gesturePalmsTogether     = "palms_together"
	gestureExitSign          = "ok_sign"
	gestureLookingDown       = "looking_down"
)

// warmthOwner records which rule last set the warmth layer, so release
// paths only clear warmth they applied themselves.
type warmthOwner int

const (
	ownerNone warmthOwner = iota
	ownerMode
	ownerHabit
	ownerAnxiety
	ownerDistraction
	ownerPosture
)

// Orchestrator is the mode arbiter. All internal state is owned
// exclusively by it and mutated only inside ProcessFrame (and the
// self-exit drain, which runs under the same lock).
type Orchestrator struct {
	mu     sync.Mutex
	config model.OrchestratorConfig
	collab Collaborators

	bank       *timers.Bank
	fatigue    *timers.FatigueWindow
	nailBiting *timers.EscalationCounter
	posture    *timers.ConditionTimer

	mode               Mode
	paused             bool
	anxietyActive      bool
	distractionWarning bool
	postureWarning     bool
	postureIssues      signal.PostureIssues
	warmth             int
	warmthBy           warmthOwner

	idleChecker   IdleChecker
	lastIdleCheck time.Time

	selfExit chan struct{}
	events   []chan Event
}

// New creates an orchestrator with empty timer state.
func New(config model.OrchestratorConfig, collab Collaborators) *Orchestrator {
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	holds := map[string]time.Duration{
		gestureOpenPalm:          config.Holds.OpenPalm,
		gestureBothHandsRaised:   config.Holds.BothHandsRaised,
		gestureHandsCoveringEars: config.Holds.HandsCoveringEars,
		gestureClenchedFist:      config.Holds.ClenchedFist,
		gesturePeaceSign:         config.Holds.PeaceSign,
		gesturePalmsTogether:     config.Holds.PalmsTogether,
		gestureExitSign:          config.Holds.ExitSign,
		gestureLookingDown:       config.Holds.LookingDown,
	}
	return &Orchestrator{
		config:     config,
		collab:     collab,
		bank:       timers.NewBank(holds),
		fatigue:    timers.NewFatigueWindow(config.Fatigue.WindowSize, config.Fatigue.Threshold),
		nailBiting: timers.NewEscalationCounter(config.NailBiting.Settle),
		posture:    timers.NewConditionTimer(config.Posture.AlarmAfter),
		mode:       ModeIdle,
		selfExit:   make(chan struct{}, 1),
	}
}

// SetIdleChecker injects an idle checker used to reset the passive
// monitors when the user walks away.
func (orch *Orchestrator) SetIdleChecker(checker IdleChecker) {
	orch.mu.Lock()
	defer orch.mu.Unlock()
	orch.idleChecker = checker
}

// Subscribe registers a new observer channel.
func (orch *Orchestrator) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	orch.mu.Lock()
	orch.events = append(orch.events, ch)
	orch.mu.Unlock()
	return ch
}

// Stop closes observer channels. The orchestrator itself has no goroutine
// to stop; it only reacts to ProcessFrame calls.
func (orch *Orchestrator) Stop() {
	orch.mu.Lock()
	events := orch.events
	orch.events = nil
	orch.mu.Unlock()
	for _, ch := range events {
		close(ch)
	}
}

// Pause suspends gesture processing without tearing anything down.
func (orch *Orchestrator) Pause() {
	orch.mu.Lock()
	defer orch.mu.Unlock()
	orch.paused = true
}

// Resume re-enables gesture processing.
func (orch *Orchestrator) Resume() {
	orch.mu.Lock()
	defer orch.mu.Unlock()
	orch.paused = false
}

// Status returns a point-in-time view for status display.
func (orch *Orchestrator) Status() Status {
	orch.mu.Lock()
	defer orch.mu.Unlock()
	return Status{
		Mode:               orch.mode,
		Paused:             orch.paused,
		DistractionWarning: orch.distractionWarning,
		PostureWarning:     orch.postureWarning,
		PostureIssues:      orch.postureIssues,
		YawnCount:          orch.fatigue.Count(),
		NailBitingCount:    orch.nailBiting.Count(),
		AnxietyActive:      orch.anxietyActive,
		Warmth:             orch.warmth,
	}
}

// ExitAllModes performs the global exit: every mode and warning is
// cleared, every collaborator stopped, the escalation counter zeroed.
// Exposed for the tray menu; the OK-sign gesture goes through the same
// path.
func (orch *Orchestrator) ExitAllModes() {
	orch.mu.Lock()
	defer orch.mu.Unlock()
	orch.exitAllLocked(time.Now())
}

// OnEnergyBreakSelfExit is the callback registered with the energy-break
// overlay. It may fire from the overlay's goroutine at any point relative
// to frame processing; the notification is queued and applied inside the
// next ProcessFrame, under the same lock as all other state mutation.
// Duplicate notifications are harmless.
func (orch *Orchestrator) OnEnergyBreakSelfExit() {
	select {
	case orch.selfExit <- struct{}{}:
	default:
	}
}

// ProcessFrame is the single per-frame entry point. Evaluation order is
// the priority order: fatigue, global exit, nail-biting escalation,
// mode-entry gestures, passive monitors. If two mode-entry gestures cross
// their hold thresholds on the same frame, the one evaluated first wins
// and the other fires only after its signal drops and re-asserts.
func (orch *Orchestrator) ProcessFrame(snap signal.Snapshot, now time.Time) {
	orch.mu.Lock()
	defer orch.mu.Unlock()

	orch.drainSelfExitLocked(now)
	if orch.paused {
		return
	}
	orch.handleIdleCheckLocked(now)

	// Fatigue is evaluated even while other modes are active.
	orch.fatigue.Update(snap.Yawn)
	if orch.fatigue.Triggered() && orch.mode != ModeEnergyBreak {
		orch.enterEnergyBreakLocked(now)
	}

	// During an energy break only the global exit gesture is evaluated;
	// everything else is suspended.
	if orch.mode == ModeEnergyBreak {
		if orch.bank.Observe(gestureExitSign, snap.OKSign, now) {
			orch.exitAllLocked(now)
		}
		return
	}

	if orch.bank.Observe(gestureExitSign, snap.OKSign, now) {
		orch.exitAllLocked(now)
	}

	orch.observeNailBitingLocked(snap, now)

	// Mode entry requires Idle, and a hand near the face suppresses all
	// hand-shape classifiers for the frame.
	if orch.mode == ModeIdle && !snap.FingersNearMouth {
		orch.evaluateModeEntryLocked(snap, now)
	}

	orch.observeDistractionLocked(snap, now)
	orch.observePostureLocked(snap, now)
}

func (orch *Orchestrator) drainSelfExitLocked(now time.Time) {
	for {
		select {
		case <-orch.selfExit:
			if orch.mode != ModeEnergyBreak {
				continue
			}
			orch.mode = ModeIdle
			orch.collab.EnergyBreak.Deactivate()
			orch.fatigue.Reset()
			orch.emitLocked(Event{Type: EventModeChange, Mode: ModeIdle, Message: "energy break dismissed", At: now})
		default:
			return
		}
	}
}

func (orch *Orchestrator) handleIdleCheckLocked(now time.Time) {
	if !orch.config.IdleResetEnabled || orch.idleChecker == nil {
		return
	}
	if !orch.lastIdleCheck.IsZero() && now.Sub(orch.lastIdleCheck) < orch.config.IdleCheckInterval {
		return
	}
	orch.lastIdleCheck = now

	idleDuration, err := orch.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			orch.config.IdleResetEnabled = false
		}
		return
	}
	if idleDuration < orch.config.IdleResetAfter {
		return
	}

	// User away from the desk: monitor accumulations are stale.
	orch.posture.Reset()
	orch.fatigue.Reset()
	orch.bank.Reset()
	orch.clearDistractionLocked(now)
	orch.clearPostureWarningLocked(now)
	orch.emitLocked(Event{Type: EventIdleReset, Mode: orch.mode, Message: "idle reset", At: now})
}

func (orch *Orchestrator) enterEnergyBreakLocked(now time.Time) {
	orch.deactivateModeLocked()
	orch.mode = ModeEnergyBreak
	orch.collab.EnergyBreak.Activate()
	orch.fatigue.Reset()
	orch.emitLocked(Event{Type: EventFatigue, Mode: ModeEnergyBreak, Message: "fatigue alert", At: now})
	orch.emitLocked(Event{Type: EventModeChange, Mode: ModeEnergyBreak, At: now})
}

func (orch *Orchestrator) observeNailBitingLocked(snap signal.Snapshot, now time.Time) {
	event := orch.nailBiting.Observe(snap.FingersNearMouth, now)
	if event == timers.EpisodeNew {
		orch.handleEpisodeLocked(now)
		return
	}

	// Hand moved away: release habit warmth unless the sticky anxiety
	// intervention holds it up.
	if !snap.FingersNearMouth && !orch.anxietyActive && orch.warmthBy == ownerHabit {
		orch.setWarmthLocked(0, ownerNone)
	}
}

func (orch *Orchestrator) handleEpisodeLocked(now time.Time) {
	count := orch.nailBiting.Count()
	cfg := orch.config.NailBiting

	if count < cfg.AnxietyAfter {
		// Habit phase: graded warmth only, no breathing.
		index := count - 1
		if index >= len(cfg.WarmthLevels) {
			index = len(cfg.WarmthLevels) - 1
		}
		if index >= 0 {
			orch.setWarmthLocked(cfg.WarmthLevels[index], ownerHabit)
		}
		orch.emitLocked(Event{Type: EventEpisode, Mode: orch.mode, Count: count, Warmth: orch.warmth, Message: "habit episode", At: now})
		return
	}

	// Anxiety phase: sustained breathing guide, released only by the
	// global exit (not by gesture release).
	if !orch.anxietyActive {
		orch.anxietyActive = true
		if orch.mode != ModeIdle && orch.mode != ModeBreathing {
			orch.deactivateModeLocked()
		}
		orch.mode = ModeBreathing
		orch.collab.Breathing.Activate(PatternBox)
		orch.collab.Meditation.Start()
		orch.emitLocked(Event{Type: EventModeChange, Mode: ModeBreathing, Message: "anxiety intervention", At: now})
	}
	orch.setWarmthLocked(cfg.AnxietyWarmth, ownerAnxiety)
	orch.emitLocked(Event{Type: EventEpisode, Mode: orch.mode, Count: count, Warmth: orch.warmth, Message: "anxiety episode", At: now})
}

func (orch *Orchestrator) evaluateModeEntryLocked(snap signal.Snapshot, now time.Time) {
	entries := []struct {
		gesture string
		active  bool
		enter   func(time.Time)
	}{
		{gestureOpenPalm, snap.OpenPalm, func(at time.Time) {
			orch.enterZenLocked("ZEN MODE\nTake a moment to breathe", at)
		}},
		{gestureBothHandsRaised, snap.BothHandsRaised, func(at time.Time) {
			orch.enterBreathingLocked(0, at)
		}},
		{gestureHandsCoveringEars, snap.HandsCoveringEars, orch.enterQuietLocked},
		{gestureClenchedFist, snap.ClenchedFist, func(at time.Time) {
			orch.enterBreathingLocked(orch.config.FistWarmth, at)
		}},
		{gesturePeaceSign, snap.PeaceSign, orch.enterFocusLocked},
		{gesturePalmsTogether, snap.PalmsTogether, func(at time.Time) {
			orch.enterZenLocked("MINDFULNESS\n5 minutes of calm", at)
		}},
	}

	for _, entry := range entries {
		if orch.bank.Observe(entry.gesture, entry.active, now) {
			entry.enter(now)
			return
		}
	}
}

func (orch *Orchestrator) enterZenLocked(message string, now time.Time) {
	orch.mode = ModeZen
	orch.collab.Dim.Activate(message, DimDefault)
	orch.collab.Meditation.Start()
	orch.emitLocked(Event{Type: EventModeChange, Mode: ModeZen, At: now})
}

func (orch *Orchestrator) enterBreathingLocked(warmth int, now time.Time) {
	orch.mode = ModeBreathing
	orch.collab.Breathing.Activate(PatternBox)
	orch.collab.Meditation.Start()
	if warmth > 0 {
		orch.setWarmthLocked(warmth, ownerMode)
	}
	orch.emitLocked(Event{Type: EventModeChange, Mode: ModeBreathing, At: now})
}

func (orch *Orchestrator) enterQuietLocked(now time.Time) {
	orch.mode = ModeQuiet
	orch.collab.BrownNoise.Start()
	orch.collab.Dim.Activate("QUIET MODE", DimQuiet)
	orch.emitLocked(Event{Type: EventModeChange, Mode: ModeQuiet, At: now})
}

func (orch *Orchestrator) enterFocusLocked(now time.Time) {
	orch.mode = ModeFocus
	orch.collab.Dim.Activate("5 MINUTE FOCUS PAUSE", DimFocus)
	orch.emitLocked(Event{Type: EventModeChange, Mode: ModeFocus, At: now})
}

func (orch *Orchestrator) observeDistractionLocked(snap signal.Snapshot, now time.Time) {
	fired := orch.bank.Observe(gestureLookingDown, snap.LookingDown, now)
	if fired && !orch.distractionWarning {
		orch.distractionWarning = true
		orch.setWarmthLocked(orch.config.Distraction.Warmth, ownerDistraction)
		orch.collab.DistractionBeeper.Start()
		orch.emitLocked(Event{Type: EventWarning, Mode: orch.mode, Message: "distraction", Warmth: orch.warmth, At: now})
		return
	}
	if !snap.LookingDown {
		orch.clearDistractionLocked(now)
	}
}

func (orch *Orchestrator) clearDistractionLocked(now time.Time) {
	if !orch.distractionWarning {
		return
	}
	orch.distractionWarning = false
	orch.collab.DistractionBeeper.Stop()
	if orch.warmthBy == ownerDistraction {
		orch.setWarmthLocked(0, ownerNone)
	}
	orch.emitLocked(Event{Type: EventWarning, Mode: orch.mode, Message: "distraction cleared", At: now})
}

func (orch *Orchestrator) observePostureLocked(snap signal.Snapshot, now time.Time) {
	state := orch.posture.Observe(snap.BadPosture, now)
	orch.postureIssues = snap.PostureIssues

	if state.ShouldAlarm && !orch.postureWarning {
		orch.postureWarning = true
		orch.collab.PostureAlert.Activate(snap.PostureIssues)
		orch.collab.PostureBeeper.Start()
		orch.setWarmthLocked(orch.config.Posture.Warmth, ownerPosture)
		orch.emitLocked(Event{Type: EventWarning, Mode: orch.mode, Message: "bad posture", Warmth: orch.warmth, At: now})
		return
	}
	if !snap.BadPosture {
		orch.clearPostureWarningLocked(now)
	}
}

func (orch *Orchestrator) clearPostureWarningLocked(now time.Time) {
	if !orch.postureWarning {
		return
	}
	orch.postureWarning = false
	orch.collab.PostureAlert.Deactivate()
	orch.collab.PostureBeeper.Stop()
	if orch.warmthBy == ownerPosture {
		orch.setWarmthLocked(0, ownerNone)
	}
	orch.emitLocked(Event{Type: EventWarning, Mode: orch.mode, Message: "posture corrected", At: now})
}

// deactivateModeLocked stops the collaborators of the currently-active
// mode without touching counters or warnings.
func (orch *Orchestrator) deactivateModeLocked() {
	switch orch.mode {
	case ModeZen:
		orch.collab.Dim.Deactivate()
		orch.collab.Meditation.Stop()
	case ModeBreathing:
		orch.collab.Breathing.Deactivate()
		orch.collab.Meditation.Stop()
		// The breathing guide is down, so the sticky anxiety flag must
		// drop with it or the next threshold episode would see it set
		// and skip re-activation.
		orch.anxietyActive = false
		if orch.warmthBy == ownerMode {
			orch.setWarmthLocked(0, ownerNone)
		}
	case ModeQuiet:
		orch.collab.BrownNoise.Stop()
		orch.collab.Dim.Deactivate()
	case ModeFocus:
		orch.collab.Dim.Deactivate()
	case ModeEnergyBreak:
		orch.collab.EnergyBreak.Deactivate()
	}
	orch.mode = ModeIdle
}

// exitAllLocked force-deactivates every collaborator, regardless of what
// the arbiter believes is active, so drifted collaborator state cannot
// leave an overlay up.
func (orch *Orchestrator) exitAllLocked(now time.Time) {
	orch.collab.Dim.Deactivate()
	orch.collab.Breathing.Deactivate()
	orch.collab.EnergyBreak.Deactivate()
	orch.collab.PostureAlert.Deactivate()
	orch.collab.Meditation.Stop()
	orch.collab.BrownNoise.Stop()
	orch.collab.DistractionBeeper.Stop()
	orch.collab.PostureBeeper.Stop()
	orch.setWarmthLocked(0, ownerNone)

	orch.mode = ModeIdle
	orch.anxietyActive = false
	orch.distractionWarning = false
	orch.postureWarning = false
	orch.nailBiting.Reset()
	orch.fatigue.Reset()
	orch.posture.Reset()

	// The exit gesture must be released and re-asserted to exit twice.
	orch.bank.Clear(gestureExitSign)

	orch.emitLocked(Event{Type: EventModeChange, Mode: ModeIdle, Message: "exit all modes", At: now})
}

func (orch *Orchestrator) setWarmthLocked(level int, owner warmthOwner) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	orch.warmth = level
	orch.warmthBy = owner
	orch.collab.Warmth.SetWarmth(level)
}

func (orch *Orchestrator) emitLocked(event Event) {
	for _, ch := range orch.events {
		select {
		case ch <- event:
		default:
		}
	}
}
