// Package animation drives the timed sequences behind the overlays: the
// breathing phase pacer and the energy-break prompt rotation. It pushes
// updates through callbacks and never touches fyne objects itself, so the
// overlay layer decides how to marshal onto the UI thread.
package animation

import (
	"context"
	"sync"
	"time"
)

// Engine runs at most one sequence at a time; starting a new one cancels
// the previous.
type Engine struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates an idle engine.
func New() *Engine {
	return &Engine{}
}

// StartBreathing loops the breathing cycle, invoking onPhase at the start
// of every step. The fraction argument to onProgress ramps 0..1 within
// each step at tick resolution.
func (engine *Engine) StartBreathing(ctx context.Context, spec BreathingSpec, onPhase func(PhaseStep), onProgress func(float64)) {
	engine.start(ctx, func(runCtx context.Context) {
		for {
			for _, step := range spec.Steps {
				onPhase(step)
				if !engine.runStep(runCtx, step.Duration, onProgress) {
					return
				}
			}
		}
	})
}

// StartEnergizer rotates through the prompts, wrapping around until
// stopped.
func (engine *Engine) StartEnergizer(ctx context.Context, spec EnergizerSpec, onPrompt func(string)) {
	engine.start(ctx, func(runCtx context.Context) {
		if len(spec.Prompts) == 0 {
			return
		}
		index := 0
		for {
			onPrompt(spec.Prompts[index])
			if !sleepWithContext(runCtx, spec.Interval) {
				return
			}
			index = (index + 1) % len(spec.Prompts)
		}
	})
}

// Stop terminates any active sequence.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

// runStep sleeps through one phase step, reporting progress at ~30 ticks
// per step so the breathing circle animates smoothly.
func (engine *Engine) runStep(ctx context.Context, duration time.Duration, onProgress func(float64)) bool {
	if onProgress == nil {
		return sleepWithContext(ctx, duration)
	}

	const ticks = 30
	tick := duration / ticks
	if tick <= 0 {
		tick = time.Millisecond
	}
	start := time.Now()
	for {
		elapsed := time.Since(start)
		if elapsed >= duration {
			onProgress(1)
			return true
		}
		onProgress(float64(elapsed) / float64(duration))
		if !sleepWithContext(ctx, tick) {
			return false
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
