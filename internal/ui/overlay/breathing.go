package overlay

import (
	"context"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"zenspace/internal/core/orchestrator"
	"zenspace/internal/ui/animation"
)

const (
	breathCircleMin = float32(120)
	breathCircleMax = float32(340)
)

// Breathing is the guided-breathing overlay: a circle that grows on
// inhale and shrinks on exhale, with the phase instruction underneath.
type Breathing struct {
	app    fyne.App
	window fyne.Window
	circle *canvas.Circle
	phase  *canvas.Text
	engine *animation.Engine

	mu      sync.Mutex
	cancel  context.CancelFunc
	visible bool

	// set by the progress callback, read when sizing the circle
	currentPhase animation.Phase
}

// NewBreathing creates the hidden breathing window.
func NewBreathing(app fyne.App) *Breathing {
	window := newSplashWindow(app, "zenspace-breathing")

	backdrop := canvas.NewRectangle(color.NRGBA{R: 6, G: 20, B: 30, A: 230})
	circle := canvas.NewCircle(color.NRGBA{R: 90, G: 180, B: 220, A: 120})
	circle.StrokeColor = color.NRGBA{R: 150, G: 220, B: 250, A: 255}
	circle.StrokeWidth = 3
	circle.Resize(fyne.NewSize(breathCircleMin, breathCircleMin))

	phase := centeredText("", color.NRGBA{R: 230, G: 240, B: 250, A: 255}, 28, true)

	// Reserve the full swing of the circle so the layout does not jump as
	// it breathes.
	circleArea := canvas.NewRectangle(color.Transparent)
	circleArea.SetMinSize(fyne.NewSize(breathCircleMax, breathCircleMax))

	content := container.NewCenter(container.NewVBox(
		container.NewStack(circleArea, container.NewWithoutLayout(circle)),
		phase,
	))
	window.SetContent(fullscreenFill(backdrop, content))
	window.SetFullScreen(true)

	return &Breathing{
		app:    app,
		window: window,
		circle: circle,
		phase:  phase,
		engine: animation.New(),
	}
}

// Activate shows the overlay and starts pacing the given pattern.
// Activating while already active restarts the cycle with the new
// pattern.
func (breathing *Breathing) Activate(pattern orchestrator.BreathingPattern) {
	spec := animation.BoxBreathing()
	if pattern == orchestrator.PatternRelax {
		spec = animation.RelaxBreathing()
	}

	breathing.mu.Lock()
	if breathing.cancel != nil {
		breathing.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	breathing.cancel = cancel
	breathing.visible = true
	breathing.mu.Unlock()

	fyne.Do(func() {
		breathing.window.Show()
	})

	breathing.engine.StartBreathing(ctx, spec, breathing.onPhase, breathing.onProgress)
}

// Deactivate stops the pacer and hides the window.
func (breathing *Breathing) Deactivate() {
	breathing.mu.Lock()
	if breathing.cancel != nil {
		breathing.cancel()
		breathing.cancel = nil
	}
	wasVisible := breathing.visible
	breathing.visible = false
	breathing.mu.Unlock()

	breathing.engine.Stop()
	if !wasVisible {
		return
	}
	fyne.Do(func() {
		breathing.window.Hide()
	})
}

func (breathing *Breathing) onPhase(step animation.PhaseStep) {
	breathing.mu.Lock()
	breathing.currentPhase = step.Phase
	breathing.mu.Unlock()

	fyne.Do(func() {
		breathing.phase.Text = step.Phase.Label()
		breathing.phase.Refresh()
	})
}

// onProgress maps the phase progress onto the circle diameter: inhale
// grows, exhale shrinks, holds keep the extreme reached.
func (breathing *Breathing) onProgress(fraction float64) {
	breathing.mu.Lock()
	phase := breathing.currentPhase
	breathing.mu.Unlock()

	var scale float64
	switch phase {
	case animation.PhaseInhale:
		scale = fraction
	case animation.PhaseExhale:
		scale = 1 - fraction
	case animation.PhaseHoldIn:
		scale = 1
	default:
		scale = 0
	}
	diameter := breathCircleMin + float32(scale)*(breathCircleMax-breathCircleMin)

	fyne.Do(func() {
		offset := (breathCircleMax - diameter) / 2
		breathing.circle.Move(fyne.NewPos(offset, offset))
		breathing.circle.Resize(fyne.NewSize(diameter, diameter))
	})
}
