package overlay

import (
	"context"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"zenspace/internal/ui/animation"
)

// EnergyBreak is the fatigue intervention overlay: a bright full-screen
// wake-up with rotating movement prompts. Escape dismisses it through the
// registered exit callback.
type EnergyBreak struct {
	app    fyne.App
	window fyne.Window
	prompt *canvas.Text
	engine *animation.Engine

	mu      sync.Mutex
	cancel  context.CancelFunc
	visible bool
	onExit  func()
}

// NewEnergyBreak creates the hidden energy-break window.
func NewEnergyBreak(app fyne.App) *EnergyBreak {
	window := newSplashWindow(app, "zenspace-energy-break")

	backdrop := canvas.NewRectangle(color.NRGBA{R: 235, G: 140, B: 20, A: 245})
	title := centeredText("ENERGY BREAK", color.NRGBA{R: 30, G: 20, B: 5, A: 255}, 48, true)
	subtitle := centeredText("You have been yawning a lot. Time to move.", color.NRGBA{R: 50, G: 35, B: 10, A: 255}, 20, false)
	prompt := centeredText("", color.NRGBA{R: 255, G: 250, B: 240, A: 255}, 30, true)
	hint := centeredText("Press Esc or show the OK sign when you are back", color.NRGBA{R: 60, G: 45, B: 15, A: 255}, 14, false)

	window.SetContent(fullscreenFill(backdrop, container.NewCenter(container.NewVBox(title, subtitle, prompt, hint))))
	window.SetFullScreen(true)

	overlay := &EnergyBreak{app: app, window: window, prompt: prompt, engine: animation.New()}

	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name != fyne.KeyEscape {
			return
		}
		overlay.mu.Lock()
		exit := overlay.onExit
		overlay.mu.Unlock()
		if exit != nil {
			exit()
		}
	})

	return overlay
}

// SetExitCallback registers the dismissal handler invoked on Escape.
func (overlay *EnergyBreak) SetExitCallback(handler func()) {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	overlay.onExit = handler
}

// Activate shows the overlay and starts the prompt rotation.
func (overlay *EnergyBreak) Activate() {
	overlay.mu.Lock()
	if overlay.cancel != nil {
		overlay.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancel = cancel
	overlay.visible = true
	overlay.mu.Unlock()

	fyne.Do(func() {
		overlay.window.Show()
		overlay.window.RequestFocus()
	})

	overlay.engine.StartEnergizer(ctx, animation.DefaultEnergizer(), func(prompt string) {
		fyne.Do(func() {
			overlay.prompt.Text = prompt
			overlay.prompt.Refresh()
		})
	})
}

// Deactivate stops the prompts and hides the window.
func (overlay *EnergyBreak) Deactivate() {
	overlay.mu.Lock()
	if overlay.cancel != nil {
		overlay.cancel()
		overlay.cancel = nil
	}
	wasVisible := overlay.visible
	overlay.visible = false
	overlay.mu.Unlock()

	overlay.engine.Stop()
	if !wasVisible {
		return
	}
	fyne.Do(func() {
		overlay.window.Hide()
	})
}
