package overlay

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// warmth tint color, a soft amber laid over the whole screen.
var warmthTint = color.NRGBA{R: 255, G: 147, B: 0}

// maxWarmthAlpha caps the tint so the screen stays readable at level 100.
const maxWarmthAlpha = 0.4

// Warmth is the screen-tint layer. Level 0 hides the window entirely;
// levels 1..100 scale the amber alpha.
type Warmth struct {
	app    fyne.App
	window fyne.Window
	tint   *canvas.Rectangle

	mu      sync.Mutex
	level   int
	visible bool
}

// NewWarmth creates the hidden warmth window.
func NewWarmth(app fyne.App) *Warmth {
	window := newSplashWindow(app, "zenspace-warmth")
	tint := canvas.NewRectangle(color.NRGBA{})
	window.SetContent(fullscreenFill(tint))
	window.SetFullScreen(true)
	return &Warmth{app: app, window: window, tint: tint}
}

// SetWarmth applies a tint level in 0..100.
func (warmth *Warmth) SetWarmth(level int) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	warmth.mu.Lock()
	if warmth.level == level {
		warmth.mu.Unlock()
		return
	}
	warmth.level = level
	show := level > 0 && !warmth.visible
	hide := level == 0 && warmth.visible
	warmth.visible = level > 0
	warmth.mu.Unlock()

	alpha := uint8(float64(level) / 100 * maxWarmthAlpha * 255)
	fyne.Do(func() {
		warmth.tint.FillColor = color.NRGBA{R: warmthTint.R, G: warmthTint.G, B: warmthTint.B, A: alpha}
		warmth.tint.Refresh()
		if show {
			warmth.window.Show()
			applyNativeOpacity(warmth.window, 255)
		}
		if hide {
			warmth.window.Hide()
		}
	})
}

// Level returns the current tint level.
func (warmth *Warmth) Level() int {
	warmth.mu.Lock()
	defer warmth.mu.Unlock()
	return warmth.level
}
