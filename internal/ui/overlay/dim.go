package overlay

import (
	"image/color"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"zenspace/internal/core/orchestrator"
)

// Dim is the screen-dimming overlay used by zen, quiet and focus modes.
// The variant picks the backdrop tone and accent color.
type Dim struct {
	app      fyne.App
	window   fyne.Window
	backdrop *canvas.Rectangle
	title    *canvas.Text
	subtitle *canvas.Text
	opacity  float64

	mu      sync.Mutex
	visible bool
}

// NewDim creates the hidden dim window. Opacity sets the backdrop alpha
// and is clamped to the 0.5..0.95 range the settings slider allows.
func NewDim(app fyne.App, opacity float64) *Dim {
	if opacity < 0.5 {
		opacity = 0.5
	}
	if opacity > 0.95 {
		opacity = 0.95
	}
	window := newSplashWindow(app, "zenspace-dim")

	backdrop := canvas.NewRectangle(color.NRGBA{A: 215})
	title := centeredText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 42, true)
	subtitle := centeredText("", color.NRGBA{R: 200, G: 200, B: 200, A: 255}, 20, false)

	window.SetContent(fullscreenFill(backdrop, container.NewCenter(container.NewVBox(title, subtitle))))
	window.SetFullScreen(true)

	return &Dim{app: app, window: window, backdrop: backdrop, title: title, subtitle: subtitle, opacity: opacity}
}

// Activate shows the dim layer. A multi-line message splits into title and
// subtitle.
func (dim *Dim) Activate(message string, variant orchestrator.DimVariant) {
	titleText, subtitleText := splitMessage(message)
	backdropColor, accent := variantColors(variant)
	backdropColor.A = uint8(dim.opacity * 255)

	dim.mu.Lock()
	dim.visible = true
	dim.mu.Unlock()

	fyne.Do(func() {
		dim.backdrop.FillColor = backdropColor
		dim.backdrop.Refresh()
		dim.title.Text = titleText
		dim.title.Color = accent
		dim.title.Refresh()
		dim.subtitle.Text = subtitleText
		dim.subtitle.Refresh()
		dim.window.Show()
	})
}

// Deactivate hides the dim layer. Safe to call when already hidden.
func (dim *Dim) Deactivate() {
	dim.mu.Lock()
	wasVisible := dim.visible
	dim.visible = false
	dim.mu.Unlock()
	if !wasVisible {
		return
	}
	fyne.Do(func() {
		dim.window.Hide()
	})
}

func splitMessage(message string) (string, string) {
	parts := strings.SplitN(message, "\n", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return message, ""
}

// variantColors returns the backdrop tone and accent color for a variant.
// The backdrop alpha is applied separately from the opacity setting.
func variantColors(variant orchestrator.DimVariant) (color.NRGBA, color.NRGBA) {
	switch variant {
	case orchestrator.DimQuiet:
		// Near-black with a blue cast for the noise-masking mode.
		return color.NRGBA{R: 4, G: 8, B: 20}, color.NRGBA{R: 130, G: 170, B: 255, A: 255}
	case orchestrator.DimFocus:
		return color.NRGBA{R: 10, G: 10, B: 10}, color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	default:
		return color.NRGBA{}, color.NRGBA{R: 180, G: 220, B: 180, A: 255}
	}
}
