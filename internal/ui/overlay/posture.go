package overlay

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"zenspace/internal/core/signal"
)

// Posture is the posture-alarm banner: a red strip along the top of the
// screen listing the detected issues. It deliberately does not cover the
// screen; the user should fix their posture while still working.
type Posture struct {
	app      fyne.App
	window   fyne.Window
	issueBox *fyne.Container

	mu      sync.Mutex
	visible bool
}

// NewPosture creates the hidden posture banner.
func NewPosture(app fyne.App) *Posture {
	window := newSplashWindow(app, "zenspace-posture")

	backdrop := canvas.NewRectangle(color.NRGBA{R: 170, G: 30, B: 30, A: 235})
	title := centeredText("CHECK YOUR POSTURE", color.NRGBA{R: 255, G: 235, B: 235, A: 255}, 24, true)
	issueBox := container.NewVBox()

	window.SetContent(fullscreenFill(backdrop, container.NewCenter(container.NewVBox(title, issueBox))))
	window.Resize(fyne.NewSize(640, 160))

	return &Posture{app: app, window: window, issueBox: issueBox}
}

// Activate shows the banner with the current issue list. Re-activating
// refreshes the list in place.
func (posture *Posture) Activate(issues signal.PostureIssues) {
	labels := issues.Describe()

	posture.mu.Lock()
	posture.visible = true
	posture.mu.Unlock()

	fyne.Do(func() {
		posture.issueBox.RemoveAll()
		for _, label := range labels {
			posture.issueBox.Add(centeredText(label, color.NRGBA{R: 255, G: 210, B: 210, A: 255}, 16, false))
		}
		posture.issueBox.Refresh()
		posture.window.Show()
	})
}

// Deactivate hides the banner. Safe to call when already hidden.
func (posture *Posture) Deactivate() {
	posture.mu.Lock()
	wasVisible := posture.visible
	posture.visible = false
	posture.mu.Unlock()
	if !wasVisible {
		return
	}
	fyne.Do(func() {
		posture.window.Hide()
	})
}
