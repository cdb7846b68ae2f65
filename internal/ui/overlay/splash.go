// Package overlay implements the fullscreen intervention windows. Every
// overlay is an undecorated splash window drawn with canvas primitives;
// Activate and Deactivate may be called from any goroutine and marshal
// onto the UI thread themselves.
package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// newSplashWindow creates an undecorated window when the driver supports
// splash windows, falling back to a titled window otherwise.
func newSplashWindow(app fyne.App, title string) fyne.Window {
	window := app.NewWindow(title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)
	return window
}

// fullscreenFill stacks content over a colored backdrop filling the whole
// window.
func fullscreenFill(backdrop *canvas.Rectangle, content ...fyne.CanvasObject) *fyne.Container {
	objects := append([]fyne.CanvasObject{backdrop}, content...)
	return container.NewStack(objects...)
}

func centeredText(text string, textColor color.Color, size float32, bold bool) *canvas.Text {
	label := canvas.NewText(text, textColor)
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = size
	label.TextStyle = fyne.TextStyle{Bold: bold}
	return label
}
