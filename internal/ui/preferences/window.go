package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	onCancel func()

	openPalm      *widget.Entry
	clenchedFist  *widget.Entry
	exitSign      *widget.Entry
	lookingDown   *widget.Entry
	yawnThreshold *widget.Entry
	yawnWindow    *widget.Entry
	postureAlarm  *widget.Entry
	cameraDevice  *widget.Entry
	opacity       *widget.Slider
	idleCheck     *widget.Check
	autostart     *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("ZenSpace Settings")

	openPalm := widget.NewEntry()
	clenchedFist := widget.NewEntry()
	exitSign := widget.NewEntry()
	lookingDown := widget.NewEntry()
	yawnThreshold := widget.NewEntry()
	yawnWindow := widget.NewEntry()
	postureAlarm := widget.NewEntry()
	cameraDevice := widget.NewEntry()

	opacity := widget.NewSlider(0.5, 0.95)
	opacity.Step = 0.01

	idleCheck := widget.NewCheck("Reset monitors when away from keyboard", nil)
	autostart := widget.NewCheck("Launch at login", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Gesture holds", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Open palm hold"), openPalm, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Clenched fist hold"), clenchedFist, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Exit sign hold"), exitSign, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Monitors", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Distraction alert after"), lookingDown, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Yawns per window"), yawnThreshold, widget.NewLabel("yawns")),
		container.NewHBox(widget.NewLabel("Yawn window"), yawnWindow, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Posture alarm after"), postureAlarm, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Camera device"), cameraDevice),
		widget.NewLabel("Overlay opacity"),
		opacity,
		idleCheck,
		autostart,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(440, 520))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		openPalm:      openPalm,
		clenchedFist:  clenchedFist,
		exitSign:      exitSign,
		lookingDown:   lookingDown,
		yawnThreshold: yawnThreshold,
		yawnWindow:    yawnWindow,
		postureAlarm:  postureAlarm,
		cameraDevice:  cameraDevice,
		opacity:       opacity,
		idleCheck:     idleCheck,
		autostart:     autostart,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.openPalm.SetText(formatSeconds(settings.OpenPalmHold))
	prefs.clenchedFist.SetText(formatSeconds(settings.ClenchedFistHold))
	prefs.exitSign.SetText(formatSeconds(settings.ExitSignHold))
	prefs.lookingDown.SetText(formatSeconds(settings.LookingDownHold))
	prefs.yawnThreshold.SetText(strconv.Itoa(settings.YawnThreshold))
	prefs.yawnWindow.SetText(formatSeconds(settings.YawnWindow))
	prefs.postureAlarm.SetText(formatSeconds(settings.PostureAlarmAfter))
	prefs.cameraDevice.SetText(strconv.Itoa(settings.CameraDevice))
	prefs.opacity.Value = settings.OverlayOpacity
	prefs.opacity.Refresh()
	prefs.idleCheck.SetChecked(settings.IdleEnabled)
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveSeconds(prefs.openPalm.Text); ok {
		settings.OpenPalmHold = seconds
	}
	if seconds, ok := parsePositiveSeconds(prefs.clenchedFist.Text); ok {
		settings.ClenchedFistHold = seconds
	}
	if seconds, ok := parsePositiveSeconds(prefs.exitSign.Text); ok {
		settings.ExitSignHold = seconds
	}
	if seconds, ok := parsePositiveSeconds(prefs.lookingDown.Text); ok {
		settings.LookingDownHold = seconds
	}
	if count, ok := parsePositiveInt(prefs.yawnThreshold.Text); ok {
		settings.YawnThreshold = count
	}
	if seconds, ok := parsePositiveSeconds(prefs.yawnWindow.Text); ok {
		settings.YawnWindow = seconds
	}
	if seconds, ok := parsePositiveSeconds(prefs.postureAlarm.Text); ok {
		settings.PostureAlarmAfter = seconds
	}
	if device, err := strconv.Atoi(prefs.cameraDevice.Text); err == nil && device >= 0 {
		settings.CameraDevice = device
	}

	settings.OverlayOpacity = prefs.opacity.Value
	settings.IdleEnabled = prefs.idleCheck.Checked
	settings.Autostart = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func formatSeconds(value time.Duration) string {
	return fmt.Sprintf("%g", value.Seconds())
}

func parsePositiveSeconds(value string) (time.Duration, bool) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return time.Duration(parsed * float64(time.Second)), true
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
