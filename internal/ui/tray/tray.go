package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnTogglePause func()
	OnExitModes   func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	exitItem    *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	modeActive  bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause detection", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.exitItem = fyne.NewMenuItem("Exit current mode", func() {
		if manager.callbacks.OnExitModes != nil {
			manager.callbacks.OnExitModes()
		}
	})
	manager.exitItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume detection"
	} else {
		manager.pauseItem.Label = "Pause detection"
	}
	manager.refreshStatus()
}

// SetModeActive enables the exit item while an intervention is running.
func (manager *Manager) SetModeActive(active bool) {
	manager.modeActive = active
	manager.exitItem.Disabled = !active
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("ZenSpace",
		manager.statusItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.pauseItem,
		manager.exitItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
