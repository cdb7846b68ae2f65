package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"zenspace/internal/audio"
	"zenspace/internal/capture"
	"zenspace/internal/core/orchestrator"
	"zenspace/internal/detector"
	"zenspace/internal/log"
	"zenspace/internal/platform"
	"zenspace/internal/storage"
	"zenspace/internal/ui/overlay"
	"zenspace/internal/ui/preferences"
	"zenspace/internal/ui/tray"
)

const appName = "ZenSpace"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zenspace is already running")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load settings: %v\n", err)
	}
	log.Init(settings.LogLevel)

	fyneApp := app.NewWithID("com.zenspace.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Error("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("ZenSpace is watching for gestures from the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	dim := overlay.NewDim(fyneApp, settings.OverlayOpacity)
	breathing := overlay.NewBreathing(fyneApp)
	energyBreak := overlay.NewEnergyBreak(fyneApp)
	postureAlert := overlay.NewPosture(fyneApp)
	warmth := overlay.NewWarmth(fyneApp)

	orch := orchestrator.New(settings.OrchestratorConfig(), orchestrator.Collaborators{
		Dim:               dim,
		Breathing:         breathing,
		EnergyBreak:       energyBreak,
		PostureAlert:      postureAlert,
		Warmth:            warmth,
		Meditation:        audio.NewMeditationTone(),
		BrownNoise:        audio.NewBrownNoise(),
		DistractionBeeper: audio.NewDistractionBeeper(),
		PostureBeeper:     audio.NewPostureBeeper(),
	})
	orch.SetIdleChecker(platform.NewIdleProvider())
	energyBreak.SetExitCallback(orch.OnEnergyBreakSelfExit)

	platformService := platform.NewService()
	applyAutostart(platformService, settings.Autostart)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var trayManager *tray.Manager
	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if updated.Autostart != settings.Autostart {
			applyAutostart(platformService, updated.Autostart)
		}
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Error("save settings", "error", err)
		}
		// Hold and threshold changes take effect on restart; camera and
		// detector settings as well.
		log.Info("settings saved, restart to apply timing changes")
	})

	paused := false
	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnTogglePause: func() {
			if paused {
				orch.Resume()
			} else {
				orch.Pause()
			}
			paused = !paused
			trayManager.SetPaused(paused)
		},
		OnExitModes: func() {
			orch.ExitAllModes()
		},
		OnQuit: func() {
			cancel()
			orch.Stop()
			fyneApp.Quit()
		},
	})
	trayManager.SetStatus("starting camera")

	events := orch.Subscribe(16)
	go func() {
		for event := range events {
			handleEvent(event, trayManager)
		}
	}()

	go runPipeline(ctx, settings, orch, trayManager, fyneApp.Quit)

	fyneApp.Run()
}

// runPipeline starts the detector sidecar and the camera loop. A pipeline
// failure is fatal: without frames the whole application is inert.
func runPipeline(ctx context.Context, settings preferences.Settings, orch *orchestrator.Orchestrator, trayManager *tray.Manager, quit func()) {
	sidecar, err := detector.StartPython(ctx, settings.PythonBinary, settings.DetectorScript)
	if err != nil {
		log.Error("start detector", "error", err)
		quit()
		return
	}
	defer func() {
		if err := sidecar.Close(); err != nil {
			log.Warn("detector shutdown", "error", err)
		}
	}()

	trayManager.SetStatus("watching")

	cameraConfig := capture.DefaultConfig()
	cameraConfig.DeviceID = settings.CameraDevice
	if err := capture.Run(ctx, cameraConfig, sidecar, orch); err != nil && ctx.Err() == nil {
		log.Error("capture loop", "error", err)
		quit()
	}
}

func handleEvent(event orchestrator.Event, trayManager *tray.Manager) {
	switch event.Type {
	case orchestrator.EventModeChange:
		trayManager.SetModeActive(event.Mode != orchestrator.ModeIdle)
		trayManager.SetStatus(statusForMode(event.Mode))
		log.Info("mode change", "mode", event.Mode, "message", event.Message)
	case orchestrator.EventWarning:
		log.Info("monitor warning", "message", event.Message, "warmth", event.Warmth)
	case orchestrator.EventEpisode:
		log.Info("nail biting episode", "count", event.Count, "warmth", event.Warmth)
	case orchestrator.EventFatigue:
		log.Info("fatigue alert")
	case orchestrator.EventIdleReset:
		log.Debug("idle reset")
	}
}

func statusForMode(mode orchestrator.Mode) string {
	switch mode {
	case orchestrator.ModeZen:
		return "zen mode"
	case orchestrator.ModeBreathing:
		return "breathing exercise"
	case orchestrator.ModeQuiet:
		return "quiet mode"
	case orchestrator.ModeFocus:
		return "focus pause"
	case orchestrator.ModeEnergyBreak:
		return "energy break"
	default:
		return "watching"
	}
}

func applyAutostart(service platform.Service, enabled bool) {
	execPath, err := os.Executable()
	if err != nil {
		log.Warn("resolve executable for autostart", "error", err)
		return
	}
	if enabled {
		err = service.EnableAutostart(appName, execPath)
	} else {
		err = service.DisableAutostart(appName)
	}
	if err != nil {
		log.Warn("autostart", "enabled", enabled, "error", err)
	}
}
