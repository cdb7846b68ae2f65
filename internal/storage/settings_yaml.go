package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"zenspace/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	OpenPalmHoldSeconds      float64 `yaml:"open_palm_hold_seconds"`
	BothHandsHoldSeconds     float64 `yaml:"both_hands_hold_seconds"`
	CoverEarsHoldSeconds     float64 `yaml:"cover_ears_hold_seconds"`
	ClenchedFistHoldSeconds  float64 `yaml:"clenched_fist_hold_seconds"`
	PeaceSignHoldSeconds     float64 `yaml:"peace_sign_hold_seconds"`
	PalmsTogetherHoldSeconds float64 `yaml:"palms_together_hold_seconds"`
	ExitSignHoldSeconds      float64 `yaml:"exit_sign_hold_seconds"`
	LookingDownHoldSeconds   float64 `yaml:"looking_down_hold_seconds"`

	YawnWindowSeconds float64 `yaml:"yawn_window_seconds"`
	YawnThreshold     int     `yaml:"yawn_threshold"`

	NailBitingSettleSeconds float64 `yaml:"nail_biting_settle_seconds"`
	NailBitingThreshold     int     `yaml:"nail_biting_threshold"`

	PostureAlarmSeconds float64 `yaml:"posture_alarm_seconds"`

	OverlayOpacity float64 `yaml:"overlay_opacity"`

	CameraDevice   int    `yaml:"camera_device"`
	DetectorScript string `yaml:"detector_script"`
	PythonBinary   string `yaml:"python_binary"`

	// Pointers so a hand-edited file that omits a flag keeps the
	// default instead of reading as false.
	IdleEnabled *bool  `yaml:"idle_enabled"`
	Autostart   *bool  `yaml:"autostart"`
	LogLevel    string `yaml:"log_level"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		OpenPalmHoldSeconds:      settings.OpenPalmHold.Seconds(),
		BothHandsHoldSeconds:     settings.BothHandsHold.Seconds(),
		CoverEarsHoldSeconds:     settings.CoverEarsHold.Seconds(),
		ClenchedFistHoldSeconds:  settings.ClenchedFistHold.Seconds(),
		PeaceSignHoldSeconds:     settings.PeaceSignHold.Seconds(),
		PalmsTogetherHoldSeconds: settings.PalmsTogetherHold.Seconds(),
		ExitSignHoldSeconds:      settings.ExitSignHold.Seconds(),
		LookingDownHoldSeconds:   settings.LookingDownHold.Seconds(),
		YawnWindowSeconds:        settings.YawnWindow.Seconds(),
		YawnThreshold:            settings.YawnThreshold,
		NailBitingSettleSeconds:  settings.NailBitingSettle.Seconds(),
		NailBitingThreshold:      settings.NailBitingThreshold,
		PostureAlarmSeconds:      settings.PostureAlarmAfter.Seconds(),
		OverlayOpacity:           settings.OverlayOpacity,
		CameraDevice:             settings.CameraDevice,
		DetectorScript:           settings.DetectorScript,
		PythonBinary:             settings.PythonBinary,
		IdleEnabled:              &settings.IdleEnabled,
		Autostart:                &settings.Autostart,
		LogLevel:                 settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	applySeconds := func(target *time.Duration, seconds float64) {
		if seconds > 0 {
			*target = time.Duration(seconds * float64(time.Second))
		}
	}

	applySeconds(&settings.OpenPalmHold, fileData.OpenPalmHoldSeconds)
	applySeconds(&settings.BothHandsHold, fileData.BothHandsHoldSeconds)
	applySeconds(&settings.CoverEarsHold, fileData.CoverEarsHoldSeconds)
	applySeconds(&settings.ClenchedFistHold, fileData.ClenchedFistHoldSeconds)
	applySeconds(&settings.PeaceSignHold, fileData.PeaceSignHoldSeconds)
	applySeconds(&settings.PalmsTogetherHold, fileData.PalmsTogetherHoldSeconds)
	applySeconds(&settings.ExitSignHold, fileData.ExitSignHoldSeconds)
	applySeconds(&settings.LookingDownHold, fileData.LookingDownHoldSeconds)
	applySeconds(&settings.YawnWindow, fileData.YawnWindowSeconds)
	applySeconds(&settings.NailBitingSettle, fileData.NailBitingSettleSeconds)
	applySeconds(&settings.PostureAlarmAfter, fileData.PostureAlarmSeconds)

	if fileData.YawnThreshold > 0 {
		settings.YawnThreshold = fileData.YawnThreshold
	}
	if fileData.NailBitingThreshold > 0 {
		settings.NailBitingThreshold = fileData.NailBitingThreshold
	}
	if fileData.OverlayOpacity >= 0.5 && fileData.OverlayOpacity <= 0.95 {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}
	if fileData.CameraDevice >= 0 {
		settings.CameraDevice = fileData.CameraDevice
	}
	if fileData.DetectorScript != "" {
		settings.DetectorScript = fileData.DetectorScript
	}
	if fileData.PythonBinary != "" {
		settings.PythonBinary = fileData.PythonBinary
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}

	if fileData.IdleEnabled != nil {
		settings.IdleEnabled = *fileData.IdleEnabled
	}
	if fileData.Autostart != nil {
		settings.Autostart = *fileData.Autostart
	}
}
