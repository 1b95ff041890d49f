package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"clockface/internal/core/model"
	"clockface/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Fields are pointers so a file may override only some settings.
type yamlSettings struct {
	Use24Hour           *bool   `yaml:"use_24_hour,omitempty"`
	ShowSeconds         *bool   `yaml:"show_seconds,omitempty"`
	ShowDate            *bool   `yaml:"show_date,omitempty"`
	SmoothHands         *bool   `yaml:"smooth_hands,omitempty"`
	TimezoneOffsetHours *int    `yaml:"timezone_offset_hours,omitempty"`
	SoundEnabled        *bool   `yaml:"sound_enabled,omitempty"`
	Theme               *string `yaml:"theme,omitempty"`
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
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
	if err := settings.Validate(); err != nil {
		return preferences.DefaultSettings(), fmt.Errorf("validate settings: %w", err)
	}
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	theme := string(settings.Theme)
	fileData := yamlSettings{
		Use24Hour:           &settings.Use24Hour,
		ShowSeconds:         &settings.ShowSeconds,
		ShowDate:            &settings.ShowDate,
		SmoothHands:         &settings.SmoothHands,
		TimezoneOffsetHours: &settings.TimezoneOffsetHours,
		SoundEnabled:        &settings.SoundEnabled,
		Theme:               &theme,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Use24Hour != nil {
		settings.Use24Hour = *fileData.Use24Hour
	}
	if fileData.ShowSeconds != nil {
		settings.ShowSeconds = *fileData.ShowSeconds
	}
	if fileData.ShowDate != nil {
		settings.ShowDate = *fileData.ShowDate
	}
	if fileData.SmoothHands != nil {
		settings.SmoothHands = *fileData.SmoothHands
	}
	if fileData.TimezoneOffsetHours != nil {
		settings.TimezoneOffsetHours = *fileData.TimezoneOffsetHours
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.Theme != nil {
		settings.Theme = model.Theme(*fileData.Theme)
	}
}
