package config

import (
	_ "embed"
)

//go:embed defaults/scenario.yaml
var defaultScenarioYAML []byte

// DefaultConfig returns the default scoring run: three large asteroids on a
// 1000x800 field at 60 Hz with three lives.
func DefaultConfig() EpisodeConfig {
	return EpisodeConfig{
		Settings: SettingsConfig{
			Frequency:     60,
			StartingLives: 3,
		},
		Scenario: ScenarioConfig{
			Name:      "default",
			MapWidth:  1000,
			MapHeight: 800,
			Count:     3,
			Size:      4,
		},
	}
}
