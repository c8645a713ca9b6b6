// Package config provides YAML-based episode configuration loading for the
// scoring environment.
package config

import (
	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

// EpisodeConfig is the on-disk shape of one scoring run: controller
// settings plus the scenario the run plays out on.
type EpisodeConfig struct {
	Settings SettingsConfig `yaml:"settings"`
	Scenario ScenarioConfig `yaml:"scenario"`
}

// SettingsConfig mirrors game.Settings for YAML.
type SettingsConfig struct {
	Frequency        int      `yaml:"frequency"`
	TimeLimit        float64  `yaml:"time_limit"`
	StartingLives    int      `yaml:"starting_lives"`
	StartingPosition *XY      `yaml:"starting_position"`
	StartingAngle    *float64 `yaml:"starting_angle"`
	RandomPosition   bool     `yaml:"random_position"`
	RandomAngle      bool     `yaml:"random_angle"`
	TrackComputeCost bool     `yaml:"track_compute_cost"`
	Seed             int64    `yaml:"seed"`
}

// ScenarioConfig mirrors game.Scenario for YAML. Either the explicit
// asteroid list or the count/size pair is used, never both.
type ScenarioConfig struct {
	Name      string          `yaml:"name"`
	MapWidth  float64         `yaml:"map_width"`
	MapHeight float64         `yaml:"map_height"`
	Count     int             `yaml:"count"`
	Size      int             `yaml:"size"`
	Asteroids []AsteroidEntry `yaml:"asteroids"`
}

// AsteroidEntry is one explicit asteroid spawn in a scenario file.
type AsteroidEntry struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
	Size    int     `yaml:"size"`
}

// XY is a position in play-field units.
type XY struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ToGame converts the file shape into validated simulation types. A zero
// frequency, lives count, or map dimension falls back to the defaults so a
// minimal file stays usable.
func (c EpisodeConfig) ToGame() (game.Settings, game.Scenario, error) {
	s := game.DefaultSettings()
	if c.Settings.Frequency != 0 {
		s.Frequency = c.Settings.Frequency
	}
	if c.Settings.StartingLives != 0 {
		s.StartingLives = c.Settings.StartingLives
	}
	s.TimeLimit = c.Settings.TimeLimit
	s.RandomPosition = c.Settings.RandomPosition
	s.RandomAngle = c.Settings.RandomAngle
	s.TrackComputeCost = c.Settings.TrackComputeCost
	s.Seed = c.Settings.Seed
	if c.Settings.StartingPosition != nil {
		s.StartingPos = &core.Vec2{X: c.Settings.StartingPosition.X, Y: c.Settings.StartingPosition.Y}
	}
	s.StartingAngle = c.Settings.StartingAngle

	sc := game.DefaultScenario()
	if c.Scenario.Name != "" {
		sc.Name = c.Scenario.Name
	}
	if c.Scenario.MapWidth != 0 {
		sc.MapWidth = c.Scenario.MapWidth
	}
	if c.Scenario.MapHeight != 0 {
		sc.MapHeight = c.Scenario.MapHeight
	}
	if c.Scenario.Count != 0 {
		sc.Count = c.Scenario.Count
	}
	if c.Scenario.Size != 0 {
		sc.Size = game.Size(c.Scenario.Size)
	}
	if len(c.Scenario.Asteroids) > 0 {
		sc.Asteroids = make([]game.AsteroidSpawn, 0, len(c.Scenario.Asteroids))
		for _, a := range c.Scenario.Asteroids {
			sc.Asteroids = append(sc.Asteroids, game.AsteroidSpawn{
				Pos:     core.Vec2{X: a.X, Y: a.Y},
				Heading: a.Heading,
				Size:    game.Size(a.Size),
			})
		}
	}

	if err := s.Validate(); err != nil {
		return game.Settings{}, game.Scenario{}, err
	}
	if err := sc.Validate(); err != nil {
		return game.Settings{}, game.Scenario{}, err
	}
	return s, sc, nil
}
