package game

import (
	"math"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
)

// Default play-field dimensions, in play-field units.
const (
	DefaultMapWidth  = 1000.0
	DefaultMapHeight = 800.0
)

// safeSpawnDistance keeps randomly placed asteroids away from the ship's
// starting position.
const safeSpawnDistance = 250.0

// Settings is the immutable per-episode configuration. It is resolved and
// validated once before the first tick; invalid values fail fast with a
// ConfigurationError naming the field.
type Settings struct {
	Frequency        int     // simulation ticks per second
	TimeLimit        float64 // seconds; 0 disables the limit
	StartingLives    int
	StartingPos      *core.Vec2 // nil = map center
	StartingAngle    *float64   // degrees; nil = 0
	RandomPosition   bool       // randomize starting position (overrides StartingPos)
	RandomAngle      bool       // randomize starting angle (overrides StartingAngle)
	TrackComputeCost bool
	Seed             int64
}

// DefaultSettings returns the settings the original scoring runs used.
func DefaultSettings() Settings {
	return Settings{
		Frequency:     60,
		StartingLives: 3,
	}
}

// Validate checks every field, returning a ConfigurationError for the first
// invalid one. Nothing is clamped.
func (s Settings) Validate() error {
	if s.Frequency <= 0 {
		return &ConfigurationError{Field: "frequency", Reason: "must be a positive tick rate"}
	}
	if math.IsNaN(s.TimeLimit) || s.TimeLimit < 0 {
		return &ConfigurationError{Field: "time_limit", Reason: "must be zero (disabled) or a positive number of seconds"}
	}
	if s.StartingLives < 1 {
		return &ConfigurationError{Field: "starting_lives", Reason: "must be at least 1"}
	}
	if s.StartingAngle != nil && (math.IsNaN(*s.StartingAngle) || math.IsInf(*s.StartingAngle, 0)) {
		return &ConfigurationError{Field: "starting_angle", Reason: "must be a finite angle in degrees"}
	}
	if s.StartingPos != nil {
		if math.IsNaN(s.StartingPos.X) || math.IsNaN(s.StartingPos.Y) {
			return &ConfigurationError{Field: "starting_position", Reason: "must be finite coordinates"}
		}
	}
	return nil
}

// AsteroidSpawn is an explicit asteroid starting state inside a scenario.
type AsteroidSpawn struct {
	Pos     core.Vec2
	Heading float64 // degrees; velocity is the size-class base speed
	Size    Size
}

// Scenario defines the play-field and the starting asteroid population.
// With an empty Asteroids list, Count asteroids of Size are placed at
// randomized positions a safe distance from the ship start.
type Scenario struct {
	Name      string
	MapWidth  float64
	MapHeight float64
	Count     int
	Size      Size
	Asteroids []AsteroidSpawn
}

// Center returns the middle of the play field. The ship starts here unless
// the settings override it, and always respawns here.
func (sc Scenario) Center() core.Vec2 {
	return core.Vec2{X: sc.MapWidth / 2, Y: sc.MapHeight / 2}
}

// DefaultScenario mirrors the original default: three large asteroids on a
// 1000x800 field.
func DefaultScenario() Scenario {
	return Scenario{
		Name:      "default",
		MapWidth:  DefaultMapWidth,
		MapHeight: DefaultMapHeight,
		Count:     3,
		Size:      SizeHuge,
	}
}

// Validate checks the scenario, returning a ConfigurationError for the
// first invalid field.
func (sc Scenario) Validate() error {
	if sc.MapWidth <= 0 || sc.MapHeight <= 0 {
		return &ConfigurationError{Field: "map", Reason: "dimensions must be positive"}
	}
	if len(sc.Asteroids) == 0 {
		if sc.Count < 1 {
			return &ConfigurationError{Field: "asteroids.count", Reason: "must be at least 1"}
		}
		if !sc.Size.valid() {
			return &ConfigurationError{Field: "asteroids.size", Reason: "size class must be between 1 and 4"}
		}
		return nil
	}
	for _, a := range sc.Asteroids {
		if !a.Size.valid() {
			return &ConfigurationError{Field: "asteroids", Reason: "size class must be between 1 and 4"}
		}
		if a.Pos.X < 0 || a.Pos.X > sc.MapWidth || a.Pos.Y < 0 || a.Pos.Y > sc.MapHeight {
			return &ConfigurationError{Field: "asteroids", Reason: "position outside the play field"}
		}
	}
	return nil
}

// maxDestructions is the total asteroid count this scenario can ever yield,
// counting every future split piece.
func (sc Scenario) maxDestructions() int {
	if len(sc.Asteroids) > 0 {
		total := 0
		for _, a := range sc.Asteroids {
			total += a.Size.PotentialDestructions()
		}
		return total
	}
	return sc.Count * sc.Size.PotentialDestructions()
}
