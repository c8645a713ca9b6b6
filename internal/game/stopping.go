package game

import "fmt"

// StoppingCondition is the episode termination state. StopNone is the sole
// non-terminal value; every terminal value is absorbing.
//
// The integer values are the stable external serialization used by storage
// and CSV export, so they must never be reordered.
type StoppingCondition int

const (
	StopNone StoppingCondition = iota
	StopNoAsteroids
	StopNoLives
	StopTimeLimit
)

// Terminal reports whether the condition ends the episode.
func (sc StoppingCondition) Terminal() bool {
	return sc != StopNone
}

// Int returns the stable integer tag for external reporting.
func (sc StoppingCondition) Int() int {
	return int(sc)
}

// String returns a human-readable name matching the episode log output.
func (sc StoppingCondition) String() string {
	switch sc {
	case StopNone:
		return "none"
	case StopNoAsteroids:
		return "no_asteroids"
	case StopNoLives:
		return "no_lives"
	case StopTimeLimit:
		return "time_limit_reached"
	default:
		return fmt.Sprintf("unknown(%d)", int(sc))
	}
}

// ParseStoppingCondition converts a stored integer tag back to a
// StoppingCondition. Round-trips with Int for all defined values.
func ParseStoppingCondition(tag int) (StoppingCondition, error) {
	sc := StoppingCondition(tag)
	switch sc {
	case StopNone, StopNoAsteroids, StopNoLives, StopTimeLimit:
		return sc, nil
	}
	return StopNone, fmt.Errorf("game: unknown stopping condition tag %d", tag)
}

// evaluate runs the stopping machine for one tick. The order is fixed:
// lives, then asteroids, then time limit, so simultaneous triggers always
// resolve the same way. Terminal states are absorbing.
func (g *Game) evaluateStopping() StoppingCondition {
	if g.stop.Terminal() {
		return g.stop
	}
	switch {
	case g.ship.Lives == 0:
		g.stop = StopNoLives
	case g.liveAsteroids() == 0:
		g.stop = StopNoAsteroids
	case g.settings.TimeLimit > 0 && g.score.Time >= g.settings.TimeLimit:
		g.stop = StopTimeLimit
	}
	return g.stop
}
