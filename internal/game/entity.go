// Package game implements the deterministic Asteroids simulation core: the
// entity arena, collision handling, the stopping-condition machine, the
// score record, and the tick-driven episode controller.
package game

import "github.com/TimArnettThales/FuzzyAsteroids/internal/core"

// EntityID is a stable identifier assigned when an entity enters the arena.
// Collision results reference entities by ID rather than pointer, so a pair
// involving an entity destroyed earlier in the same tick is simply skipped.
type EntityID int

// Kind identifies an entity's role. Only differing roles can collide.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Entity is the shared capability set of every simulated object.
type Entity struct {
	ID     EntityID
	Kind   Kind
	Pos    core.Vec2
	Vel    core.Vec2
	Angle  float64 // heading in degrees
	Radius float64
	Alive  bool
}

// advance moves the entity by one tick and wraps it into the toroidal
// play-field bounds.
func (e *Entity) advance(dt, w, h float64) {
	e.Pos = e.Pos.Add(e.Vel.Scale(dt)).Wrap(w, h)
}
