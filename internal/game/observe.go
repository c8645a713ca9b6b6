package game

import "github.com/TimArnettThales/FuzzyAsteroids/internal/core"

// ShipState is the pilot-visible view of the ship.
type ShipState struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Angle   float64
	Radius  float64
	Lives   int
	CanFire bool
}

// AsteroidView is the pilot-visible view of one live asteroid.
type AsteroidView struct {
	ID     EntityID
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Size   Size
}

// BulletView is the pilot-visible view of one live bullet.
type BulletView struct {
	ID     EntityID
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
}

// Observation is the read-only state handed to pilots each tick and to any
// attached renderer. It exposes kinematic state only, never controller
// bookkeeping; whether anything consumes it has no effect on the episode.
type Observation struct {
	Frame     int
	Time      float64
	MapWidth  float64
	MapHeight float64
	Ship      ShipState
	Asteroids []AsteroidView
	Bullets   []BulletView
}

// Observe builds the observation for the current tick. All slices are fresh
// copies; mutating them cannot reach simulation state.
func (g *Game) Observe() Observation {
	obs := Observation{
		Frame:     g.score.FrameCount,
		Time:      g.score.Time,
		MapWidth:  g.scenario.MapWidth,
		MapHeight: g.scenario.MapHeight,
		Ship: ShipState{
			Pos:     g.ship.Pos,
			Vel:     g.ship.Vel,
			Angle:   g.ship.Angle,
			Radius:  g.ship.Radius,
			Lives:   g.ship.Lives,
			CanFire: g.ship.CanFire(),
		},
	}

	for _, a := range g.asteroids {
		if !a.Alive {
			continue
		}
		obs.Asteroids = append(obs.Asteroids, AsteroidView{
			ID:     a.ID,
			Pos:    a.Pos,
			Vel:    a.Vel,
			Radius: a.Radius,
			Size:   a.Size,
		})
	}
	for _, b := range g.bullets {
		if !b.Alive {
			continue
		}
		obs.Bullets = append(obs.Bullets, BulletView{
			ID:     b.ID,
			Pos:    b.Pos,
			Vel:    b.Vel,
			Radius: b.Radius,
		})
	}
	return obs
}

// ShipAlive reports whether the ship is still alive; used by renderers.
func (g *Game) ShipAlive() bool {
	return g.ship.Alive
}

// ShipInvulnerable reports whether the ship is in its respawn grace window;
// used by renderers to blink the ship.
func (g *Game) ShipInvulnerable() bool {
	return g.ship.Invulnerable()
}
