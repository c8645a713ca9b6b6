package agent

import (
	"math"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

func init() {
	Register("idle", "does nothing and drifts", func() game.Pilot { return idlePilot{} })
	Register("gunner", "spins in place firing continuously", func() game.Pilot { return gunnerPilot{} })
	Register("hunter", "tracks the nearest asteroid and shoots it", func() game.Pilot { return &hunterPilot{} })
}

// idlePilot never commands anything. Useful as a scoring baseline and for
// exercising the time limit.
type idlePilot struct{}

func (idlePilot) Actions(game.Observation) game.Action {
	return game.Action{}
}

// gunnerPilot turns at a constant rate with the trigger held down. With the
// fire rate limiter this sprays bullets across every bearing.
type gunnerPilot struct{}

func (gunnerPilot) Actions(game.Observation) game.Action {
	return game.Action{TurnRate: game.MaxTurnRate / 2, Fire: true}
}

// hunterPilot leads the nearest asteroid and fires once roughly on target.
// It is fully deterministic: the action is a pure function of the
// observation.
type hunterPilot struct{}

func (p *hunterPilot) Actions(obs game.Observation) game.Action {
	target, ok := nearestAsteroid(obs)
	if !ok {
		return game.Action{}
	}

	delta := torusDelta(obs.Ship.Pos, target.Pos, obs.MapWidth, obs.MapHeight)

	// Lead the shot by the bullet's flight time to the current range.
	flight := delta.Length() / game.BulletSpeed
	aim := delta.Add(target.Vel.Sub(obs.Ship.Vel).Scale(flight))

	want := core.NormalizeAngle(math.Atan2(-aim.X, aim.Y) * 180 / math.Pi)
	err := angleError(obs.Ship.Angle, want)

	act := game.Action{
		TurnRate: core.ClampF(err*4, -game.MaxTurnRate, game.MaxTurnRate),
	}
	if math.Abs(err) < 10 {
		act.Fire = true
	}

	// Hold range: close on distant targets, back off when one is near.
	dist := delta.Length()
	switch {
	case dist > 350:
		act.Thrust = game.MaxThrust / 2
	case dist < 150:
		act.Thrust = -game.MaxThrust / 2
	}
	return act
}

func nearestAsteroid(obs game.Observation) (game.AsteroidView, bool) {
	best := game.AsteroidView{}
	bestDist := math.Inf(1)
	found := false
	for _, a := range obs.Asteroids {
		d := torusDelta(obs.Ship.Pos, a.Pos, obs.MapWidth, obs.MapHeight).LengthSq()
		if d < bestDist {
			best, bestDist, found = a, d, true
		}
	}
	return best, found
}

// torusDelta is the shortest vector from a to b on the wrapped play field.
func torusDelta(a, b core.Vec2, w, h float64) core.Vec2 {
	d := b.Sub(a)
	if d.X > w/2 {
		d.X -= w
	} else if d.X < -w/2 {
		d.X += w
	}
	if d.Y > h/2 {
		d.Y -= h
	} else if d.Y < -h/2 {
		d.Y += h
	}
	return d
}

// angleError is the signed shortest rotation from current to want, in
// degrees within (-180, 180].
func angleError(current, want float64) float64 {
	err := core.NormalizeAngle(want - current)
	if err > 180 {
		err -= 360
	}
	return err
}
