package game

import "github.com/TimArnettThales/FuzzyAsteroids/internal/core"

// Ship movement limits. These define the legal action vocabulary: thrust and
// turn rate commands outside these ranges are rejected, never clamped.
const (
	ShipRadius   = 15.0  // collision circle radius
	MaxThrust    = 480.0 // play-field units per second squared, either sign
	MaxTurnRate  = 180.0 // degrees per second, either sign
	MaxShipSpeed = 240.0 // speed cap in units per second
	ShipDrag     = 80.0  // passive deceleration in units per second squared

	// RespawnGraceSeconds is the invulnerability window after a respawn.
	// Firing ends it early.
	RespawnGraceSeconds = 3.0

	// shotsPerSecond limits the fire rate via a tick cooldown.
	shotsPerSecond = 10
)

// Ship is the pilot-controlled entity. Lives only ever decrease; when they
// reach zero the ship is permanently dead and never respawns.
type Ship struct {
	Entity
	Lives    int
	Thrust   float64 // current commanded thrust
	TurnRate float64 // current commanded turn rate

	startAngle float64

	fireCooldown int // ticks until the ship may fire again
	graceTicks   int // remaining invulnerability ticks
}

func newShip(id EntityID, pos core.Vec2, angle float64, lives int) *Ship {
	return &Ship{
		Entity: Entity{
			ID:     id,
			Kind:   KindShip,
			Pos:    pos,
			Angle:  core.NormalizeAngle(angle),
			Radius: ShipRadius,
			Alive:  true,
		},
		Lives:      lives,
		startAngle: core.NormalizeAngle(angle),
	}
}

// control stores the commanded thrust and turn rate for the coming tick.
// The action has already been validated by the controller.
func (s *Ship) control(a Action) {
	s.Thrust = a.Thrust
	s.TurnRate = a.TurnRate
}

// advance integrates ship kinematics for one tick: turn, drag, thrust along
// the heading, speed cap, then movement with wraparound.
func (s *Ship) advance(dt, w, h float64) {
	s.Angle = core.NormalizeAngle(s.Angle + s.TurnRate*dt)

	// Drag opposes motion and never reverses it.
	if speed := s.Vel.Length(); speed > 0 {
		drop := ShipDrag * dt
		if drop > speed {
			drop = speed
		}
		s.Vel = s.Vel.Sub(s.Vel.Normalize().Scale(drop))
	}

	s.Vel = s.Vel.Add(core.HeadingVec(s.Angle).Scale(s.Thrust * dt))
	if speed := s.Vel.Length(); speed > MaxShipSpeed {
		s.Vel = s.Vel.Scale(MaxShipSpeed / speed)
	}

	s.Entity.advance(dt, w, h)

	if s.fireCooldown > 0 {
		s.fireCooldown--
	}
	if s.graceTicks > 0 {
		s.graceTicks--
	}
}

// CanFire reports whether the fire rate limiter allows a shot this tick.
func (s *Ship) CanFire() bool {
	return s.Alive && s.fireCooldown == 0
}

// Invulnerable reports whether the ship is inside its respawn grace window.
func (s *Ship) Invulnerable() bool {
	return s.graceTicks > 0
}

// fire resets the rate limiter and ends any respawn grace, returning the
// muzzle state for the new bullet. Caller checks CanFire first.
func (s *Ship) fire(frequency int) (pos core.Vec2, vel core.Vec2) {
	cooldown := frequency / shotsPerSecond
	if cooldown < 1 {
		cooldown = 1
	}
	s.fireCooldown = cooldown
	s.graceTicks = 0

	nose := core.HeadingVec(s.Angle)
	pos = s.Pos.Add(nose.Scale(s.Radius))
	vel = s.Vel.Add(nose.Scale(BulletSpeed))
	return pos, vel
}

// respawn resets the ship after a non-fatal crash. It always comes back at
// the given point (the map center) regardless of where the episode started.
// The caller has already decremented Lives.
func (s *Ship) respawn(at core.Vec2, frequency int) {
	s.Pos = at
	s.Vel = core.Vec2{}
	s.Angle = s.startAngle
	s.Thrust = 0
	s.TurnRate = 0
	s.graceTicks = int(RespawnGraceSeconds * float64(frequency))
}
