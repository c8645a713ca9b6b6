package game

import (
	"math"
	"testing"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
)

const testDt = 1.0 / 60

func TestShipDragNeverReversesMotion(t *testing.T) {
	s := newShip(1, core.Vec2{X: 500, Y: 400}, 0, 3)
	s.Vel = core.Vec2{X: 0.5}

	for i := 0; i < 10; i++ {
		s.advance(testDt, DefaultMapWidth, DefaultMapHeight)
		if s.Vel.X < 0 {
			t.Fatalf("drag reversed velocity to %v at tick %d", s.Vel, i)
		}
	}
	if s.Vel.Length() != 0 {
		t.Errorf("velocity = %v, want fully damped", s.Vel)
	}
}

func TestShipSpeedCap(t *testing.T) {
	s := newShip(1, core.Vec2{X: 500, Y: 400}, 0, 3)
	s.control(Action{Thrust: MaxThrust})

	for i := 0; i < 600; i++ {
		s.advance(testDt, DefaultMapWidth, DefaultMapHeight)
	}
	if speed := s.Vel.Length(); speed > MaxShipSpeed+1e-9 {
		t.Errorf("speed = %v, want <= %v", speed, MaxShipSpeed)
	}
}

func TestShipTurnWrapsAngle(t *testing.T) {
	s := newShip(1, core.Vec2{X: 500, Y: 400}, 350, 3)
	s.control(Action{TurnRate: MaxTurnRate})

	// 180 deg/s for 5 seconds is two and a half revolutions.
	for i := 0; i < 300; i++ {
		s.advance(testDt, DefaultMapWidth, DefaultMapHeight)
	}
	if s.Angle < 0 || s.Angle >= 360 {
		t.Errorf("angle = %v, want normalized to [0, 360)", s.Angle)
	}
	if want := core.NormalizeAngle(350 + 900); math.Abs(s.Angle-want) > 1e-6 {
		t.Errorf("angle = %v, want %v", s.Angle, want)
	}
}

func TestFireFromNoseAndCooldown(t *testing.T) {
	s := newShip(1, core.Vec2{X: 500, Y: 400}, 0, 3)
	if !s.CanFire() {
		t.Fatal("fresh ship cannot fire")
	}

	pos, vel := s.fire(60)
	want := core.Vec2{X: 500, Y: 400 + ShipRadius}
	if math.Abs(pos.X-want.X) > 1e-9 || math.Abs(pos.Y-want.Y) > 1e-9 {
		t.Errorf("muzzle = %v, want %v", pos, want)
	}
	if math.Abs(vel.Length()-BulletSpeed) > 1e-9 {
		t.Errorf("muzzle speed = %v, want %v", vel.Length(), BulletSpeed)
	}
	if s.CanFire() {
		t.Errorf("ship can fire again immediately")
	}
	for i := 0; i < 6; i++ {
		s.advance(testDt, DefaultMapWidth, DefaultMapHeight)
	}
	if !s.CanFire() {
		t.Errorf("cooldown did not expire after six ticks")
	}
}

func TestRespawnGraceEndsOnFire(t *testing.T) {
	s := newShip(1, core.Vec2{X: 120, Y: 90}, 0, 3)
	s.Lives--
	s.Vel = core.Vec2{X: 100}
	s.respawn(core.Vec2{X: 500, Y: 400}, 60)

	if !s.Invulnerable() {
		t.Fatal("no grace window after respawn")
	}
	if s.Pos != (core.Vec2{X: 500, Y: 400}) || s.Vel != (core.Vec2{}) {
		t.Errorf("respawn did not reset pose: pos=%v vel=%v", s.Pos, s.Vel)
	}

	s.fire(60)
	if s.Invulnerable() {
		t.Errorf("firing did not end the grace window")
	}
}

func TestMovingShipInheritsBulletVelocity(t *testing.T) {
	s := newShip(1, core.Vec2{X: 500, Y: 400}, 0, 3)
	s.Vel = core.Vec2{Y: 100}

	_, vel := s.fire(60)
	if math.Abs(vel.Y-(BulletSpeed+100)) > 1e-9 {
		t.Errorf("bullet velocity = %v, want ship speed added", vel)
	}
}
