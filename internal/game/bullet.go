package game

import "github.com/TimArnettThales/FuzzyAsteroids/internal/core"

const (
	BulletSpeed       = 800.0 // muzzle speed added along the ship heading
	BulletRadius      = 4.0
	BulletLifeSeconds = 1.0 // removed when this elapses without a hit
)

// Bullet is a short-lived projectile. It dies at its first collision or
// when its time-to-live runs out, whichever comes first.
type Bullet struct {
	Entity
	TTL int // remaining ticks
}

func newBullet(id EntityID, pos, vel core.Vec2, frequency int) *Bullet {
	ttl := int(BulletLifeSeconds * float64(frequency))
	if ttl < 1 {
		ttl = 1
	}
	return &Bullet{
		Entity: Entity{
			ID:     id,
			Kind:   KindBullet,
			Pos:    pos,
			Vel:    vel,
			Radius: BulletRadius,
			Alive:  true,
		},
		TTL: ttl,
	}
}

// advance moves the bullet and expires it when the TTL elapses.
func (b *Bullet) advance(dt, w, h float64) {
	b.Entity.advance(dt, w, h)
	b.TTL--
	if b.TTL <= 0 {
		b.Alive = false
	}
}
