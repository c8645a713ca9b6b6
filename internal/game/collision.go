package game

// CollisionPair references two colliding entities by stable ID. A is always
// the ship or a bullet, B always an asteroid; same-role pairs never collide.
type CollisionPair struct {
	A EntityID
	B EntityID
}

// circlesOverlap is the circular collision approximation: centers strictly
// closer than the sum of the radii.
func circlesOverlap(a, b *Entity) bool {
	r := a.Radius + b.Radius
	return a.Pos.DistSq(b.Pos) < r*r
}

// detectCollisions returns every colliding pair for this tick in a fixed
// order: bullet pairs in spawn order first, then ship pairs. All pairs are
// reported; resolution decides what still applies once earlier pairs have
// destroyed or respawned an entity.
func (g *Game) detectCollisions() []CollisionPair {
	var pairs []CollisionPair

	for _, b := range g.bullets {
		if !b.Alive {
			continue
		}
		for _, a := range g.asteroids {
			if !a.Alive {
				continue
			}
			if circlesOverlap(&b.Entity, &a.Entity) {
				pairs = append(pairs, CollisionPair{A: b.ID, B: a.ID})
			}
		}
	}

	if g.ship.Alive && !g.ship.Invulnerable() {
		for _, a := range g.asteroids {
			if !a.Alive {
				continue
			}
			if circlesOverlap(&g.ship.Entity, &a.Entity) {
				pairs = append(pairs, CollisionPair{A: g.ship.ID, B: a.ID})
			}
		}
	}

	return pairs
}

func (g *Game) findAsteroid(id EntityID) *Asteroid {
	for _, a := range g.asteroids {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (g *Game) findBullet(id EntityID) *Bullet {
	for _, b := range g.bullets {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// resolveCollisions applies every pair that is still live when its turn
// comes. A bullet is deactivated by its first hit so it can never earn
// destruction credit twice; a ship crash either respawns the ship under a
// grace window (making later ship pairs this tick moot) or kills it.
func (g *Game) resolveCollisions(pairs []CollisionPair, now float64) {
	for _, p := range pairs {
		asteroid := g.findAsteroid(p.B)
		if asteroid == nil || !asteroid.Alive {
			continue
		}

		if p.A == g.ship.ID {
			g.resolveShipCrash(asteroid, now)
			continue
		}

		bullet := g.findBullet(p.A)
		if bullet == nil || !bullet.Alive {
			continue
		}
		bullet.Alive = false
		g.splitAsteroid(asteroid)
	}
}

// resolveShipCrash handles a ship-asteroid collision. Every crash, fatal or
// not, appends a crash record and emits a structured log line.
func (g *Game) resolveShipCrash(asteroid *Asteroid, now float64) {
	if !g.ship.Alive || g.ship.Invulnerable() {
		return
	}

	g.ship.Lives--
	g.score.Deaths++

	fatal := g.ship.Lives == 0
	g.score.Crashes = append(g.score.Crashes, CrashRecord{
		Time:  now,
		Pos:   g.ship.Pos,
		Fatal: fatal,
	})
	g.logger.Warn("ship crashed",
		"t", now,
		"x", g.ship.Pos.X,
		"y", g.ship.Pos.Y,
		"lives_left", g.ship.Lives,
		"fatal", fatal,
	)

	if fatal {
		// Final crash: the ship stays dead where it was hit, no respawn.
		g.ship.Alive = false
		return
	}

	// Break up the asteroid that was hit so the respawned ship does not
	// collide with it again immediately, then reset the ship.
	g.splitAsteroid(asteroid)
	g.ship.respawn(g.scenario.Center(), g.settings.Frequency)
}

// splitAsteroid destroys an asteroid, crediting exactly one destruction,
// and spawns next-size-down children at the impact point with randomized
// outward headings drawn from the episode RNG.
func (g *Game) splitAsteroid(a *Asteroid) {
	a.Alive = false
	g.score.AsteroidsDestroyed++

	if a.Size == SizeSmall {
		return
	}
	for i := 0; i < ChildrenPerSplit; i++ {
		heading := g.rng.Float64() * 360
		g.spawnAsteroid(a.Pos, heading, a.Size-1)
	}
}
