package game

import (
	"math"
	"testing"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
)

func TestSplitAsteroidSpawnsChildren(t *testing.T) {
	sc := singleAsteroidScenario(core.Vec2{X: 300, Y: 300}, 0, SizeHuge)
	g := mustNewGame(t, testSettings(), sc)

	parent := g.asteroids[0]
	g.splitAsteroid(parent)

	if parent.Alive {
		t.Errorf("parent still alive after split")
	}
	if g.score.AsteroidsDestroyed != 1 {
		t.Errorf("destroyed = %d, want 1", g.score.AsteroidsDestroyed)
	}
	children := 0
	for _, a := range g.asteroids {
		if !a.Alive || a == parent {
			continue
		}
		children++
		if a.Size != SizeBig {
			t.Errorf("child size = %v, want %v", a.Size, SizeBig)
		}
		if a.Pos != parent.Pos {
			t.Errorf("child spawned at %v, want parent position %v", a.Pos, parent.Pos)
		}
		if got := a.Vel.Length(); math.Abs(got-SizeBig.Speed()) > 1e-9 {
			t.Errorf("child speed = %v, want %v", got, SizeBig.Speed())
		}
	}
	if children != ChildrenPerSplit {
		t.Errorf("children = %d, want %d", children, ChildrenPerSplit)
	}
}

func TestSplitSmallAsteroidLeavesNothing(t *testing.T) {
	sc := singleAsteroidScenario(core.Vec2{X: 300, Y: 300}, 0, SizeSmall)
	g := mustNewGame(t, testSettings(), sc)

	g.splitAsteroid(g.asteroids[0])
	if g.liveAsteroids() != 0 {
		t.Errorf("live asteroids = %d, want 0", g.liveAsteroids())
	}
	if g.score.AsteroidsDestroyed != 1 {
		t.Errorf("destroyed = %d, want 1", g.score.AsteroidsDestroyed)
	}
}

func TestBulletCreditsSingleDestruction(t *testing.T) {
	// Two overlapping asteroids on one bullet: only the first pair in
	// detection order consumes the bullet.
	sc := Scenario{
		Name:     "overlap",
		MapWidth: DefaultMapWidth, MapHeight: DefaultMapHeight,
		Asteroids: []AsteroidSpawn{
			{Pos: core.Vec2{X: 500, Y: 600}, Heading: 0, Size: SizeSmall},
			{Pos: core.Vec2{X: 500, Y: 600}, Heading: 180, Size: SizeSmall},
		},
	}
	g := mustNewGame(t, testSettings(), sc)

	g.spawnBullet(core.Vec2{X: 500, Y: 600}, core.Vec2{})
	pairs := g.detectCollisions()
	if len(pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(pairs))
	}
	g.resolveCollisions(pairs, 0.5)

	if g.liveAsteroids() != 1 {
		t.Errorf("live asteroids = %d, want 1", g.liveAsteroids())
	}
	if g.score.AsteroidsDestroyed != 1 {
		t.Errorf("destroyed = %d, want 1", g.score.AsteroidsDestroyed)
	}
}

func TestCollisionRequiresOverlap(t *testing.T) {
	a := &Entity{Pos: core.Vec2{X: 0, Y: 0}, Radius: 10, Alive: true}
	b := &Entity{Pos: core.Vec2{X: 20, Y: 0}, Radius: 10, Alive: true}
	if circlesOverlap(a, b) {
		t.Errorf("touching circles should not collide")
	}
	b.Pos.X = 19.9
	if !circlesOverlap(a, b) {
		t.Errorf("overlapping circles should collide")
	}
}

func TestDetectSkipsInvulnerableShip(t *testing.T) {
	sc := singleAsteroidScenario(core.Vec2{X: 500, Y: 400}, 0, SizeHuge)
	g := mustNewGame(t, testSettings(), sc)

	if got := len(g.detectCollisions()); got != 1 {
		t.Fatalf("pairs = %d, want 1", got)
	}
	g.ship.graceTicks = 10
	if got := len(g.detectCollisions()); got != 0 {
		t.Errorf("pairs with grace active = %d, want 0", got)
	}
}
