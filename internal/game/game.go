package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
)

// Pilot is the external decision-maker boundary: given the current
// observable state, produce one control action. Implementations are treated
// as opaque; the controller never inspects them.
type Pilot interface {
	Actions(obs Observation) Action
}

// Game drives one episode. It exclusively owns the entity arena, the score
// record, and the stopping machine; nothing is shared across episodes. All
// randomness is drawn from a single seeded source held here, so identical
// settings, seed, and pilot decisions reproduce identical scores.
type Game struct {
	settings Settings
	scenario Scenario
	rng      *rand.Rand
	logger   *log.Logger
	dt       float64

	nextID    EntityID
	ship      *Ship
	asteroids []*Asteroid
	bullets   []*Bullet

	stop        StoppingCondition
	score       Score
	costSamples []float64
	finalized   bool
}

// Option customizes a Game at construction.
type Option func(*Game)

// WithLogger attaches a structured logger for crash and episode events.
// Without it the episode runs silently.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// NewGame validates the configuration and builds a fresh episode. Invalid
// settings or scenario fields fail here with a ConfigurationError before
// any simulation state exists.
func NewGame(settings Settings, scenario Scenario, opts ...Option) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		settings: settings,
		scenario: scenario,
		rng:      rand.New(rand.NewSource(settings.Seed)),
		logger:   log.New(io.Discard),
		dt:       1 / float64(settings.Frequency),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.placeShip()
	g.spawnInitialAsteroids()

	g.score.LivesRemaining = settings.StartingLives
	g.score.MaxAsteroids = scenario.maxDestructions()
	return g, nil
}

// Settings returns the episode's immutable configuration.
func (g *Game) Settings() Settings {
	return g.settings
}

// Scenario returns the episode's scenario definition.
func (g *Game) Scenario() Scenario {
	return g.scenario
}

func (g *Game) placeShip() {
	pos := g.scenario.Center()
	if g.settings.RandomPosition {
		pos = core.Vec2{
			X: g.rng.Float64() * g.scenario.MapWidth,
			Y: g.rng.Float64() * g.scenario.MapHeight,
		}
	} else if g.settings.StartingPos != nil {
		pos = *g.settings.StartingPos
	}

	angle := 0.0
	if g.settings.RandomAngle {
		angle = g.rng.Float64() * 360
	} else if g.settings.StartingAngle != nil {
		angle = *g.settings.StartingAngle
	}

	g.ship = newShip(g.allocID(), pos, angle, g.settings.StartingLives)
}

func (g *Game) allocID() EntityID {
	g.nextID++
	return g.nextID
}

func (g *Game) spawnAsteroid(pos core.Vec2, heading float64, size Size) *Asteroid {
	a := newAsteroid(g.allocID(), pos.Wrap(g.scenario.MapWidth, g.scenario.MapHeight), heading, size)
	g.asteroids = append(g.asteroids, a)
	return a
}

func (g *Game) spawnBullet(pos, vel core.Vec2) {
	b := newBullet(g.allocID(), pos.Wrap(g.scenario.MapWidth, g.scenario.MapHeight), vel, g.settings.Frequency)
	g.bullets = append(g.bullets, b)
}

// spawnInitialAsteroids places the scenario's starting population, keeping
// randomized spawns a safe distance from the ship start.
func (g *Game) spawnInitialAsteroids() {
	if len(g.scenario.Asteroids) > 0 {
		for _, spawn := range g.scenario.Asteroids {
			g.spawnAsteroid(spawn.Pos, spawn.Heading, spawn.Size)
		}
		return
	}

	for i := 0; i < g.scenario.Count; i++ {
		pos := g.ship.Pos
		for try := 0; try < 100; try++ {
			pos = core.Vec2{
				X: g.rng.Float64() * g.scenario.MapWidth,
				Y: g.rng.Float64() * g.scenario.MapHeight,
			}
			if pos.Dist(g.ship.Pos) >= safeSpawnDistance {
				break
			}
		}
		heading := g.rng.Float64() * 360
		g.spawnAsteroid(pos, heading, g.scenario.Size)
	}
}

func (g *Game) liveAsteroids() int {
	n := 0
	for _, a := range g.asteroids {
		if a.Alive {
			n++
		}
	}
	return n
}

// Step advances the episode by exactly one tick: apply the action, move
// every live entity with toroidal wraparound, detect and resolve
// collisions, advance elapsed time, run the stopping machine, and update
// the score. It returns the (possibly still non-terminal) stopping
// condition after the tick.
//
// An out-of-vocabulary action aborts the tick with episode state unchanged;
// calling Step after termination always fails.
func (g *Game) Step(a Action) (StoppingCondition, error) {
	if g.stop.Terminal() {
		return g.stop, ErrEpisodeAlreadyEnded
	}
	if err := a.validate(); err != nil {
		return g.stop, err
	}

	w, h := g.scenario.MapWidth, g.scenario.MapHeight

	if g.ship.Alive {
		g.ship.control(a)
		if a.Fire && g.ship.CanFire() {
			pos, vel := g.ship.fire(g.settings.Frequency)
			g.spawnBullet(pos, vel)
			g.score.BulletsFired++
		}
		g.ship.advance(g.dt, w, h)
		g.score.DistanceTravelled += g.ship.Vel.Length() * g.dt
	}
	for _, ast := range g.asteroids {
		if ast.Alive {
			ast.Entity.advance(g.dt, w, h)
		}
	}
	for _, b := range g.bullets {
		if b.Alive {
			b.advance(g.dt, w, h)
		}
	}

	// Collisions resolve at the time this tick completes.
	now := float64(g.score.FrameCount+1) / float64(g.settings.Frequency)
	g.resolveCollisions(g.detectCollisions(), now)
	g.compact()

	g.score.FrameCount++
	g.score.Time = now

	stop := g.evaluateStopping()
	g.score.LivesRemaining = g.ship.Lives
	if stop.Terminal() {
		g.finalize(stop)
	}
	return stop, nil
}

// compact drops dead bullets and asteroids from the arena. Entity IDs stay
// unique for the episode lifetime, so stale pair references cannot alias a
// new entity.
func (g *Game) compact() {
	liveA := g.asteroids[:0]
	for _, a := range g.asteroids {
		if a.Alive {
			liveA = append(liveA, a)
		}
	}
	g.asteroids = liveA

	liveB := g.bullets[:0]
	for _, b := range g.bullets {
		if b.Alive {
			liveB = append(liveB, b)
		}
	}
	g.bullets = liveB
}

// finalize freezes the score exactly once at termination.
func (g *Game) finalize(stop StoppingCondition) {
	if g.finalized {
		return
	}
	g.finalized = true
	g.score.StoppingCondition = stop
	if g.settings.TrackComputeCost {
		g.score.ComputeCost = summarizeCost(g.costSamples)
	}
	g.logger.Info("episode over",
		"reason", stop.String(),
		"t", g.score.Time,
		"lives", g.score.LivesRemaining,
		"destroyed", g.score.AsteroidsDestroyed,
	)
}

// Stopped returns the current stopping condition without advancing.
func (g *Game) Stopped() StoppingCondition {
	return g.stop
}

// Telemetry returns an in-progress copy of the score for display. It never
// finalizes anything; use FinalScore for the authoritative record.
func (g *Game) Telemetry() Score {
	return g.copyScore()
}

// FinalScore returns the frozen episode record. Calling it before a
// terminal stopping condition fails with ErrEpisodeNotFinished.
func (g *Game) FinalScore() (Score, error) {
	if !g.stop.Terminal() {
		return Score{}, ErrEpisodeNotFinished
	}
	return g.copyScore(), nil
}

func (g *Game) copyScore() Score {
	s := g.score
	s.Crashes = make([]CrashRecord, len(g.score.Crashes))
	copy(s.Crashes, g.score.Crashes)
	if g.score.ComputeCost != nil {
		cc := *g.score.ComputeCost
		s.ComputeCost = &cc
	}
	return s
}

// RunEpisode drives the pilot-step loop until a terminal condition and
// returns the finalized score. When compute-cost tracking is enabled the
// wall-clock duration of each pilot call is measured and folded into the
// score; the measurement is observational only and never paces the
// simulated tick duration.
func (g *Game) RunEpisode(p Pilot) (Score, error) {
	for !g.stop.Terminal() {
		if _, err := g.Step(g.PilotAction(p)); err != nil {
			return Score{}, err
		}
	}
	return g.FinalScore()
}

// PilotAction asks the pilot for this tick's action, timing the call when
// compute-cost tracking is enabled. External step drivers such as the
// viewer use it so cost accounting matches RunEpisode.
func (g *Game) PilotAction(p Pilot) Action {
	obs := g.Observe()
	if !g.settings.TrackComputeCost {
		return p.Actions(obs)
	}
	began := time.Now()
	action := p.Actions(obs)
	g.costSamples = append(g.costSamples, time.Since(began).Seconds())
	return action
}
