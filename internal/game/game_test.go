package game

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
)

// scriptedPilot replays the same action every tick.
type scriptedPilot struct {
	act Action
}

func (p scriptedPilot) Actions(Observation) Action {
	return p.act
}

func testSettings() Settings {
	s := DefaultSettings()
	s.Seed = 42
	return s
}

// singleAsteroidScenario places one asteroid explicitly so tests control the
// exact geometry.
func singleAsteroidScenario(pos core.Vec2, heading float64, size Size) Scenario {
	return Scenario{
		Name:      "test",
		MapWidth:  DefaultMapWidth,
		MapHeight: DefaultMapHeight,
		Asteroids: []AsteroidSpawn{{Pos: pos, Heading: heading, Size: size}},
	}
}

func mustNewGame(t *testing.T, s Settings, sc Scenario) *Game {
	t.Helper()
	g, err := NewGame(s, sc)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestTimeLimitEndsEpisode(t *testing.T) {
	s := testSettings()
	s.TimeLimit = 1.0
	g := mustNewGame(t, s, DefaultScenario())

	score, err := g.RunEpisode(scriptedPilot{})
	if err != nil {
		t.Fatalf("RunEpisode: %v", err)
	}
	if score.StoppingCondition != StopTimeLimit {
		t.Fatalf("stopping condition = %v, want %v", score.StoppingCondition, StopTimeLimit)
	}
	if score.FrameCount != 60 {
		t.Errorf("frame count = %d, want 60", score.FrameCount)
	}
	if score.Time < 1.0 {
		t.Errorf("time = %v, want >= 1.0", score.Time)
	}
	if score.LivesRemaining != 3 {
		t.Errorf("lives remaining = %d, want 3", score.LivesRemaining)
	}
	if score.ComputeCost != nil {
		t.Errorf("compute cost tracked without the flag set")
	}
}

func TestBulletDestroysLastAsteroid(t *testing.T) {
	// One small asteroid dead ahead of the ship, fleeing along the firing
	// line. The first bullet overtakes it well inside its lifetime.
	sc := singleAsteroidScenario(core.Vec2{X: 500, Y: 600}, 0, SizeSmall)
	g := mustNewGame(t, testSettings(), sc)

	score, err := g.RunEpisode(scriptedPilot{act: Action{Fire: true}})
	if err != nil {
		t.Fatalf("RunEpisode: %v", err)
	}
	if score.StoppingCondition != StopNoAsteroids {
		t.Fatalf("stopping condition = %v, want %v", score.StoppingCondition, StopNoAsteroids)
	}
	if score.AsteroidsDestroyed != 1 {
		t.Errorf("asteroids destroyed = %d, want 1", score.AsteroidsDestroyed)
	}
	if score.MaxAsteroids != 1 {
		t.Errorf("max asteroids = %d, want 1", score.MaxAsteroids)
	}
	if score.BulletsFired < 1 {
		t.Fatalf("bullets fired = %d, want >= 1", score.BulletsFired)
	}
	if got, want := score.Accuracy(), 1/float64(score.BulletsFired); got != want {
		t.Errorf("accuracy = %v, want %v", got, want)
	}
	if score.Deaths != 0 || len(score.Crashes) != 0 {
		t.Errorf("unexpected crashes: deaths=%d records=%d", score.Deaths, len(score.Crashes))
	}
}

func TestFatalCrashEndsEpisode(t *testing.T) {
	s := testSettings()
	s.StartingLives = 1
	sc := singleAsteroidScenario(core.Vec2{X: 500, Y: 400}, 0, SizeSmall)
	g := mustNewGame(t, s, sc)

	score, err := g.RunEpisode(scriptedPilot{})
	if err != nil {
		t.Fatalf("RunEpisode: %v", err)
	}
	if score.StoppingCondition != StopNoLives {
		t.Fatalf("stopping condition = %v, want %v", score.StoppingCondition, StopNoLives)
	}
	if score.Deaths != 1 || score.LivesRemaining != 0 {
		t.Errorf("deaths=%d lives=%d, want 1 and 0", score.Deaths, score.LivesRemaining)
	}
	if len(score.Crashes) != 1 {
		t.Fatalf("crash records = %d, want 1", len(score.Crashes))
	}
	crash := score.Crashes[0]
	if !crash.Fatal {
		t.Errorf("final crash not marked fatal")
	}
	if crash.Time <= 0 {
		t.Errorf("crash time = %v, want > 0", crash.Time)
	}
	if g.ShipAlive() {
		t.Errorf("ship alive after fatal crash")
	}

	// Terminal states are absorbing.
	stop, err := g.Step(Action{})
	if !errors.Is(err, ErrEpisodeAlreadyEnded) {
		t.Fatalf("Step after end: err = %v, want ErrEpisodeAlreadyEnded", err)
	}
	if stop != StopNoLives {
		t.Errorf("stop after end = %v, want %v", stop, StopNoLives)
	}
}

func TestNonFatalCrashRespawnsAndSplits(t *testing.T) {
	// A crash with lives left breaks up the asteroid that was hit. Small
	// pieces leave nothing behind, so this episode ends out of asteroids
	// even though the ship crashed.
	sc := singleAsteroidScenario(core.Vec2{X: 500, Y: 400}, 0, SizeSmall)
	g := mustNewGame(t, testSettings(), sc)

	score, err := g.RunEpisode(scriptedPilot{})
	if err != nil {
		t.Fatalf("RunEpisode: %v", err)
	}
	if score.StoppingCondition != StopNoAsteroids {
		t.Fatalf("stopping condition = %v, want %v", score.StoppingCondition, StopNoAsteroids)
	}
	if score.Deaths != 1 || score.LivesRemaining != 2 {
		t.Errorf("deaths=%d lives=%d, want 1 and 2", score.Deaths, score.LivesRemaining)
	}
	if len(score.Crashes) != 1 || score.Crashes[0].Fatal {
		t.Errorf("want exactly one non-fatal crash record, got %+v", score.Crashes)
	}
	if score.AsteroidsDestroyed != 1 {
		t.Errorf("asteroids destroyed = %d, want 1", score.AsteroidsDestroyed)
	}
	if !g.ShipInvulnerable() {
		t.Errorf("ship not in respawn grace after non-fatal crash")
	}
}

func TestRespawnReturnsToMapCenter(t *testing.T) {
	// The ship always comes back at the middle of the field, even when the
	// episode started it somewhere else.
	st := testSettings()
	start := core.Vec2{X: 100, Y: 100}
	st.StartingPos = &start
	sc := Scenario{
		Name:     "offset-start",
		MapWidth: DefaultMapWidth, MapHeight: DefaultMapHeight,
		Asteroids: []AsteroidSpawn{
			{Pos: start, Heading: 0, Size: SizeSmall},
			{Pos: core.Vec2{X: 900, Y: 700}, Heading: 0, Size: SizeSmall},
		},
	}
	g := mustNewGame(t, st, sc)

	if _, err := g.Step(Action{}); err != nil {
		t.Fatalf("Step: %v", err)
	}
	obs := g.Observe()
	if obs.Ship.Lives != 2 {
		t.Fatalf("lives = %d, want 2 after a non-fatal crash", obs.Ship.Lives)
	}
	want := core.Vec2{X: DefaultMapWidth / 2, Y: DefaultMapHeight / 2}
	if obs.Ship.Pos != want {
		t.Errorf("ship respawned at %v, want map center %v", obs.Ship.Pos, want)
	}
}

func TestCrashSequenceExhaustsLives(t *testing.T) {
	sc := Scenario{
		Name:     "far",
		MapWidth: DefaultMapWidth, MapHeight: DefaultMapHeight,
		Asteroids: []AsteroidSpawn{
			{Pos: core.Vec2{X: 100, Y: 100}, Heading: 0, Size: SizeHuge},
			{Pos: core.Vec2{X: 900, Y: 100}, Heading: 90, Size: SizeHuge},
		},
	}
	g := mustNewGame(t, testSettings(), sc)

	g.resolveShipCrash(g.asteroids[0], 1.0)
	if g.ship.Lives != 2 {
		t.Fatalf("lives after first crash = %d, want 2", g.ship.Lives)
	}
	if !g.ship.Invulnerable() {
		t.Fatalf("ship not invulnerable after respawn")
	}
	if g.asteroids[0].Alive {
		t.Errorf("hit asteroid still alive after non-fatal crash")
	}

	// A crash during the grace window does not count.
	g.resolveShipCrash(g.asteroids[1], 1.1)
	if g.ship.Lives != 2 || g.score.Deaths != 1 {
		t.Fatalf("grace window did not protect the ship: lives=%d deaths=%d", g.ship.Lives, g.score.Deaths)
	}

	g.ship.graceTicks = 0
	g.resolveShipCrash(g.asteroids[1], 2.0)
	if g.ship.Lives != 1 {
		t.Fatalf("lives after second crash = %d, want 1", g.ship.Lives)
	}

	g.ship.graceTicks = 0
	victim := g.asteroids[len(g.asteroids)-1]
	g.resolveShipCrash(victim, 3.0)
	if g.ship.Lives != 0 || g.ship.Alive {
		t.Fatalf("ship should be dead: lives=%d alive=%v", g.ship.Lives, g.ship.Alive)
	}
	if victim.Alive != true {
		t.Errorf("fatal crash should not break up the asteroid")
	}
	if len(g.score.Crashes) != 3 {
		t.Fatalf("crash records = %d, want 3", len(g.score.Crashes))
	}
	for i, c := range g.score.Crashes {
		wantFatal := i == 2
		if c.Fatal != wantFatal {
			t.Errorf("crash %d fatal = %v, want %v", i, c.Fatal, wantFatal)
		}
	}
	if g.score.Deaths != 3 {
		t.Errorf("deaths = %d, want 3", g.score.Deaths)
	}
}

func TestDeterministicEpisodes(t *testing.T) {
	run := func() Score {
		s := testSettings()
		s.Seed = 99
		s.RandomPosition = true
		s.RandomAngle = true
		s.TimeLimit = 2.0
		g := mustNewGame(t, s, DefaultScenario())
		score, err := g.RunEpisode(scriptedPilot{act: Action{Thrust: 240, TurnRate: 90, Fire: true}})
		if err != nil {
			t.Fatalf("RunEpisode: %v", err)
		}
		return score
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different scores:\n%+v\n%+v", first, second)
	}
	if first.FrameCount == 0 {
		t.Errorf("episode did not advance")
	}
}

func TestSeedChangesRandomPlacement(t *testing.T) {
	observe := func(seed int64) Observation {
		s := testSettings()
		s.Seed = seed
		s.RandomPosition = true
		g := mustNewGame(t, s, DefaultScenario())
		return g.Observe()
	}

	a, b := observe(1), observe(2)
	if a.Ship.Pos == b.Ship.Pos {
		t.Errorf("different seeds placed the ship at the same position %v", a.Ship.Pos)
	}
}

func TestInvalidActionAbortsTick(t *testing.T) {
	cases := []struct {
		name string
		act  Action
	}{
		{"nan thrust", Action{Thrust: math.NaN()}},
		{"inf turn rate", Action{TurnRate: math.Inf(1)}},
		{"thrust too high", Action{Thrust: MaxThrust + 1}},
		{"turn rate too low", Action{TurnRate: -MaxTurnRate - 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustNewGame(t, testSettings(), DefaultScenario())
			_, err := g.Step(tc.act)
			var invalid *InvalidActionError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want InvalidActionError", err)
			}
			if got := g.Telemetry().FrameCount; got != 0 {
				t.Errorf("frame count advanced to %d on a rejected action", got)
			}
		})
	}

	// Boundary values are legal.
	g := mustNewGame(t, testSettings(), DefaultScenario())
	if _, err := g.Step(Action{Thrust: MaxThrust, TurnRate: -MaxTurnRate}); err != nil {
		t.Fatalf("boundary action rejected: %v", err)
	}
}

func TestFinalScoreBeforeEnd(t *testing.T) {
	g := mustNewGame(t, testSettings(), DefaultScenario())
	if _, err := g.FinalScore(); !errors.Is(err, ErrEpisodeNotFinished) {
		t.Fatalf("err = %v, want ErrEpisodeNotFinished", err)
	}
	if _, err := g.Step(Action{}); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if _, err := g.FinalScore(); !errors.Is(err, ErrEpisodeNotFinished) {
		t.Fatalf("err after one tick = %v, want ErrEpisodeNotFinished", err)
	}
}

func TestComputeCostTracking(t *testing.T) {
	s := testSettings()
	s.TimeLimit = 0.5
	s.TrackComputeCost = true
	g := mustNewGame(t, s, DefaultScenario())

	score, err := g.RunEpisode(scriptedPilot{})
	if err != nil {
		t.Fatalf("RunEpisode: %v", err)
	}
	cost := score.ComputeCost
	if cost == nil {
		t.Fatal("compute cost missing with tracking enabled")
	}
	if cost.Samples != score.FrameCount {
		t.Errorf("samples = %d, want one per frame (%d)", cost.Samples, score.FrameCount)
	}
	if cost.Min < 0 || cost.Min > cost.Mean || cost.Mean > cost.Max {
		t.Errorf("inconsistent stats: min=%v mean=%v max=%v", cost.Min, cost.Mean, cost.Max)
	}
	if cost.Total < cost.Max {
		t.Errorf("total %v below max sample %v", cost.Total, cost.Max)
	}
}

func TestFireRateLimit(t *testing.T) {
	// Far-away asteroid keeps the episode running without interference.
	sc := singleAsteroidScenario(core.Vec2{X: 100, Y: 100}, 90, SizeHuge)
	g := mustNewGame(t, testSettings(), sc)

	for i := 0; i < 12; i++ {
		if _, err := g.Step(Action{Fire: true}); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	// At 60 Hz and 10 shots per second the cooldown is 6 ticks, so twelve
	// held-down ticks yield exactly two shots.
	if got := g.Telemetry().BulletsFired; got != 2 {
		t.Errorf("bullets fired = %d, want 2", got)
	}
}

func TestBulletExpires(t *testing.T) {
	sc := singleAsteroidScenario(core.Vec2{X: 100, Y: 400}, 90, SizeSmall)
	g := mustNewGame(t, testSettings(), sc)

	if _, err := g.Step(Action{Fire: true}); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := len(g.Observe().Bullets); got != 1 {
		t.Fatalf("bullets in flight = %d, want 1", got)
	}
	for i := 0; i < 61; i++ {
		if _, err := g.Step(Action{}); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if got := len(g.Observe().Bullets); got != 0 {
		t.Errorf("bullets in flight after lifetime = %d, want 0", got)
	}
	if got := g.Telemetry().BulletsFired; got != 1 {
		t.Errorf("bullets fired = %d, want 1", got)
	}
}

func TestShipWrapsAroundField(t *testing.T) {
	s := testSettings()
	s.StartingPos = &core.Vec2{X: 990, Y: 400}
	angle := 270.0 // heading along +X
	s.StartingAngle = &angle
	sc := singleAsteroidScenario(core.Vec2{X: 100, Y: 100}, 0, SizeSmall)
	g := mustNewGame(t, s, sc)

	for i := 0; i < 300; i++ {
		if _, err := g.Step(Action{Thrust: MaxThrust}); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		pos := g.Observe().Ship.Pos
		if pos.X < 0 || pos.X >= DefaultMapWidth || pos.Y < 0 || pos.Y >= DefaultMapHeight {
			t.Fatalf("ship left the field at tick %d: %v", i, pos)
		}
	}
	if score := g.Telemetry(); score.DistanceTravelled <= DefaultMapWidth {
		t.Errorf("distance travelled = %v, want more than one field width", score.DistanceTravelled)
	}
}

func TestConfigurationValidation(t *testing.T) {
	badAngle := math.NaN()
	cases := []struct {
		name     string
		mutate   func(*Settings, *Scenario)
		field    string
		scenario bool
	}{
		{"zero frequency", func(s *Settings, _ *Scenario) { s.Frequency = 0 }, "frequency", false},
		{"negative time limit", func(s *Settings, _ *Scenario) { s.TimeLimit = -1 }, "time_limit", false},
		{"zero lives", func(s *Settings, _ *Scenario) { s.StartingLives = 0 }, "starting_lives", false},
		{"nan angle", func(s *Settings, _ *Scenario) { s.StartingAngle = &badAngle }, "starting_angle", false},
		{"zero map", func(_ *Settings, sc *Scenario) { sc.MapWidth = 0 }, "map", true},
		{"zero count", func(_ *Settings, sc *Scenario) { sc.Count = 0 }, "asteroids.count", true},
		{"bad size", func(_ *Settings, sc *Scenario) { sc.Size = 5 }, "asteroids.size", true},
		{"spawn off field", func(_ *Settings, sc *Scenario) {
			sc.Asteroids = []AsteroidSpawn{{Pos: core.Vec2{X: -5, Y: 0}, Size: SizeSmall}}
		}, "asteroids", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testSettings()
			sc := DefaultScenario()
			tc.mutate(&s, &sc)
			_, err := NewGame(s, sc)
			var cfg *ConfigurationError
			if !errors.As(err, &cfg) {
				t.Fatalf("err = %v, want ConfigurationError", err)
			}
			if cfg.Field != tc.field {
				t.Errorf("field = %q, want %q", cfg.Field, tc.field)
			}
		})
	}
}

func TestStoppingConditionRoundTrip(t *testing.T) {
	for _, sc := range []StoppingCondition{StopNone, StopNoAsteroids, StopNoLives, StopTimeLimit} {
		got, err := ParseStoppingCondition(sc.Int())
		if err != nil {
			t.Fatalf("ParseStoppingCondition(%d): %v", sc.Int(), err)
		}
		if got != sc {
			t.Errorf("round trip %v -> %v", sc, got)
		}
	}
	if _, err := ParseStoppingCondition(9); err == nil {
		t.Errorf("unknown tag accepted")
	}
}
