package game

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
)

// CrashRecord captures one ship-destroying collision: the simulation time
// and position at the moment of impact. The terminal crash is recorded too.
type CrashRecord struct {
	Time  float64
	Pos   core.Vec2
	Fatal bool
}

// ComputeCost summarizes wall-clock time spent inside pilot decisions over
// one episode. It is purely observational; the fixed tick duration is never
// affected by it.
type ComputeCost struct {
	Total   float64 // seconds, summed over all pilot calls
	Mean    float64
	Median  float64
	Min     float64
	Max     float64
	Samples int
}

// Score is the single-episode telemetry record. The controller mutates it
// every tick and freezes it exactly once when a terminal stopping condition
// is reached.
type Score struct {
	Time               float64
	FrameCount         int
	StoppingCondition  StoppingCondition
	LivesRemaining     int
	AsteroidsDestroyed int
	BulletsFired       int
	Deaths             int
	DistanceTravelled  float64
	MaxAsteroids       int // total destructions the scenario can ever yield
	Crashes            []CrashRecord
	ComputeCost        *ComputeCost // nil unless tracking was enabled
}

// Accuracy is the fraction of fired bullets that destroyed an asteroid
// directly or through the pieces they produced.
func (s Score) Accuracy() float64 {
	if s.BulletsFired == 0 {
		return 0
	}
	return float64(s.AsteroidsDestroyed) / float64(s.BulletsFired)
}

// summarizeCost reduces per-call pilot durations (seconds) to the summary
// statistics the score reports.
func summarizeCost(samples []float64) *ComputeCost {
	cost := &ComputeCost{Samples: len(samples)}
	if len(samples) == 0 {
		return cost
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	cost.Total = floats.Sum(sorted)
	cost.Mean = stat.Mean(sorted, nil)
	cost.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	cost.Min = floats.Min(sorted)
	cost.Max = floats.Max(sorted)
	return cost
}
