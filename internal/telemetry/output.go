// Package telemetry handles structured scoring output with CSV logging.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

// EpisodeRow is one finished episode in episodes.csv.
type EpisodeRow struct {
	Pilot              string  `csv:"pilot"`
	Scenario           string  `csv:"scenario"`
	Seed               int64   `csv:"seed"`
	StopReason         string  `csv:"stop_reason"`
	SimTime            float64 `csv:"sim_time"`
	FrameCount         int     `csv:"frame_count"`
	LivesRemaining     int     `csv:"lives_remaining"`
	AsteroidsDestroyed int     `csv:"asteroids_destroyed"`
	MaxAsteroids       int     `csv:"max_asteroids"`
	BulletsFired       int     `csv:"bullets_fired"`
	Deaths             int     `csv:"deaths"`
	Accuracy           float64 `csv:"accuracy"`
	DistanceTravelled  float64 `csv:"distance_travelled"`
	ComputeCostTotal   float64 `csv:"compute_cost_total"`
	ComputeCostMean    float64 `csv:"compute_cost_mean"`
}

// CrashRow is one ship crash in crashes.csv.
type CrashRow struct {
	Pilot    string  `csv:"pilot"`
	Scenario string  `csv:"scenario"`
	Seed     int64   `csv:"seed"`
	Time     float64 `csv:"time"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Fatal    bool    `csv:"fatal"`
}

// OutputManager appends episode and crash records to CSV files in one
// output directory.
type OutputManager struct {
	dir         string
	episodeFile *os.File
	crashFile   *os.File

	// Track if headers have been written
	episodeHeaderWritten bool
	crashHeaderWritten   bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "episodes.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating episodes.csv: %w", err)
	}
	om.episodeFile = f

	f, err = os.Create(filepath.Join(dir, "crashes.csv"))
	if err != nil {
		om.episodeFile.Close()
		return nil, fmt.Errorf("creating crashes.csv: %w", err)
	}
	om.crashFile = f

	return om, nil
}

// WriteEpisode appends a finished episode, and its crash records, to the
// CSV files.
func (om *OutputManager) WriteEpisode(pilot, scenario string, seed int64, score game.Score) error {
	if om == nil {
		return nil
	}

	row := EpisodeRow{
		Pilot:              pilot,
		Scenario:           scenario,
		Seed:               seed,
		StopReason:         score.StoppingCondition.String(),
		SimTime:            score.Time,
		FrameCount:         score.FrameCount,
		LivesRemaining:     score.LivesRemaining,
		AsteroidsDestroyed: score.AsteroidsDestroyed,
		MaxAsteroids:       score.MaxAsteroids,
		BulletsFired:       score.BulletsFired,
		Deaths:             score.Deaths,
		Accuracy:           score.Accuracy(),
		DistanceTravelled:  score.DistanceTravelled,
	}
	if score.ComputeCost != nil {
		row.ComputeCostTotal = score.ComputeCost.Total
		row.ComputeCostMean = score.ComputeCost.Mean
	}

	records := []EpisodeRow{row}
	if !om.episodeHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.episodeFile); err != nil {
			return fmt.Errorf("writing episode: %w", err)
		}
		om.episodeHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.episodeFile); err != nil {
			return fmt.Errorf("writing episode: %w", err)
		}
	}

	return om.writeCrashes(pilot, scenario, seed, score.Crashes)
}

func (om *OutputManager) writeCrashes(pilot, scenario string, seed int64, crashes []game.CrashRecord) error {
	if len(crashes) == 0 {
		return nil
	}

	rows := make([]CrashRow, 0, len(crashes))
	for _, c := range crashes {
		rows = append(rows, CrashRow{
			Pilot:    pilot,
			Scenario: scenario,
			Seed:     seed,
			Time:     c.Time,
			X:        c.Pos.X,
			Y:        c.Pos.Y,
			Fatal:    c.Fatal,
		})
	}

	if !om.crashHeaderWritten {
		if err := gocsv.Marshal(rows, om.crashFile); err != nil {
			return fmt.Errorf("writing crashes: %w", err)
		}
		om.crashHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(rows, om.crashFile); err != nil {
			return fmt.Errorf("writing crashes: %w", err)
		}
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.episodeFile != nil {
		if err := om.episodeFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.crashFile != nil {
		if err := om.crashFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
