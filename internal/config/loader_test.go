package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, sc, err := cfg.ToGame()
	if err != nil {
		t.Fatalf("ToGame: %v", err)
	}
	if s.Frequency != 60 || s.StartingLives != 3 {
		t.Errorf("default settings = %+v", s)
	}
	if sc.MapWidth != 1000 || sc.MapHeight != 800 || sc.Count != 3 || sc.Size != game.SizeHuge {
		t.Errorf("default scenario = %+v", sc)
	}
}

func TestLoadCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	body := `settings:
  frequency: 30
  time_limit: 45.5
  starting_lives: 5
  track_compute_cost: true
  seed: 1234
scenario:
  name: gauntlet
  map_width: 640
  map_height: 480
  asteroids:
    - {x: 100, y: 100, heading: 45, size: 4}
    - {x: 500, y: 300, heading: 180, size: 2}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, sc, err := cfg.ToGame()
	if err != nil {
		t.Fatalf("ToGame: %v", err)
	}
	if s.Frequency != 30 || s.TimeLimit != 45.5 || s.StartingLives != 5 {
		t.Errorf("settings = %+v", s)
	}
	if !s.TrackComputeCost || s.Seed != 1234 {
		t.Errorf("settings flags = %+v", s)
	}
	if sc.Name != "gauntlet" || len(sc.Asteroids) != 2 {
		t.Fatalf("scenario = %+v", sc)
	}
	if sc.Asteroids[1].Size != game.SizeMedium || sc.Asteroids[1].Heading != 180 {
		t.Errorf("asteroid entry = %+v", sc.Asteroids[1])
	}
}

func TestLoadMissingCustomFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing custom path accepted")
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario.Size = 7
	_, _, err := cfg.ToGame()
	var configErr *game.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
}

func TestMinimalFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	if err := os.WriteFile(path, []byte("settings:\n  seed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, sc, err := cfg.ToGame()
	if err != nil {
		t.Fatalf("ToGame: %v", err)
	}
	if s.Seed != 9 {
		t.Errorf("seed = %d, want 9", s.Seed)
	}
	if s.Frequency != 60 || sc.Count != 3 {
		t.Errorf("defaults not applied: %+v %+v", s, sc)
	}
}
