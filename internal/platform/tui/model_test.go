package tui

import (
	"strings"
	"testing"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

func viewerConfig(track bool) ViewerConfig {
	return ViewerConfig{
		PilotName: "idle",
		Settings: game.Settings{
			Frequency:        60,
			TimeLimit:        0.05,
			StartingLives:    3,
			Seed:             7,
			TrackComputeCost: track,
		},
		Scenario: game.DefaultScenario(),
		ScreenW:  40,
		ScreenH:  12,
	}
}

func runToTerminal(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 20 && !m.stop.Terminal(); i++ {
		next, _ := m.handleTick()
		m = next.(Model)
	}
	if !m.stop.Terminal() {
		t.Fatal("episode did not terminate")
	}
	return m
}

func TestViewerRecordsComputeCost(t *testing.T) {
	m, err := NewModel(viewerConfig(true), nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m = runToTerminal(t, m)

	score, err := m.FinalScore()
	if err != nil {
		t.Fatalf("FinalScore: %v", err)
	}
	if score.ComputeCost == nil {
		t.Fatal("compute cost tracking enabled but no record on the score")
	}
	if score.ComputeCost.Samples != score.FrameCount || score.ComputeCost.Samples == 0 {
		t.Errorf("cost samples = %d, want one per frame (%d)",
			score.ComputeCost.Samples, score.FrameCount)
	}
}

func TestViewerSkipsComputeCostWhenDisabled(t *testing.T) {
	m, err := NewModel(viewerConfig(false), nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m = runToTerminal(t, m)

	score, err := m.FinalScore()
	if err != nil {
		t.Fatalf("FinalScore: %v", err)
	}
	if score.ComputeCost != nil {
		t.Errorf("unexpected compute cost record: %+v", score.ComputeCost)
	}
}

func TestViewKeepsAllFieldRows(t *testing.T) {
	cfg := viewerConfig(false)
	m, err := NewModel(cfg, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	out := m.View()
	// One HUD line plus the field rows below the reserved top row.
	if got, want := strings.Count(out, "\n"), cfg.ScreenH-1; got != want {
		t.Errorf("view has %d newlines, want %d", got, want)
	}
	if !strings.Contains(out, cfg.PilotName) {
		t.Errorf("HUD missing pilot name %q", cfg.PilotName)
	}
}
