package tui

import (
	"strings"
	"testing"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

func TestShipGlyphQuadrants(t *testing.T) {
	cases := []struct {
		angle float64
		want  rune
	}{
		{0, '^'},
		{90, '<'},
		{180, 'v'},
		{270, '>'},
		{359, '^'},
	}
	for _, tc := range cases {
		if got := shipGlyph(tc.angle); got != tc.want {
			t.Errorf("shipGlyph(%v) = %q, want %q", tc.angle, got, tc.want)
		}
	}
}

func TestDrawObservation(t *testing.T) {
	screen := core.NewScreen(50, 21)
	obs := game.Observation{
		MapWidth:  1000,
		MapHeight: 800,
		Ship:      game.ShipState{Pos: core.Vec2{X: 500, Y: 400}},
		Asteroids: []game.AsteroidView{
			{Pos: core.Vec2{X: 100, Y: 700}, Size: game.SizeHuge},
			{Pos: core.Vec2{X: 900, Y: 100}, Size: game.SizeSmall},
		},
		Bullets: []game.BulletView{
			{Pos: core.Vec2{X: 500, Y: 600}},
		},
	}
	drawObservation(screen, obs, true, false)

	body := screen.String()
	for _, glyph := range []string{"^", "@", ".", "'"} {
		if !strings.Contains(body, glyph) {
			t.Errorf("rendered field missing %q:\n%s", glyph, body)
		}
	}
	// Top row is reserved for the HUD.
	if row := screen.Row(0); strings.TrimSpace(row) != "" {
		t.Errorf("entities drawn into the HUD row: %q", row)
	}
	// Higher field Y means a smaller screen row.
	if screen.Get(25, 10) != '^' {
		t.Errorf("ship not projected to field center, center row: %q", screen.Row(10))
	}
}

func TestHudLine(t *testing.T) {
	line := hudLine(game.Score{
		Time:               12.5,
		LivesRemaining:     2,
		AsteroidsDestroyed: 7,
		MaxAsteroids:       40,
		BulletsFired:       14,
	}, "hunter")
	for _, want := range []string{"hunter", "lives=2", "rocks=7/40", "shots=14", "50%"} {
		if !strings.Contains(line, want) {
			t.Errorf("hud %q missing %q", line, want)
		}
	}
}
