package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

var (
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)
	overlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// asteroidGlyphs maps size classes to display runes, biggest to smallest.
var asteroidGlyphs = map[game.Size]rune{
	game.SizeHuge:   '@',
	game.SizeBig:    'O',
	game.SizeMedium: 'o',
	game.SizeSmall:  '.',
}

// shipGlyph picks an arrow for the ship's heading quadrant. Zero degrees
// points up the screen.
func shipGlyph(angle float64) rune {
	switch {
	case angle < 45 || angle >= 315:
		return '^'
	case angle < 135:
		return '<'
	case angle < 225:
		return 'v'
	default:
		return '>'
	}
}

// drawObservation projects the play field into the screen buffer. The top
// row is reserved for the HUD; play-field Y grows upward while screen Y
// grows downward, so the projection flips it.
func drawObservation(dst *core.Screen, obs game.Observation, shipAlive, shipGrace bool) {
	dst.Clear()

	fieldH := dst.Height() - 1
	if fieldH < 1 || dst.Width() < 1 {
		return
	}
	sx := float64(dst.Width()) / obs.MapWidth
	sy := float64(fieldH) / obs.MapHeight

	project := func(p core.Vec2) (int, int) {
		x := int(p.X * sx)
		y := fieldH - 1 - int(p.Y*sy)
		return x, y + 1
	}

	for _, b := range obs.Bullets {
		x, y := project(b.Pos)
		dst.Set(x, y, '\'')
	}
	for _, a := range obs.Asteroids {
		x, y := project(a.Pos)
		dst.Set(x, y, asteroidGlyphs[a.Size])
	}
	if shipAlive {
		glyph := shipGlyph(obs.Ship.Angle)
		if shipGrace && obs.Frame%8 < 4 {
			glyph = '+'
		}
		x, y := project(obs.Ship.Pos)
		dst.Set(x, y, glyph)
	}
}

// hudLine formats the running score for the top row.
func hudLine(telemetry game.Score, pilot string) string {
	return fmt.Sprintf(" %s  t=%6.2fs  lives=%d  rocks=%d/%d  shots=%d  acc=%4.0f%%",
		pilot,
		telemetry.Time,
		telemetry.LivesRemaining,
		telemetry.AsteroidsDestroyed,
		telemetry.MaxAsteroids,
		telemetry.BulletsFired,
		telemetry.Accuracy()*100,
	)
}

// finalOverlay is drawn across the middle of the field once the episode is
// over.
func finalOverlay(dst *core.Screen, stop game.StoppingCondition) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid, fmt.Sprintf("EPISODE OVER: %s", stop))
	dst.DrawTextCentered(mid+1, "r restart / q quit")
}
