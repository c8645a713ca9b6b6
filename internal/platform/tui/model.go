package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/agent"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/core"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
	"github.com/TimArnettThales/FuzzyAsteroids/internal/storage"
)

// ViewerConfig carries everything a spectator session needs to run one
// pilot against one scenario.
type ViewerConfig struct {
	PilotName string
	Settings  game.Settings
	Scenario  game.Scenario
	ScreenW   int
	ScreenH   int
}

// Model is the Bubble Tea model for watching a pilot fly an episode. The
// pilot drives every control decision; keys only pause, restart, or quit
// the viewer.
type Model struct {
	cfg    ViewerConfig
	g      *game.Game
	pilot  game.Pilot
	screen *core.Screen
	store  *storage.Store

	stop       game.StoppingCondition
	paused     bool
	quitting   bool
	scoreSaved bool
	err        error
}

// NewModel creates a viewer model for the given configuration.
func NewModel(cfg ViewerConfig, store *storage.Store) (Model, error) {
	m := Model{
		cfg:    cfg,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
	}
	if err := m.resetEpisode(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// resetEpisode builds a fresh game and pilot with the configured seed, so a
// restart replays the identical episode.
func (m *Model) resetEpisode() error {
	g, err := game.NewGame(m.cfg.Settings, m.cfg.Scenario)
	if err != nil {
		return err
	}
	pilot, err := agent.Create(m.cfg.PilotName)
	if err != nil {
		return err
	}
	m.g = g
	m.pilot = pilot
	m.stop = game.StopNone
	m.scoreSaved = false
	m.paused = false
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.Settings.Frequency)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "p", " ":
		if !m.stop.Terminal() {
			m.paused = !m.paused
		}
	case "r":
		if err := m.resetEpisode(); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.stop.Terminal() {
		return m, tickCmd(m.cfg.Settings.Frequency)
	}

	stop, err := m.g.Step(m.g.PilotAction(m.pilot))
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.stop = stop

	if stop.Terminal() && !m.scoreSaved {
		if score, scoreErr := m.g.FinalScore(); scoreErr == nil && m.store != nil {
			//nolint:errcheck // Best-effort save, the viewer keeps running
			m.store.SaveEpisode(m.cfg.PilotName, m.cfg.Scenario.Name, m.cfg.Settings.Seed, score)
		}
		m.scoreSaved = true
	}
	return m, tickCmd(m.cfg.Settings.Frequency)
}

// Err returns the error that terminated the viewer, if any.
func (m Model) Err() error {
	return m.err
}

// FinalScore exposes the finished episode record once the run has ended.
func (m Model) FinalScore() (game.Score, error) {
	return m.g.FinalScore()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	obs := m.g.Observe()
	drawObservation(m.screen, obs, m.g.ShipAlive(), m.g.ShipInvulnerable())
	if m.stop.Terminal() {
		finalOverlay(m.screen, m.stop)
	}

	hud := hudLine(m.g.Telemetry(), m.cfg.PilotName)
	if m.paused {
		hud += "  [paused]"
	}

	body := m.screen.String()
	// Replace the reserved top row with the styled HUD. Trim to the first
	// newline so multi-byte glyphs on row 0 cannot skew the cut.
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx:]
	}
	return hudStyle.Render(hud) + fieldStyle.Render(body)
}

// Run starts the Bubble Tea program for a local spectator session and
// returns the final score when the viewer exits after a finished episode.
func Run(cfg ViewerConfig, store *storage.Store) (game.Score, error) {
	model, err := NewModel(cfg, store)
	if err != nil {
		return game.Score{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finished, err := p.Run()
	if err != nil {
		return game.Score{}, err
	}
	final := finished.(Model)
	if final.Err() != nil {
		return game.Score{}, final.Err()
	}
	if score, scoreErr := final.FinalScore(); scoreErr == nil {
		return score, nil
	}
	return game.Score{}, nil
}
