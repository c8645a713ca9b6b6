package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/storage"
)

const maxBrowserRows = 100

// BrowserKeyMap defines the key bindings for the episode browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Quit}}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "recent/best"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model for browsing recorded episodes.
type BrowserModel struct {
	store    *storage.Store
	scenario string
	records  []storage.EpisodeRecord
	table    table.Model
	help     help.Model
	keys     BrowserKeyMap
	width    int
	height   int
	showBest bool
	quitting bool
}

// NewBrowserModel creates an episode browser over the given store.
func NewBrowserModel(store *storage.Store, scenario string, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		store:    store,
		scenario: scenario,
		keys:     DefaultBrowserKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadEpisodes()
	return m
}

func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Pilot", Width: 12},
		{Title: "Stop", Width: 18},
		{Title: "Time", Width: 8},
		{Title: "Rocks", Width: 9},
		{Title: "Acc", Width: 6},
		{Title: "Deaths", Width: 6},
		{Title: "Date", Width: 14},
	}

	height := m.height - 6
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *BrowserModel) loadEpisodes() {
	if m.store == nil {
		m.records = nil
		m.updateTableRows()
		return
	}

	var records []storage.EpisodeRecord
	var err error
	if m.showBest {
		records, err = m.store.BestEpisodes(m.scenario, maxBrowserRows)
	} else {
		records, err = m.store.RecentEpisodes(maxBrowserRows)
	}
	if err != nil {
		m.records = nil
	} else {
		m.records = records
	}
	m.updateTableRows()
}

func (m *BrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			r.Pilot,
			r.StopReason.String(),
			fmt.Sprintf("%.1fs", r.SimTime),
			fmt.Sprintf("%d/%d", r.AsteroidsDestroyed, r.MaxAsteroids),
			fmt.Sprintf("%.0f%%", r.Accuracy*100),
			fmt.Sprintf("%d", r.Deaths),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			m.showBest = !m.showBest
			m.loadEpisodes()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	title := "RECENT EPISODES"
	if m.showBest {
		title = fmt.Sprintf("BEST EPISODES - %s", m.scenario)
	}

	var b strings.Builder
	b.WriteString(hudStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// RunBrowser starts the episode browser program.
func RunBrowser(store *storage.Store, scenario string, width, height int) error {
	model := NewBrowserModel(store, scenario, width, height)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
