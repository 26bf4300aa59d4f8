package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zordux/Last-Vector/internal/storage"
)

// maxRuns caps how many records the browser loads at once.
const maxRuns = 100

// runsSort selects which leaderboard view the table shows.
type runsSort int

const (
	sortRecent runsSort = iota
	sortBest
)

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
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
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded episodes.
type RunsModel struct {
	store    *storage.Store
	runs     []storage.EpisodeRun
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	sort     runsSort
	width    int
	height   int
	quitting bool
}

// NewRunsModel creates a run browser backed by the given store.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	if height < 12 {
		height = 12
	}

	m := RunsModel{
		store:  store,
		keys:   DefaultRunsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Kills", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Acc", Width: 6},
		{Title: "Reward", Width: 8},
		{Title: "Outcome", Width: 8},
		{Title: "Model", Width: 14},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-6),
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

func (m *RunsModel) loadRuns() {
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	var (
		runs []storage.EpisodeRun
		err  error
	)
	if m.sort == sortBest {
		runs, err = m.store.BestRuns(maxRuns)
	} else {
		runs, err = m.store.RecentRuns(maxRuns)
	}
	if err != nil {
		m.runs = nil
	} else {
		m.runs = runs
	}
	m.updateTableRows()
}

func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		model := r.Model
		if model == "" {
			model = "keyboard"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Kills),
			fmt.Sprintf("%.1fs", r.Duration),
			fmt.Sprintf("%.0f%%", r.Accuracy()*100),
			fmt.Sprintf("%.1f", r.TotalReward),
			r.Outcome,
			model,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 6)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.sort == sortRecent {
				m.sort = sortBest
			} else {
				m.sort = sortRecent
			}
			m.loadRuns()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	title := "Recent runs"
	if m.sort == sortBest {
		title = "Best runs"
	}
	header := lipgloss.NewStyle().Bold(true).Render(title)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.table.View(),
		m.help.View(m.keys),
	)
}

// BrowseRuns starts the run browser program.
func BrowseRuns(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewRunsModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
