package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zordux/Last-Vector/internal/config"
	"github.com/Zordux/Last-Vector/internal/core"
	"github.com/Zordux/Last-Vector/internal/sim"
	"github.com/Zordux/Last-Vector/internal/storage"
)

// tickRate is the frame and simulation rate driven by the terminal loop.
// One frame advances exactly one simulation tick.
const tickRate = 60

// Options configures an interactive session.
type Options struct {
	Seed    uint64 // 0 means derive one from the clock
	ScreenW int
	ScreenH int
}

// Model is the Bubble Tea model for interactive play.
type Model struct {
	sim      *sim.Simulator
	cfg      config.ArenaConfig
	screen   *core.Screen
	store    *storage.Store
	input    *InputState
	seed     uint64
	reward   float64
	paused   bool
	quitting bool
	saved    bool
}

// NewModel creates a model around a fresh simulator. store may be nil; runs
// are then simply not persisted.
func NewModel(cfg config.ArenaConfig, store *storage.Store, opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.ScreenW <= 0 {
		opts.ScreenW = 80
	}
	if opts.ScreenH <= 0 {
		opts.ScreenH = 24
	}

	s := sim.New(cfg)
	s.Reset(opts.Seed)

	return Model{
		sim:    s,
		cfg:    cfg,
		screen: core.NewScreen(opts.ScreenW, opts.ScreenH),
		store:  store,
		input:  NewInputState(),
		seed:   opts.Seed,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p":
		m.paused = !m.paused
		return m, nil
	case "n":
		if m.sim.State().PlayState == sim.StateDead {
			m.seed = uint64(time.Now().UnixNano())
			m.sim.Reset(m.seed)
			m.reward = 0
			m.saved = false
		}
		return m, nil
	}

	if m.input.Press(msg) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(tickRate)
	}

	res := m.sim.Step(m.input.Action())
	m.reward += float64(res.Reward)

	if (res.Terminated || res.Truncated) && !m.saved {
		m.saveRun(res.Terminated)
		m.saved = true
	}

	return m, tickCmd(tickRate)
}

// saveRun persists the finished episode. Best effort: interactive play
// continues whether or not the insert works.
func (m *Model) saveRun(died bool) {
	if m.store == nil {
		return
	}
	st := m.sim.State()
	outcome := "timeout"
	if died {
		outcome = "died"
	}
	//nolint:errcheck
	m.store.SaveRun(storage.EpisodeRun{
		Seed:        m.seed,
		Ticks:       st.Tick,
		Duration:    st.EpisodeTime,
		Kills:       st.Stats.Kills,
		DamageTaken: st.Stats.DamageTaken,
		DamageDealt: st.Stats.DamageDealt,
		ShotsFired:  st.Stats.ShotsFired,
		ShotsHit:    st.Stats.ShotsHit,
		TotalReward: m.reward,
		Outcome:     outcome,
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	DrawWorld(m.screen, m.sim.State(), &m.cfg)
	if m.paused {
		centeredText(m.screen, m.screen.Height()/2, " PAUSED ", core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for local play.
func Run(cfg config.ArenaConfig, store *storage.Store, opts Options) error {
	p := tea.NewProgram(
		NewModel(cfg, store, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
