package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hypewave/internal/core"
	"github.com/vovakirdan/hypewave/internal/show"
	"github.com/vovakirdan/hypewave/internal/storage"
)

// heldFrames is how many frames a movement key keeps steering after a
// press. Terminals report key repeats but never key releases.
const heldFrames = 6

// Model is the Bubble Tea model that plays one show.
type Model struct {
	show   *show.Show
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   KeyMap

	input core.InputFrame
	held  [4]int // frames left for Up, Down, Left, Right
	state core.ShowState

	allowBack  bool
	backToMenu bool
	quitting   bool
	saved      bool // run stored for the current show
}

// NewModel creates a model for sh. The show is reset in Init.
func NewModel(sh *show.Show, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	return Model{
		show:   sh,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		input:  core.NewInputFrame(),
	}
}

// Init resets the show and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.show.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.allowBack && (m.state.GameOver || m.state.Paused) {
			m.saveRun()
			m.backToMenu = true
		}
		return m, nil
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.held[action-core.ActionUp] = heldFrames
	case core.ActionNone:
		return m, nil
	}

	m.input.Set(action)
	return m, nil
}

// handleTick steps the show by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	for i, n := range m.held {
		if n > 0 {
			m.input.Set(core.ActionUp + core.Action(i))
			m.held[i]--
		}
	}

	if m.input.Has(core.ActionRestart) {
		m.saveRun()
		m.saved = false
		m.held = [4]int{}
	}

	result := m.show.Step(m.input)
	m.state = result.State

	if m.state.GameOver {
		m.saveRun()
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current show once. Empty shows are not recorded.
func (m *Model) saveRun() {
	if m.saved || m.store == nil {
		return
	}
	rec := m.show.Summary()
	if rec.Ticks == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, the show continues regardless
	m.store.SaveRun(rec)
	m.saved = true
}

// saveScreenshot writes the current screen as text to ~/.hypewave/screenshots.
func (m *Model) saveScreenshot() {
	m.show.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".hypewave", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.show.Venue().ID, timestamp)

	//nolint:errcheck // Best-effort save, the show continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.show.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the venue menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays sh in the terminal until the user quits.
func Run(sh *show.Show, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(sh, store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
