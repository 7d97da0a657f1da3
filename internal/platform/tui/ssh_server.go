package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/hypewave/internal/core"
	"github.com/vovakirdan/hypewave/internal/show"
	"github.com/vovakirdan/hypewave/internal/storage"
)

// ShowFactory builds a fresh show for a venue. Every SSH session gets
// its own shows; simulators are never shared between sessions.
type ShowFactory func(venueID string) (*show.Show, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.hypewave/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of remote sessions.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    20,
	}
}

// SSHServer serves the show viewer over SSH with Wish.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	factory ShowFactory
	logger  *log.Logger
}

// NewSSHServer creates a server. store may be nil; runs are then not kept.
func NewSSHServer(cfg SSHServerConfig, factory ShowFactory, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "hypewave-ssh",
		})
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		factory: factory,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".hypewave", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	model := NewSessionModel(s.store, s.factory, cfg, s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewShow
	viewRuns
)

// SessionModel is the top-level model of an SSH session:
// venue menu, then a show or the runs board, then back to the menu.
type SessionModel struct {
	store   *storage.Store
	factory ShowFactory
	config  core.RuntimeConfig
	logger  *log.Logger

	view     sessionView
	menu     MenuModel
	show     *Model
	runs     RunsModel
	notice   string // last error shown above the menu
	quitting bool
}

// NewSessionModel creates a session starting at the venue menu.
func NewSessionModel(store *storage.Store, factory ShowFactory, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		store:   store,
		factory: factory,
		config:  cfg,
		logger:  logger,
		menu:    NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewShow:
		return m.updateShow(msg)
	case viewRuns:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRuns():
		m.runs = NewRunsModel(m.store, "", m.config.ScreenW, m.config.ScreenH)
		m.view = viewRuns
		return m, nil

	case m.menu.Selected() != nil:
		id := m.menu.Selected().VenueID
		sh, err := m.factory(id)
		if err != nil {
			m.logger.Error("cannot start show", "venue", id, "error", err)
			m.notice = err.Error()
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		m.logger.Info("show started", "venue", id)
		model := NewModel(sh, m.store, m.menu.Config())
		model.allowBack = true
		m.show = &model
		m.notice = ""
		m.view = viewShow
		return m, m.show.Init()
	}
	return m, cmd
}

func (m SessionModel) updateShow(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.show.Update(msg)
	if model, ok := next.(Model); ok {
		m.show = &model
	}

	if m.show.BackToMenu() {
		m.show = nil
		m.menu = NewMenuModel(m.store, m.config)
		m.view = viewMenu
		return m, m.menu.Init()
	}
	if m.show.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.runs.Update(msg)
	if runs, ok := next.(RunsModel); ok {
		m.runs = runs
	}

	if m.runs.IsGoingBack() {
		m.menu = NewMenuModel(m.store, m.config)
		m.view = viewMenu
		return m, nil
	}
	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewShow:
		return m.show.View()
	case viewRuns:
		return m.runs.View()
	}
	if m.notice != "" {
		return menuDimStyle.Render(" "+m.notice) + "\n" + m.menu.View()
	}
	return m.menu.View()
}
