package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/lobby"
	"github.com/vovakirdan/metro-minigames/internal/metrics"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
	"github.com/vovakirdan/metro-minigames/internal/storage"
)

// memberKey stores the lobby member in the SSH session context.
type memberKey struct{}

// activeKey stores the connection's ActiveGame in the SSH session context.
type activeKey struct{}

// ActiveGame holds the active-session gauge release of the game a
// connection is playing. It outlives the program so a dropped connection
// still releases the gauge.
type ActiveGame struct {
	mu      sync.Mutex
	release func()
}

func (a *ActiveGame) set(release func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.release != nil {
		a.release()
	}
	a.release = release
}

// Release decrements the gauge for the current game, if any.
// Safe to call more than once.
func (a *ActiveGame) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.release != nil {
		a.release()
		a.release = nil
	}
}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.metro/host_key.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Tuning is the mini-game configuration before difficulty presets.
	Tuning config.Config

	// Preset is the difficulty preselected in the menu.
	Preset config.DifficultyPreset

	// FPS is the frame rate of every session.
	FPS int

	// Metrics receives session events when set.
	Metrics *metrics.Recorder

	// Logger overrides the default stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.metro/bonuses.db",
		IdleTimeout: 30 * time.Minute,
		Tuning:      config.Default(),
		Preset:      config.DifficultyNormal,
		FPS:         30,
	}
}

// SSHServer wraps a Wish SSH server running the mini-game menu.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	lobby  *lobby.Lobby
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "metro-ssh",
		})
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".metro", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		lobby:  lobby.New(),
		logger: logger,
	}

	// Middlewares run last to first: logging, then lobby, then the program
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.lobbyMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	member, _ := sshSession.Context().Value(memberKey{}).(*lobby.Member)
	active, _ := sshSession.Context().Value(activeKey{}).(*ActiveGame)

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.FPS,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(SessionDeps{
		Store:   s.store,
		Lobby:   s.lobby,
		Member:  member,
		Active:  active,
		Metrics: s.config.Metrics,
		Tuning:  s.config.Tuning,
		Preset:  s.config.Preset,
		Logger:  s.logger.With("user", sshSession.User()),
	}, rt, sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// lobbyMiddleware registers the player in the lobby for the lifetime of
// the connection. A game still running when the connection drops is
// released from the active-session gauge here, since the program is
// killed without another Update.
func (s *SSHServer) lobbyMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		member := s.lobby.Join(sshSession.User(), 16)
		defer s.lobby.Leave(member.ID())

		active := &ActiveGame{}
		defer active.Release()

		sshSession.Context().SetValue(memberKey{}, member)
		sshSession.Context().SetValue(activeKey{}, active)
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or
// the process is interrupted.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		_ = s.Shutdown()
		return fmt.Errorf("tui: ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Lobby returns the server's lobby.
func (s *SSHServer) Lobby() *lobby.Lobby {
	return s.lobby
}

// SessionDeps are the shared services a SessionModel plays against.
// Every field is optional.
type SessionDeps struct {
	Store   *storage.Store
	Lobby   *lobby.Lobby
	Member  *lobby.Member
	Active  *ActiveGame
	Metrics *metrics.Recorder
	Tuning  config.Config
	Preset  config.DifficultyPreset
	Logger  *log.Logger
}

// lobbyMsg carries one lobby event into the program.
type lobbyMsg struct {
	evt lobby.Event
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full flow of one connection:
// menu -> game -> menu, with the scoreboard one Tab away.
type SessionModel struct {
	deps       SessionDeps
	config     core.RuntimeConfig
	username   string
	screen     sessionScreen
	menu       MenuModel
	game       *GameModel
	scoreboard *ScoreboardModel
	notice     string
	announced  bool
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig, username string) SessionModel {
	if deps.Tuning.Trainline.Levels == nil {
		deps.Tuning = config.Default()
	}
	if deps.Active == nil {
		deps.Active = &ActiveGame{}
	}
	m := SessionModel{
		deps:     deps,
		config:   cfg,
		username: username,
	}
	m.menu = m.newMenu(deps.Preset)
	return m
}

func (m SessionModel) newMenu(preset config.DifficultyPreset) MenuModel {
	menu := NewMenuModel(m.config, preset)
	if m.deps.Lobby == nil {
		return menu
	}

	view := LobbyView{Online: m.deps.Lobby.Count(), Notice: m.notice}
	for _, evt := range m.deps.Lobby.Recent() {
		view.Recent = append(view.Recent, fmt.Sprintf("%s earned %d on %s", evt.Player, evt.Bonus, evt.Variant))
	}
	return menu.WithLobby(view)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.waitForLobby())
}

// waitForLobby returns a command that waits for the next lobby event.
func (m SessionModel) waitForLobby() tea.Cmd {
	member := m.deps.Member
	if member == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case evt := <-member.Events():
			return lobbyMsg{evt: evt}
		case <-member.Done():
			return nil
		}
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case lobbyMsg:
		m.notice = describeLobbyEvent(msg.evt)
		if m.screen == screenMenu {
			m.menu = m.newMenu(m.menu.Preset())
		}
		return m, m.waitForLobby()
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func describeLobbyEvent(evt lobby.Event) string {
	switch e := evt.(type) {
	case lobby.PlayerJoinedEvent:
		return fmt.Sprintf("%s boarded", e.Player)
	case lobby.PlayerLeftEvent:
		return fmt.Sprintf("%s got off", e.Player)
	case lobby.SessionFinishedEvent:
		return fmt.Sprintf("%s just earned %d on %s!", e.Player, e.Bonus, e.Variant)
	default:
		return ""
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		board := NewScoreboardModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &board
		m.screen = screenScoreboard
		return m, board.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().Variant, m.menu.Preset())
	}

	// The menu quits the program on selection; inside a session that is
	// handled above, so drop the quit command
	return m, filterQuit(cmd)
}

func (m SessionModel) startGame(variant core.Variant, preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	tuning := m.deps.Tuning
	config.ApplyPreset(&tuning, preset)

	var observers []minigame.Observer
	if m.deps.Store != nil {
		observers = append(observers, storage.NewRecorder(m.deps.Store, m.username, m.deps.Logger))
	}
	if m.deps.Metrics != nil {
		observers = append(observers, m.deps.Metrics)
	}

	rt := m.config
	rt.Seed = time.Now().UnixNano()
	game, err := NewGameModel(variant, GameOptions{
		Tuning:    tuning,
		Runtime:   rt,
		Logger:    m.deps.Logger,
		Observers: observers,
	})
	if err != nil {
		m.notice = err.Error()
		m.menu = m.newMenu(preset)
		return m, nil
	}

	if m.deps.Metrics != nil {
		m.deps.Active.set(m.deps.Metrics.SessionStarted())
	}
	m.game = &game
	m.screen = screenGame
	m.announced = false
	return m, game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if bonus, done := m.game.Finished(); done && !m.announced {
		m.announced = true
		m.endGame()
		if m.deps.Lobby != nil && m.deps.Member != nil {
			m.deps.Lobby.Finished(m.deps.Member.ID(), m.game.Session().Variant(), bonus)
		}
	}

	if m.game.IsQuitting() {
		m.endGame()
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.endGame()
		m.game = nil
		m.screen = screenMenu
		m.menu = m.newMenu(m.menu.Preset())
		return m, m.menu.Init()
	}

	return m, cmd
}

// endGame releases the active-session gauge once per game.
func (m *SessionModel) endGame() {
	m.deps.Active.Release()
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if board, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.screen = screenMenu
		m.menu = m.newMenu(m.menu.Preset())
		return m, nil
	}
	return m, filterQuit(cmd)
}

// filterQuit drops the tea.Quit a sub-screen returns when it finishes.
func filterQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return nil
		}
		return msg
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
