package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
	"github.com/vovakirdan/metro-minigames/internal/prizes"
)

// GameOptions configures a game screen.
type GameOptions struct {
	Tuning     config.Config
	Runtime    core.RuntimeConfig
	Logger     *log.Logger
	Observers  []minigame.Observer
	Prizes     *prizes.Table
	Standalone bool // Quit the program when the player leaves the result screen
}

// outcome is shared by every copy of a GameModel, since onComplete fires
// from inside Session methods.
type outcome struct {
	fired bool
	bonus int
}

// GameModel plays one mini-game session. The session's virtual clock is
// advanced by the wall time between frames.
type GameModel struct {
	session    *minigame.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	prizes     *prizes.Table
	keyMapper  *KeyMapper
	outcome    *outcome
	last       time.Time
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel starts a session for the variant.
func NewGameModel(variant core.Variant, opts GameOptions) (GameModel, error) {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	table := opts.Prizes
	if table == nil {
		table = prizes.Default()
	}

	out := &outcome{}
	sessionOpts := []minigame.Option{
		minigame.WithSeed(cfg.Seed),
		minigame.WithLogger(opts.Logger),
	}
	for _, o := range opts.Observers {
		sessionOpts = append(sessionOpts, minigame.WithObserver(o))
	}

	session, err := minigame.Start(variant, opts.Tuning, func(bonus int) {
		out.fired = true
		out.bonus = bonus
	}, sessionOpts...)
	if err != nil {
		return GameModel{}, err
	}

	return GameModel{
		session:    session,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		prizes:     table,
		keyMapper:  NewKeyMapper(),
		outcome:    out,
		standalone: opts.Standalone,
	}, nil
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapKey(msg)

	switch in.Action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	}

	if m.session.Done() {
		if in.Action == core.ActionBack || in.Action == core.ActionConfirm {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.session.Input(in)
	return m, nil
}

// handleTick advances the session by the time since the last frame.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.session.Advance(frameDelta(m.last, now))
	m.last = now

	if m.backToMenu {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	if m.outcome.fired {
		m.renderResult()
	}
	return RenderScreen(m.screen)
}

// renderResult overlays the bonus and the prize tier it unlocks.
func (m GameModel) renderResult() {
	h := m.screen.Height()
	bonus := m.outcome.bonus

	m.screen.DrawTextCentered(h-5, fmt.Sprintf("Bonus earned: %d", bonus))
	if p, ok := m.prizes.Lookup(bonus); ok {
		m.screen.DrawTextCentered(h-4, fmt.Sprintf("%s unlocked! Code %s", p.Name, p.Code))
	} else if next, ok := m.prizes.Next(bonus); ok {
		m.screen.DrawTextCentered(h-4, fmt.Sprintf("%d more points for the %s", next.MinScore-bonus, next.Name))
	}
	m.screen.DrawTextCentered(h-2, "Enter/Esc: continue  |  Q: quit")
}

// Session returns the session being played.
func (m GameModel) Session() *minigame.Session {
	return m.session
}

// Finished reports whether onComplete has fired, and with what bonus.
func (m GameModel) Finished() (int, bool) {
	return m.outcome.bonus, m.outcome.fired
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true once the player dismissed the result screen.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one session in the local terminal and returns its result.
// The returned bool is false when the player quit before the end.
func Run(variant core.Variant, opts GameOptions) (minigame.Result, bool, error) {
	opts.Standalone = true
	model, err := NewGameModel(variant, opts)
	if err != nil {
		return minigame.Result{}, false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return minigame.Result{}, false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok || !m.session.Done() {
		return minigame.Result{}, false, nil
	}
	return m.session.Result(), true, nil
}
