// Package minigame runs one mini-game session: it picks the variant, wires
// the level controller to the variant's sub-state, drives every timer from
// a virtual clock and reports a single bonus when the session ends.
package minigame

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/registry"
	"github.com/vovakirdan/metro-minigames/internal/timing"
)

// ErrUnknownVariant is returned by Start for a variant with no registered game.
var ErrUnknownVariant = errors.New("minigame: unknown variant")

// Timer priorities. At equal deadlines the sim runs first, then a pending
// reveal, then the countdown, so a win or loss in the last instant beats
// the timeout.
const (
	prioritySim = iota
	prioritySettle
	priorityCountdown
)

// Result is the summary of a finished session.
type Result struct {
	SessionID string
	Variant   core.Variant
	Bonus     int
	Outcome   core.Status // Outcome of the last level played
	Levels    []LevelResult
	Duration  time.Duration // Virtual play time
}

// Observer receives session events. Calls happen on the goroutine that
// drives the session.
type Observer interface {
	LevelEnded(v core.Variant, res LevelResult)
	SessionEnded(res Result)
}

// Option configures a session.
type Option func(*Session)

// WithLogger sets the logger. Sessions are silent by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed seeds the session's RNG for reproducible draws.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses the given RNG.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithObserver registers an observer for level and session events.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// Session is one play-through of a mini-game. It is not safe for
// concurrent use; a single goroutine feeds it input and time.
type Session struct {
	id         string
	game       registry.Game
	ctrl       *Controller
	sched      *timing.Scheduler
	level      []*timing.Timer // Countdown and drivers of the current level
	settling   bool
	onComplete func(bonus int)
	logger     *log.Logger
	rng        *rand.Rand
	observers  []Observer
	levels     []LevelResult
	result     Result
	done       bool
}

// Start validates the tuning, builds the variant's game and starts level 1.
// onComplete is called exactly once with the bonus, after every timer of
// the session has been stopped. It may be nil.
func Start(variant core.Variant, cfg config.Config, onComplete func(bonus int), opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("minigame: %w", err)
	}
	game, err := registry.Create(variant, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, variant)
	}

	s := &Session{
		id:         uuid.NewString(),
		game:       game,
		sched:      timing.NewScheduler(),
		onComplete: onComplete,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.logger = s.logger.With("session", s.id, "variant", string(variant))

	s.logger.Debug("session started", "levels", game.Levels())

	s.ctrl = NewController(game, s.rng)
	s.ctrl.Start()
	s.armLevel()
	return s, nil
}

// armLevel schedules the countdown and the game's drivers for the
// current level. A level that starts already decided completes at once.
func (s *Session) armLevel() {
	s.settling = false
	s.level = s.level[:0]

	for _, d := range s.game.Drivers() {
		step := d.Step
		s.level = append(s.level, s.sched.Every(d.Name, d.Period, prioritySim, func(dt time.Duration) {
			step(dt)
			s.checkOutcome()
		}))
	}
	s.level = append(s.level, s.sched.Every("countdown", time.Second, priorityCountdown, func(time.Duration) {
		if s.ctrl.Tick() {
			s.stopLevel()
			s.completeLevel()
		}
	}))
	s.checkOutcome()
}

func (s *Session) stopLevel() {
	for _, t := range s.level {
		t.Stop()
	}
	s.level = s.level[:0]
}

// checkOutcome stops the level once the sub-state reached a terminal
// status, completing it now or after the game's settle delay.
func (s *Session) checkOutcome() {
	if s.done || s.settling || !s.game.Status().Terminal() {
		return
	}
	s.stopLevel()

	delay := s.game.SettleDelay()
	if delay <= 0 {
		s.completeLevel()
		return
	}
	s.settling = true
	s.sched.After("settle", delay, prioritySettle, func(time.Duration) {
		s.completeLevel()
	})
}

func (s *Session) completeLevel() {
	res, ok := s.ctrl.CompleteLevel()
	if !ok {
		return
	}
	s.levels = append(s.levels, res)
	s.logger.Debug("level complete", "level", res.Level, "status", res.Status.String(), "score", res.Score)
	for _, o := range s.observers {
		o.LevelEnded(s.game.Variant(), res)
	}

	if s.ctrl.State().Done {
		s.finish()
		return
	}
	s.armLevel()
}

func (s *Session) finish() {
	s.sched.StopAll()
	s.done = true

	state := s.ctrl.State()
	s.result = Result{
		SessionID: s.id,
		Variant:   state.Variant,
		Bonus:     state.Bonus(),
		Outcome:   state.Status,
		Levels:    append([]LevelResult(nil), s.levels...),
		Duration:  s.sched.Now(),
	}

	s.logger.Info("session complete", "bonus", s.result.Bonus, "outcome", s.result.Outcome.String())
	for _, o := range s.observers {
		o.SessionEnded(s.result)
	}
	if s.onComplete != nil {
		s.onComplete(s.result.Bonus)
	}
}

// Input delivers one player input. Inputs after the session ended, or
// while a finished level is settling, are ignored.
func (s *Session) Input(in core.Input) {
	if s.done || s.settling {
		return
	}
	s.game.Handle(in)
	s.checkOutcome()
}

// Advance moves the session's clock forward by dt, firing every timer
// that comes due.
func (s *Session) Advance(dt time.Duration) {
	if s.done {
		return
	}
	s.sched.Advance(dt)
}

// Round returns the current round state.
func (s *Session) Round() RoundState {
	return s.ctrl.State()
}

// Done reports whether the session has ended.
func (s *Session) Done() bool {
	return s.done
}

// Bonus returns the reported bonus, or 0 while the session is running.
func (s *Session) Bonus() int {
	return s.result.Bonus
}

// Result returns the session summary. Only meaningful once Done.
func (s *Session) Result() Result {
	return s.result
}

// ID returns the session's unique ID.
func (s *Session) ID() string {
	return s.id
}

// Variant returns the variant being played.
func (s *Session) Variant() core.Variant {
	return s.game.Variant()
}

// Game exposes the sub-state for renderers and scripted players.
func (s *Session) Game() registry.Game {
	return s.game
}

// Elapsed returns the virtual time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.sched.Now()
}

// PendingTimers returns the names of the timers still armed.
func (s *Session) PendingTimers() []string {
	return s.sched.Pending()
}

// Render draws the game with a status bar on the top row.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	s.game.Render(dst)

	r := s.Round()
	bar := fmt.Sprintf(" %s  ⏱ %ds  Score %d ", s.game.Title(), r.TimeLeft, r.TotalScore+r.Score)
	if r.Levels > 1 {
		bar = fmt.Sprintf(" %s  L%d/%d  ⏱ %ds  Score %d ", s.game.Title(), r.Level, r.Levels, r.TimeLeft, r.TotalScore+r.Score)
	}
	dst.DrawTextColor(dst.Width()-len([]rune(bar)), 0, bar, core.ColorCyan)

	if r.Status == core.StatusTimedOut {
		dst.DrawMessage("TIME'S UP", fmt.Sprintf("Bonus: %d", r.Bonus()))
	}
}
