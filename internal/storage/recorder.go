package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
)

// FromSession converts a finished session into a storable result.
func FromSession(player string, res minigame.Result) Result {
	levels := make([]LevelResult, len(res.Levels))
	for i, l := range res.Levels {
		levels[i] = LevelResult{
			Level:    l.Level,
			Outcome:  l.Status.String(),
			Score:    l.Score,
			TimeLeft: l.TimeLeft,
		}
	}
	return Result{
		SessionID: res.SessionID,
		Variant:   string(res.Variant),
		Player:    player,
		Bonus:     res.Bonus,
		Outcome:   res.Outcome.String(),
		Levels:    levels,
		Duration:  res.Duration,
	}
}

// Recorder saves every finished session for one player. It implements
// minigame.Observer; save failures are logged and never reach the game.
type Recorder struct {
	store  *Store
	player string
	logger *log.Logger
}

var _ minigame.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder. A nil store makes it a no-op.
func NewRecorder(store *Store, player string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{store: store, player: player, logger: logger}
}

// LevelEnded implements minigame.Observer. Levels are stored with the session.
func (r *Recorder) LevelEnded(core.Variant, minigame.LevelResult) {}

// SessionEnded implements minigame.Observer.
func (r *Recorder) SessionEnded(res minigame.Result) {
	if r.store == nil {
		return
	}
	if _, err := r.store.SaveResult(FromSession(r.player, res)); err != nil {
		r.logger.Warn("could not save result", "session", res.SessionID, "error", err)
	}
}
