package minigame

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/metro-minigames/internal/core"
)

// FrameFunc is called after every frame on the runner goroutine. It may
// read the session and feed it input.
type FrameFunc func(s *Session)

// Run drives a session in real time until it ends or ctx is cancelled.
// Every frame the session advances by the wall time since the previous
// frame, so dropped ticks are caught up rather than lost. Inputs are
// applied in arrival order between frames; a closed inputs channel just
// stops input. Run owns the session while it executes.
func Run(ctx context.Context, s *Session, clock clockwork.Clock, frame time.Duration, inputs <-chan core.Input, onFrame ...FrameFunc) error {
	if frame <= 0 {
		frame = time.Second / 30
	}

	ticker := clock.NewTicker(frame)
	defer ticker.Stop()

	last := clock.Now()
	for !s.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case in, ok := <-inputs:
			if !ok {
				inputs = nil
				continue
			}
			s.Input(in)

		case now := <-ticker.Chan():
			if dt := now.Sub(last); dt > 0 {
				s.Advance(dt)
				last = now
			}
			for _, fn := range onFrame {
				fn(s)
			}
		}
	}
	return nil
}
