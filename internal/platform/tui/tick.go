// Package tui is the Bubble Tea front-end for mini-game sessions: the
// menu, the game screen, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameGap caps how much virtual time one frame may advance, so a
// suspended terminal does not fast-forward the countdown.
const maxFrameGap = 250 * time.Millisecond

// TickMsg is sent once per frame.
type TickMsg time.Time

// tickCmd schedules the next frame at the given frame rate.
func tickCmd(fps int) tea.Cmd {
	if fps < 1 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the time since the previous frame, clamped to
// [0, maxFrameGap]. The first frame advances nothing.
func frameDelta(last, now time.Time) time.Duration {
	if last.IsZero() {
		return 0
	}
	dt := now.Sub(last)
	if dt < 0 {
		return 0
	}
	if dt > maxFrameGap {
		return maxFrameGap
	}
	return dt
}
