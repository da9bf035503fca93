// Package timing drives mini-game timers on a virtual clock.
//
// A Scheduler owns a set of periodic and one-shot timers. Nothing fires on
// its own: the owner calls Advance with the elapsed time, and every timer
// that came due in that window runs in deadline order. Timers sharing a
// deadline run by ascending priority, then by creation order. That makes a
// session fully deterministic under test and lets the front-end decide
// whether time comes from a terminal tick, a ticker or a test.
package timing

import (
	"sort"
	"time"
)

// Func is a timer callback. dt is the time since the timer last fired
// (or since it was armed).
type Func func(dt time.Duration)

// Timer is a handle to a scheduled callback.
type Timer struct {
	name     string
	period   time.Duration
	priority int
	repeat   bool
	due      time.Duration
	last     time.Duration
	seq      uint64
	fn       Func
	stopped  bool
}

// Name returns the label the timer was created with.
func (t *Timer) Name() string {
	return t.name
}

// Stop cancels the timer. A stopped timer never fires again, even if it
// is already due inside the Advance call that is running.
func (t *Timer) Stop() {
	t.stopped = true
}

// Stopped reports whether Stop has been called.
func (t *Timer) Stopped() bool {
	return t.stopped
}

// Scheduler is a virtual clock with timers. It is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers []*Timer
}

// NewScheduler returns a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every arms a repeating timer that first fires one period from now.
func (s *Scheduler) Every(name string, period time.Duration, priority int, fn Func) *Timer {
	return s.add(name, period, priority, true, fn)
}

// After arms a one-shot timer that fires once, delay from now.
func (s *Scheduler) After(name string, delay time.Duration, priority int, fn Func) *Timer {
	return s.add(name, delay, priority, false, fn)
}

func (s *Scheduler) add(name string, period time.Duration, priority int, repeat bool, fn Func) *Timer {
	if period <= 0 {
		period = time.Millisecond
	}
	s.seq++
	t := &Timer{
		name:     name,
		period:   period,
		priority: priority,
		repeat:   repeat,
		due:      s.now + period,
		last:     s.now,
		seq:      s.seq,
		fn:       fn,
	}
	s.timers = append(s.timers, t)
	return t
}

// StopAll cancels every timer.
func (s *Scheduler) StopAll() {
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = nil
}

// Active returns the number of timers that can still fire.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by dt, firing every timer that
// comes due on the way. Callbacks may arm or stop timers; newly armed
// timers that fall inside the window fire in the same call.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	target := s.now + dt

	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.due
		elapsed := t.due - t.last
		t.last = t.due
		if t.repeat {
			t.due += t.period
		} else {
			t.stopped = true
		}
		t.fn(elapsed)
		s.compact()
	}

	s.now = target
}

// next returns the earliest live timer due at or before target.
func (s *Scheduler) next(target time.Duration) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.stopped || t.due > target {
			continue
		}
		if best == nil || before(t, best) {
			best = t
		}
	}
	return best
}

func before(a, b *Timer) bool {
	if a.due != b.due {
		return a.due < b.due
	}
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}

// compact drops stopped timers so long sessions do not accumulate handles.
func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// Pending returns the names of live timers ordered by their next deadline.
func (s *Scheduler) Pending() []string {
	live := make([]*Timer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	sort.Slice(live, func(i, j int) bool { return before(live[i], live[j]) })

	names := make([]string, len(live))
	for i, t := range live {
		names[i] = t.name
	}
	return names
}
