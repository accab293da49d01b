// Package schedule provides cancellable delayed and repeating actions driven
// by a virtual clock.
//
// The clock never reads wall time. The owner advances it explicitly (the TUI
// does so on every Bubble Tea tick), so all callbacks run on the caller's
// goroutine, one after another, in due-time order.
package schedule

import "time"

// Handle is returned for every scheduled action.
type Handle interface {
	// Cancel stops the action. Its callback never runs after Cancel returns.
	// Calling Cancel more than once is harmless.
	Cancel()
}

// Scheduler schedules actions. Implementations are not safe for concurrent use.
type Scheduler interface {
	// After runs fn once, d from now.
	After(d time.Duration, fn func()) Handle
	// Every runs fn every d until cancelled.
	Every(d time.Duration, fn func()) Handle
	// Repeat runs fn every d, at most times times.
	Repeat(d time.Duration, times int, fn func()) Handle
}

type task struct {
	seq       uint64
	due       time.Duration
	period    time.Duration
	remaining int // firings left; -1 = unlimited
	fn        func()
	cancelled bool
}

func (t *task) Cancel() {
	t.cancelled = true
}

// Clock is a manually advanced Scheduler.
type Clock struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

// NewClock returns a clock positioned at zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// After implements Scheduler.
func (c *Clock) After(d time.Duration, fn func()) Handle {
	return c.add(d, 0, 1, fn)
}

// Every implements Scheduler.
func (c *Clock) Every(d time.Duration, fn func()) Handle {
	return c.add(d, d, -1, fn)
}

// Repeat implements Scheduler.
func (c *Clock) Repeat(d time.Duration, times int, fn func()) Handle {
	if times <= 0 {
		return c.add(d, d, 0, fn)
	}
	return c.add(d, d, times, fn)
}

func (c *Clock) add(d, period time.Duration, times int, fn func()) *task {
	if d < 0 {
		d = 0
	}
	// A zero period would fire forever within one Advance.
	if times != 1 && period <= 0 {
		period = time.Millisecond
	}
	c.seq++
	t := &task{
		seq:       c.seq,
		due:       c.now + d,
		period:    period,
		remaining: times,
		fn:        fn,
		cancelled: times == 0,
	}
	if !t.cancelled {
		c.tasks = append(c.tasks, t)
	}
	return t
}

// Pending returns the number of live scheduled actions.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every action that falls due.
// Actions due at the same instant run in the order they were scheduled.
// Actions scheduled by a callback run in the same call if they fall due
// before the target time.
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := c.now + d

	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.due

		if next.remaining > 0 {
			next.remaining--
		}
		if next.remaining == 0 {
			next.cancelled = true
		} else {
			next.due += next.period
		}
		next.fn()
	}

	c.now = target
	c.compact()
}

// nextDue finds the earliest live task due at or before target.
func (c *Clock) nextDue(target time.Duration) *task {
	var best *task
	for _, t := range c.tasks {
		if t.cancelled || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *Clock) compact() {
	live := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.tasks); i++ {
		c.tasks[i] = nil
	}
	c.tasks = live
}

// Group collects handles so they can be cancelled together.
type Group struct {
	handles []Handle
}

// Add records h and returns it.
func (g *Group) Add(h Handle) Handle {
	g.handles = append(g.handles, h)
	return h
}

// CancelAll cancels every recorded handle and forgets them.
func (g *Group) CancelAll() {
	for _, h := range g.handles {
		h.Cancel()
	}
	g.handles = nil
}

// Len returns the number of recorded handles.
func (g *Group) Len() int {
	return len(g.handles)
}
