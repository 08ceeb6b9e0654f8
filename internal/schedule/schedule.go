// Package schedule drives entity step functions at fixed intervals.
//
// The core never owns a timer. Entities hand a Task to a Scheduler and get
// back a Handle; the Loop implementation runs every task on the goroutine
// that advances it, so steps never overlap.
package schedule

import (
	"context"
	"time"
)

// Task is one step of work. It returns false once it has nothing left to do.
type Task func() bool

// Handle stops a scheduled task.
type Handle interface {
	Stop()
	Stopped() bool
}

// Scheduler invokes tasks repeatedly at a fixed interval.
type Scheduler interface {
	Schedule(task Task, interval time.Duration) Handle
}

type entry struct {
	task     Task
	interval time.Duration
	next     time.Time
	armed    bool
	stopped  bool
}

func (e *entry) Stop() { e.stopped = true }

func (e *entry) Stopped() bool { return e.stopped }

// Loop is a cooperative Scheduler. Tasks run only inside Advance, Drain or
// Run, in registration order, one step per task per call.
type Loop struct {
	entries []*entry
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Schedule registers task to run every interval. The first run happens on
// the first Advance.
func (l *Loop) Schedule(task Task, interval time.Duration) Handle {
	e := &entry{task: task, interval: interval}
	l.entries = append(l.entries, e)
	return e
}

// Advance runs each task that is due at now and re-arms it for now+interval.
// It returns the number of tasks that ran.
func (l *Loop) Advance(now time.Time) int {
	ran := 0
	// Tasks scheduled by a running task wait for the next call.
	entries := l.entries
	for _, e := range entries {
		if e.stopped {
			continue
		}
		if e.armed && now.Before(e.next) {
			continue
		}
		e.armed = true
		e.next = now.Add(e.interval)
		ran++
		if !e.task() {
			e.stopped = true
		}
	}
	l.compact()
	return ran
}

// Drain runs every live task round-robin, ignoring intervals, until none
// remain or maxRounds rounds have passed. A maxRounds of 0 means no limit.
// It returns the number of rounds run.
func (l *Loop) Drain(maxRounds int) int {
	rounds := 0
	for l.Pending() > 0 && (maxRounds <= 0 || rounds < maxRounds) {
		entries := l.entries
		for _, e := range entries {
			if e.stopped {
				continue
			}
			if !e.task() {
				e.stopped = true
			}
		}
		l.compact()
		rounds++
	}
	return rounds
}

// Run advances the loop on every tick of a resolution ticker until ctx is
// done or no task remains.
func (l *Loop) Run(ctx context.Context, resolution time.Duration) error {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	for l.Pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Advance(now)
		}
	}
	return nil
}

// Pending returns the number of tasks that have not stopped.
func (l *Loop) Pending() int {
	n := 0
	for _, e := range l.entries {
		if !e.stopped {
			n++
		}
	}
	return n
}

// StopAll stops every task.
func (l *Loop) StopAll() {
	for _, e := range l.entries {
		e.stopped = true
	}
	l.compact()
}

func (l *Loop) compact() {
	live := l.entries[:0]
	for _, e := range l.entries {
		if !e.stopped {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(l.entries); i++ {
		l.entries[i] = nil
	}
	l.entries = live
}
