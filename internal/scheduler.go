package internal

import (
	"errors"
	"sync/atomic"
)

// Tick is the scheduler's round counter as returned by Scheduler.Time: Run
// increments it once per drained round, so one Runtime.Flush can advance it
// by more than one.
type Tick int64

// Scheduler gates Runtime.Flush: a write sets scheduled, and Run drains the
// dirty heap in a loop until no further write arrived during the drain, so
// a write from inside an effect body is picked up by the same Flush call
// instead of being dropped.
type Scheduler struct {
	// clock increments once per drained round and is read through Time();
	// no memo or effect in the kernel consults it.
	clock atomic.Int64

	scheduled atomic.Bool
	running   atomic.Bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule marks a flush as pending. Called on every signal write.
func (s *Scheduler) Schedule() {
	s.scheduled.Store(true)
}

func (s *Scheduler) IsScheduled() bool {
	return s.scheduled.Load()
}

func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) Time() Tick {
	return Tick(s.clock.Load())
}

// Run drains pending flushes by calling fn once per round until no write
// scheduled another one, re-entrancy-guarded so a write triggered from
// inside fn (e.g. an effect writing a signal) joins the same Run instead of
// recursing. Returns an error if a round keeps rescheduling past a sane
// bound, the spec's "possible infinite update loop" guard.
func (s *Scheduler) Run(fn func()) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	defer s.running.Store(false)

	count := 0
	for s.scheduled.Swap(false) {
		count++
		if count > 1e5 {
			return errors.New("possible infinite update loop detected")
		}

		s.clock.Add(1)

		fn()
	}

	return nil
}
