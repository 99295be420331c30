package timer

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs f once after d. The returned cancel func prevents f from
// running if it has not started yet; calling it more than once is safe.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

type task struct {
	due       time.Duration
	seq       uint64
	f         func()
	cancelled bool
}

// LoopScheduler is a virtual-time Scheduler. Nothing happens until its
// owner calls Advance, which runs every callback that came due, in due
// order, on the caller's goroutine. The game pumps it once per tick and
// tests pump it directly.
type LoopScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*task
}

// NewLoopScheduler creates a scheduler at virtual time zero.
func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{}
}

// AfterFunc implements Scheduler.
func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &task{due: s.now + max(d, 0), seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
		s.drop(t)
	}
}

// Advance moves virtual time forward by d and runs what came due. Tasks
// scheduled by a callback run in the same call if they fall inside the
// window. It returns the number of callbacks run.
func (s *LoopScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + max(d, 0)
	s.mu.Unlock()

	ran := 0
	for {
		s.mu.Lock()
		t := s.nextDue(target)
		if t == nil {
			s.now = target
			s.mu.Unlock()
			return ran
		}
		s.drop(t)
		s.now = t.due
		s.mu.Unlock()

		t.f()
		ran++
	}
}

// Now returns the current virtual time.
func (s *LoopScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of scheduled callbacks.
func (s *LoopScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// nextDue returns the earliest task due at or before target. Caller holds mu.
func (s *LoopScheduler) nextDue(target time.Duration) *task {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.Slice(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if s.tasks[0].due > target {
		return nil
	}
	return s.tasks[0]
}

// drop removes t from the queue. Caller holds mu.
func (s *LoopScheduler) drop(t *task) {
	for i, q := range s.tasks {
		if q == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}
