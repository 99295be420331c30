// Package timer provides the session countdown: a one-second repeating tick
// that can be stopped at any moment without a late callback.
package timer

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Interval is the countdown resolution.
const Interval = time.Second

// Countdown counts whole seconds down to zero on a Scheduler.
// Only one run is active at a time.
type Countdown struct {
	sched  Scheduler
	logger *log.Logger

	mu        sync.Mutex
	gen       uint64
	running   bool
	remaining int
	cancel    func()
	onTick    func(remaining int)
	onExpire  func()
}

// Option configures a Countdown.
type Option func(*Countdown)

// WithLogger sets the logger used to report panicking callbacks.
func WithLogger(l *log.Logger) Option {
	return func(c *Countdown) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a stopped countdown on sched.
func New(sched Scheduler, opts ...Option) *Countdown {
	c := &Countdown{
		sched:  sched,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins counting down from seconds. Every Interval the remaining
// count is decremented and passed to onTick; when it reaches zero onExpire
// runs once and the countdown stops. A previous run is stopped first.
// With seconds <= 0 onExpire runs before Start returns. Either callback
// may be nil.
func (c *Countdown) Start(seconds int, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	c.stopLocked()
	c.remaining = max(seconds, 0)
	c.onTick = onTick
	c.onExpire = onExpire

	if seconds <= 0 {
		c.mu.Unlock()
		c.expire(onExpire)
		return
	}

	c.running = true
	c.scheduleLocked()
	c.mu.Unlock()
}

// Stop cancels the countdown. No callback runs after Stop returns, unless
// one was already executing. Stop is idempotent.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Running reports whether a countdown is in progress.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Countdown) stopLocked() {
	c.gen++
	c.running = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Countdown) scheduleLocked() {
	gen := c.gen
	c.cancel = c.sched.AfterFunc(Interval, func() { c.fire(gen) })
}

// fire handles one tick of run gen. Ticks from a stopped run are dropped.
func (c *Countdown) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.running {
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	c.remaining--
	remaining := c.remaining
	onTick, onExpire := c.onTick, c.onExpire

	done := remaining <= 0
	if done {
		c.running = false
		c.gen++
	} else {
		c.scheduleLocked()
	}
	last := c.gen
	c.mu.Unlock()

	c.tick(onTick, remaining)
	if !done {
		return
	}

	// onTick may have stopped or restarted the countdown
	c.mu.Lock()
	stale := c.gen != last
	c.mu.Unlock()
	if !stale {
		c.expire(onExpire)
	}
}

func (c *Countdown) tick(f func(int), remaining int) {
	if f == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("countdown tick callback panicked", "remaining", remaining, "panic", r)
		}
	}()
	f(remaining)
}

func (c *Countdown) expire(f func()) {
	if f == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("countdown expire callback panicked", "panic", r)
		}
	}()
	f()
}
