package dial

import (
	"time"
)

// Clock supplies the current time in milliseconds.
type Clock interface {
	NowMs() int64
}

// SystemClock reads the monotonic wall clock relative to its creation time.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a SystemClock whose zero is now.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// NowMs returns the milliseconds elapsed since the clock was created.
func (c *SystemClock) NowMs() int64 {
	return time.Since(c.origin).Milliseconds()
}

// ManualClock is a Clock moved explicitly by its owner. Used by tests and
// headless replay.
type ManualClock struct {
	now int64
}

// NowMs returns the current manual time.
func (c *ManualClock) NowMs() int64 { return c.now }

// Set moves the clock to ms.
func (c *ManualClock) Set(ms int64) { c.now = ms }

// Advance moves the clock forward by ms and returns the new time.
func (c *ManualClock) Advance(ms int64) int64 {
	c.now += ms
	return c.now
}

// Invalidation describes what a render pass must repaint.
type Invalidation struct {
	Full     bool // repaint the whole surface
	Dirty    Rect // union of changed regions, valid when HasDirty
	HasDirty bool
}

// Merge returns the union of two invalidations.
func (inv Invalidation) Merge(other Invalidation) Invalidation {
	out := Invalidation{Full: inv.Full || other.Full}
	switch {
	case inv.HasDirty && other.HasDirty:
		out.Dirty = inv.Dirty.Union(other.Dirty)
		out.HasDirty = true
	case inv.HasDirty:
		out.Dirty, out.HasDirty = inv.Dirty, true
	case other.HasDirty:
		out.Dirty, out.HasDirty = other.Dirty, true
	}
	return out
}

// AddDirty returns inv with r added to the dirty region.
func (inv Invalidation) AddDirty(r Rect) Invalidation {
	return inv.Merge(Invalidation{Dirty: r, HasDirty: true})
}

// Any reports whether anything needs repainting.
func (inv Invalidation) Any() bool {
	return inv.Full || inv.HasDirty
}

// TickStats summarizes one Scheduler.Tick.
type TickStats struct {
	Ticked   int // clips that were running
	Rendered int // frames rendered
	Skipped  int // frames jumped over by catch-up
	Looped   int
	Ended    int
}

// Scheduler drives a set of clips from one update loop. There is no global
// animation driver: the owner calls Tick (or Update) and reposts itself after
// NextDelay.
type Scheduler struct {
	clips []*Clip
	clock Clock
	stats TickStats
}

// NewScheduler creates a scheduler reading time from clock. A nil clock
// selects a SystemClock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Scheduler{clock: clock}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock { return s.clock }

// Add registers a clip. Adding the same clip twice has no effect.
func (s *Scheduler) Add(c *Clip) {
	for _, existing := range s.clips {
		if existing == c {
			return
		}
	}
	s.clips = append(s.clips, c)
}

// Remove unregisters a clip.
func (s *Scheduler) Remove(c *Clip) {
	for i, existing := range s.clips {
		if existing == c {
			copy(s.clips[i:], s.clips[i+1:])
			s.clips[len(s.clips)-1] = nil
			s.clips = s.clips[:len(s.clips)-1]
			return
		}
	}
}

// Len returns the number of registered clips.
func (s *Scheduler) Len() int { return len(s.clips) }

// Active reports whether any registered clip is running.
func (s *Scheduler) Active() bool {
	for _, c := range s.clips {
		if c.Started() {
			return true
		}
	}
	return false
}

// NextDelay returns how long the owner should wait before the next tick: the
// shortest frame duration among running clips. ok is false when nothing runs.
func (s *Scheduler) NextDelay() (d time.Duration, ok bool) {
	for _, c := range s.clips {
		if !c.Started() {
			continue
		}
		fd := time.Duration(c.FrameDurationMs()) * time.Millisecond
		if !ok || fd < d {
			d, ok = fd, true
		}
	}
	return d, ok
}

// Update ticks every clip at the scheduler clock's current time.
func (s *Scheduler) Update() Invalidation {
	return s.Tick(s.clock.NowMs())
}

// Tick advances every running clip to nowMs and merges their dirty regions.
// Clips may be started or stopped by callbacks fired during the tick; a clip
// stopped mid-tick is skipped.
func (s *Scheduler) Tick(nowMs int64) Invalidation {
	var inv Invalidation
	s.stats = TickStats{}
	for i := 0; i < len(s.clips); i++ {
		c := s.clips[i]
		if !c.Started() {
			continue
		}
		s.stats.Ticked++
		f := c.Tick(nowMs)
		if f.Looped {
			s.stats.Looped++
		}
		if f.Ended {
			s.stats.Ended++
		}
		if !f.Rendered {
			continue
		}
		s.stats.Rendered++
		s.stats.Skipped += f.Skipped
		if f.Full {
			inv.Full = true
		}
		if f.Drawn {
			inv = inv.AddDirty(f.Dirty)
		}
	}
	return inv
}

// Stats returns the counters of the most recent Tick.
func (s *Scheduler) Stats() TickStats { return s.stats }
