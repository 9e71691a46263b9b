package dial

import (
	"fmt"
	"math"
)

// FrameFunc renders one animation frame at the given (interpolated) scale.
// It returns the region it changed. drawn is false when nothing was drawn
// yet or the region was already cleared.
type FrameFunc func(scale float64) (dirty Rect, drawn bool)

// ClipConfig configures a Clip. FPS and DurationMs must be at least 1.
type ClipConfig struct {
	FPS        int
	DurationMs int
	// Repeat is the number of extra play-throughs after the first.
	Repeat int

	Interpolator Interpolator
	Render       FrameFunc
	OnStart      func()
	OnEnd        func()

	// FullInvalidation requests a full-surface repaint on every rendered
	// frame regardless of the dirty region.
	FullInvalidation bool
}

// Frame is the result of a single Clip.Tick.
type Frame struct {
	Rendered bool // a frame was rendered this tick
	Index    int  // frame index within the current play-through
	Scale    float64
	Dirty    Rect
	Drawn    bool // Dirty is meaningful
	Full     bool // full-surface invalidation requested
	Looped   bool // a loop boundary was crossed this tick
	Ended    bool // the clip finished this tick
	Skipped  int  // frames jumped over by catch-up
}

// Clip maps elapsed wall-clock time to discrete, interpolated animation
// frames. Frame count and frame duration are fixed at construction; Start,
// Restart, Stop and Reset only touch timing state.
//
// Clip is not safe for concurrent use. It is meant to be driven from a single
// update loop, either directly or through a Scheduler.
type Clip struct {
	totalFrames     int
	frameDurationMs int
	totalDurationMs int
	repeat          int

	startTimeMs      int64
	anchored         bool
	currentFrame     int
	lastFrame        int
	repeatsRemaining int
	started          bool
	ended            bool

	interpolator     Interpolator
	render           FrameFunc
	onStart          func()
	onEnd            func()
	fullInvalidation bool
}

// NewClip validates cfg and derives the frame layout:
// totalFrames = max(1, round(fps*durationMs/1000)) and
// frameDurationMs = floor(durationMs/totalFrames).
func NewClip(cfg ClipConfig) (*Clip, error) {
	if cfg.FPS < 1 {
		return nil, fmt.Errorf("new clip: fps %d: %w", cfg.FPS, ErrInvalidArgument)
	}
	if cfg.DurationMs < 1 {
		return nil, fmt.Errorf("new clip: duration %dms: %w", cfg.DurationMs, ErrInvalidArgument)
	}
	if cfg.Repeat < 0 {
		return nil, fmt.Errorf("new clip: repeat %d: %w", cfg.Repeat, ErrInvalidArgument)
	}

	// A frame cannot be shorter than the millisecond clock resolution.
	n := math.Round(float64(cfg.FPS) * float64(cfg.DurationMs) / 1000)
	n = math.Min(math.Max(n, 1), float64(cfg.DurationMs))
	frames := int(n)
	frameMs := cfg.DurationMs / frames

	return &Clip{
		totalFrames:      frames,
		frameDurationMs:  frameMs,
		totalDurationMs:  frames * frameMs,
		repeat:           cfg.Repeat,
		currentFrame:     -1,
		lastFrame:        -1,
		repeatsRemaining: cfg.Repeat,
		interpolator:     cfg.Interpolator,
		render:           cfg.Render,
		onStart:          cfg.OnStart,
		onEnd:            cfg.OnEnd,
		fullInvalidation: cfg.FullInvalidation,
	}, nil
}

// TotalFrames returns the number of frames in one play-through.
func (c *Clip) TotalFrames() int { return c.totalFrames }

// FrameDurationMs returns the duration of one frame.
func (c *Clip) FrameDurationMs() int { return c.frameDurationMs }

// TotalDurationMs returns TotalFrames * FrameDurationMs.
func (c *Clip) TotalDurationMs() int { return c.totalDurationMs }

// CurrentFrame returns the current frame index, or -1 when not running.
func (c *Clip) CurrentFrame() int { return c.currentFrame }

// RepeatsRemaining returns how many more loops will play after this one.
func (c *Clip) RepeatsRemaining() int { return c.repeatsRemaining }

// Started reports whether the clip is running.
func (c *Clip) Started() bool { return c.started }

// Ended reports whether the clip finished or was stopped.
func (c *Clip) Ended() bool { return c.ended }

// FullInvalidation reports whether the clip always requests a full repaint.
func (c *Clip) FullInvalidation() bool { return c.fullInvalidation }

// Start begins playback; the start time is anchored on the next Tick.
// Start on a running clip does nothing.
func (c *Clip) Start() {
	if c.currentFrame != -1 {
		return
	}
	c.anchored = false
	c.startTimeMs = 0
	c.currentFrame = 0
	c.lastFrame = -1
	c.started = true
	c.ended = false
	if c.onStart != nil {
		c.onStart()
	}
}

// Reset returns the clip to its never-started state.
func (c *Clip) Reset() {
	c.anchored = false
	c.startTimeMs = 0
	c.currentFrame = -1
	c.lastFrame = -1
	c.repeatsRemaining = c.repeat
	c.started = false
	c.ended = false
}

// Restart is Reset followed by Start.
func (c *Clip) Restart() {
	c.Reset()
	c.Start()
}

// Stop halts playback without firing OnEnd. Unlike Reset it leaves the clip
// marked as ended, so a stopped clip can be told apart from one that never ran.
func (c *Clip) Stop() {
	c.Reset()
	c.ended = true
}

// Tick advances the clip to wall-clock time nowMs and renders the frame that
// time falls on. The frame index is derived from elapsed time, so a late call
// jumps ahead instead of playing every frame.
func (c *Clip) Tick(nowMs int64) Frame {
	if !c.started || c.ended {
		return Frame{}
	}

	if !c.anchored {
		c.anchored = true
		c.startTimeMs = nowMs
		c.currentFrame = 0
	} else {
		elapsed := nowMs - c.startTimeMs
		if elapsed < 0 {
			elapsed = 0
		}
		c.currentFrame = int(elapsed / int64(c.frameDurationMs))
	}

	if c.currentFrame < c.totalFrames {
		f := c.renderFrame()
		if c.lastFrame >= 0 && c.currentFrame > c.lastFrame+1 {
			f.Skipped = c.currentFrame - c.lastFrame - 1
		}
		c.lastFrame = c.currentFrame
		return f
	}

	if c.repeatsRemaining > 0 {
		c.repeatsRemaining--
		c.currentFrame = 0
		c.lastFrame = -1
		c.anchored = false
		f := c.renderFrame()
		f.Looped = true
		c.lastFrame = 0
		return f
	}

	c.currentFrame = -1
	c.lastFrame = -1
	c.anchored = false
	c.started = false
	c.ended = true
	if c.onEnd != nil {
		c.onEnd()
	}
	return Frame{Ended: true}
}

// renderFrame computes the scale for currentFrame and invokes the render
// callback.
func (c *Clip) renderFrame() Frame {
	scale := c.scaleAt(c.currentFrame)
	if c.interpolator != nil {
		scale = c.interpolator(scale)
	}
	f := Frame{
		Rendered: true,
		Index:    c.currentFrame,
		Scale:    scale,
		Full:     c.fullInvalidation,
	}
	if c.render != nil {
		f.Dirty, f.Drawn = c.render(scale)
	}
	return f
}

// scaleAt returns (frame+1)/totalFrames clamped to (0, 1].
func (c *Clip) scaleAt(frame int) float64 {
	if c.totalFrames <= 0 {
		return 0
	}
	s := float64(frame+1) / float64(c.totalFrames)
	if s > 1 {
		s = 1
	}
	if s <= 0 {
		return 0
	}
	return s
}
