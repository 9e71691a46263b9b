package dial

import (
	"errors"
	"math"
	"testing"
)

func mustClip(t *testing.T, cfg ClipConfig) *Clip {
	t.Helper()
	c, err := NewClip(cfg)
	if err != nil {
		t.Fatalf("NewClip: %v", err)
	}
	return c
}

func TestNewClipFrameLayout(t *testing.T) {
	tests := []struct {
		name       string
		fps, dur   int
		wantFrames int
		wantFrame  int
	}{
		{"40fps 250ms", 40, 250, 10, 25},
		{"60fps 1s", 60, 1000, 60, 16},
		{"30fps 100ms", 30, 100, 3, 33},
		{"1fps 1ms", 1, 1, 1, 1},
		{"1fps 400ms rounds to zero", 1, 400, 1, 400},
		{"1000fps 5ms", 1000, 5, 5, 1},
		{"frames capped at 1ms each", 5000, 3, 3, 1},
		{"huge fps capped without overflow", math.MaxInt / 2, 1_000_000_000, 1_000_000_000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustClip(t, ClipConfig{FPS: tt.fps, DurationMs: tt.dur})
			if c.TotalFrames() != tt.wantFrames {
				t.Errorf("TotalFrames = %d, want %d", c.TotalFrames(), tt.wantFrames)
			}
			if c.FrameDurationMs() != tt.wantFrame {
				t.Errorf("FrameDurationMs = %d, want %d", c.FrameDurationMs(), tt.wantFrame)
			}
			if c.TotalDurationMs() != c.TotalFrames()*c.FrameDurationMs() {
				t.Errorf("TotalDurationMs = %d, want %d", c.TotalDurationMs(), c.TotalFrames()*c.FrameDurationMs())
			}
			if c.TotalDurationMs() > tt.dur {
				t.Errorf("TotalDurationMs = %d exceeds requested %d", c.TotalDurationMs(), tt.dur)
			}
			if c.CurrentFrame() != -1 {
				t.Errorf("CurrentFrame = %d, want -1 before start", c.CurrentFrame())
			}
		})
	}
}

func TestNewClipFrameInvariantSweep(t *testing.T) {
	for fps := 1; fps <= 120; fps += 7 {
		for dur := 1; dur <= 2000; dur += 37 {
			c := mustClip(t, ClipConfig{FPS: fps, DurationMs: dur})
			if c.TotalFrames() < 1 || c.FrameDurationMs() < 1 {
				t.Fatalf("fps=%d dur=%d: frames=%d frameMs=%d", fps, dur, c.TotalFrames(), c.FrameDurationMs())
			}
			if c.TotalFrames()*c.FrameDurationMs() > dur {
				t.Fatalf("fps=%d dur=%d: %d*%d exceeds duration", fps, dur, c.TotalFrames(), c.FrameDurationMs())
			}
		}
	}
}

func TestNewClipInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  ClipConfig
	}{
		{"zero fps", ClipConfig{FPS: 0, DurationMs: 100}},
		{"negative fps", ClipConfig{FPS: -5, DurationMs: 100}},
		{"zero duration", ClipConfig{FPS: 30, DurationMs: 0}},
		{"negative duration", ClipConfig{FPS: 30, DurationMs: -1}},
		{"negative repeat", ClipConfig{FPS: 30, DurationMs: 100, Repeat: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClip(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
			if c != nil {
				t.Error("expected nil clip on error")
			}
		})
	}
}

func TestClipTickBeforeStart(t *testing.T) {
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250})
	f := c.Tick(100)
	if f.Rendered || f.Ended {
		t.Errorf("tick before start = %+v, want empty frame", f)
	}
}

func TestClipFirstTickAnchors(t *testing.T) {
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250})
	c.Start()

	f := c.Tick(5000)
	if !f.Rendered || f.Index != 0 {
		t.Fatalf("first tick = %+v, want frame 0 rendered", f)
	}
	if math.Abs(f.Scale-0.1) > 1e-9 {
		t.Errorf("scale = %f, want 0.1", f.Scale)
	}

	f = c.Tick(5024)
	if f.Index != 0 {
		t.Errorf("Index = %d at +24ms, want 0", f.Index)
	}
	f = c.Tick(5025)
	if f.Index != 1 {
		t.Errorf("Index = %d at +25ms, want 1", f.Index)
	}
}

func TestClipCatchUp(t *testing.T) {
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250})
	c.Start()
	c.Tick(1000)

	// 3.5 frame durations later in one call.
	f := c.Tick(1000 + 87)
	if c.CurrentFrame() != 3 {
		t.Fatalf("CurrentFrame = %d, want 3", c.CurrentFrame())
	}
	if f.Index != 3 {
		t.Errorf("Index = %d, want 3", f.Index)
	}
	if f.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", f.Skipped)
	}
	if math.Abs(f.Scale-0.4) > 1e-9 {
		t.Errorf("Scale = %f, want 0.4", f.Scale)
	}
}

func TestClipScaleMonotonic(t *testing.T) {
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250})
	c.Start()

	prev := 0.0
	var last Frame
	for now := int64(0); now < 250; now += 7 {
		f := c.Tick(now)
		if !f.Rendered {
			t.Fatalf("tick at %d not rendered", now)
		}
		if f.Scale < prev {
			t.Fatalf("scale decreased at %d: %f < %f", now, f.Scale, prev)
		}
		if f.Scale <= 0 || f.Scale > 1 {
			t.Fatalf("scale %f out of (0, 1]", f.Scale)
		}
		prev = f.Scale
		last = f
	}
	if last.Index != 9 {
		t.Fatalf("last in-range frame = %d, want 9", last.Index)
	}
	if last.Scale != 1.0 {
		t.Errorf("final frame scale = %f, want 1.0", last.Scale)
	}
}

func TestClipEndsAndFiresOnEnd(t *testing.T) {
	var ended int
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250, OnEnd: func() { ended++ }})
	c.Start()
	c.Tick(0)

	f := c.Tick(250)
	if !f.Ended || f.Rendered {
		t.Fatalf("tick past end = %+v, want Ended without render", f)
	}
	if ended != 1 {
		t.Errorf("OnEnd fired %d times, want 1", ended)
	}
	if c.Started() || !c.Ended() || c.CurrentFrame() != -1 {
		t.Errorf("started=%v ended=%v frame=%d, want false/true/-1", c.Started(), c.Ended(), c.CurrentFrame())
	}

	// Ticks after the end are no-ops.
	if f := c.Tick(400); f.Rendered || f.Ended {
		t.Errorf("tick after end = %+v, want empty", f)
	}
	if ended != 1 {
		t.Errorf("OnEnd fired again: %d", ended)
	}
}

func TestClipRepeat(t *testing.T) {
	var ended int
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250, Repeat: 1, OnEnd: func() { ended++ }})
	c.Start()
	c.Tick(0)

	f := c.Tick(250)
	if !f.Looped || !f.Rendered || f.Index != 0 {
		t.Fatalf("loop boundary = %+v, want looped frame 0", f)
	}
	if c.RepeatsRemaining() != 0 {
		t.Errorf("RepeatsRemaining = %d, want 0", c.RepeatsRemaining())
	}
	if math.Abs(f.Scale-0.1) > 1e-9 {
		t.Errorf("loop restarts scale at %f, want 0.1", f.Scale)
	}

	// The new loop re-anchors on the next tick.
	f = c.Tick(300)
	if f.Index != 0 {
		t.Errorf("Index = %d after re-anchor, want 0", f.Index)
	}
	f = c.Tick(300 + 125)
	if f.Index != 5 {
		t.Errorf("Index = %d, want 5", f.Index)
	}
	if ended != 0 {
		t.Fatal("OnEnd fired before last loop finished")
	}

	f = c.Tick(550)
	if !f.Ended || ended != 1 {
		t.Errorf("Ended=%v OnEnd=%d, want true/1", f.Ended, ended)
	}
}

func TestClipStartIdempotent(t *testing.T) {
	var started int
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250, OnStart: func() { started++ }})
	c.Start()
	c.Tick(0)
	c.Tick(50)
	c.Start()

	if started != 1 {
		t.Errorf("OnStart fired %d times, want 1", started)
	}
	if c.CurrentFrame() != 2 {
		t.Errorf("CurrentFrame = %d, second Start must not rewind", c.CurrentFrame())
	}
}

func TestClipStopNeverStarted(t *testing.T) {
	var ended int
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250, OnEnd: func() { ended++ }})
	c.Stop()

	if !c.Ended() {
		t.Error("Stop on a never-started clip should mark it ended")
	}
	if c.Started() {
		t.Error("stopped clip should not be started")
	}
	if ended != 0 {
		t.Error("Stop must not fire OnEnd")
	}
	if f := c.Tick(10); f.Rendered {
		t.Error("stopped clip should not render")
	}
}

func TestClipResetAndRestart(t *testing.T) {
	var started int
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250, Repeat: 2, OnStart: func() { started++ }})
	c.Start()
	c.Tick(0)
	c.Tick(250) // consume one repeat

	c.Reset()
	if c.Started() || c.Ended() || c.CurrentFrame() != -1 {
		t.Errorf("after Reset started=%v ended=%v frame=%d", c.Started(), c.Ended(), c.CurrentFrame())
	}
	if c.RepeatsRemaining() != 2 {
		t.Errorf("RepeatsRemaining = %d after Reset, want 2", c.RepeatsRemaining())
	}

	c.Restart()
	if started != 2 {
		t.Errorf("OnStart fired %d times, want 2", started)
	}
	if !c.Started() || c.CurrentFrame() != 0 {
		t.Errorf("after Restart started=%v frame=%d", c.Started(), c.CurrentFrame())
	}
	if f := c.Tick(9000); f.Index != 0 {
		t.Errorf("Restart should re-anchor, got frame %d", f.Index)
	}
}

func TestClipStopMidPlayback(t *testing.T) {
	c := mustClip(t, ClipConfig{FPS: 40, DurationMs: 250})
	c.Start()
	c.Tick(0)
	c.Tick(100)
	c.Stop()

	if !c.Ended() || c.Started() {
		t.Fatal("Stop should end the clip")
	}
	if f := c.Tick(125); f.Rendered {
		t.Error("late tick after Stop should be a no-op")
	}
}

func TestClipInterpolator(t *testing.T) {
	c := mustClip(t, ClipConfig{
		FPS: 40, DurationMs: 250,
		Interpolator: func(t float64) float64 { return t * t },
	})
	c.Start()
	c.Tick(0)
	f := c.Tick(100) // frame 4, linear scale 0.5
	if math.Abs(f.Scale-0.25) > 1e-9 {
		t.Errorf("Scale = %f, want 0.25", f.Scale)
	}
}

func TestClipRenderDirty(t *testing.T) {
	var scales []float64
	want := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	c := mustClip(t, ClipConfig{
		FPS: 40, DurationMs: 250,
		Render: func(scale float64) (Rect, bool) {
			scales = append(scales, scale)
			return want, scale > 0.15
		},
		FullInvalidation: true,
	})
	c.Start()

	f := c.Tick(0)
	if f.Drawn {
		t.Error("frame 0 reported drawn")
	}
	if !f.Full {
		t.Error("FullInvalidation clip should request full repaint")
	}
	f = c.Tick(30)
	if !f.Drawn || f.Dirty != want {
		t.Errorf("frame 1 dirty = %v drawn=%v, want %v", f.Dirty, f.Drawn, want)
	}
	if len(scales) != 2 {
		t.Errorf("render called %d times, want 2", len(scales))
	}
}

func TestClipTickZeroAlloc(t *testing.T) {
	c := mustClip(t, ClipConfig{
		FPS: 60, DurationMs: 1 << 30,
		Render: func(scale float64) (Rect, bool) {
			return Rect{Width: scale, Height: scale}, true
		},
	})
	c.Start()
	c.Tick(0)

	now := int64(0)
	result := testing.AllocsPerRun(100, func() {
		now += 16
		c.Tick(now)
	})
	if result > 0 {
		t.Errorf("Clip.Tick allocated %f times per run, want 0", result)
	}
}
