package dial

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tanema/gween/ease"
)

// Visuals is a snapshot of the widget's visual parts. Renderers read it after
// each tick; it is never shared by reference.
type Visuals struct {
	Center  Point
	Radius  float64 // ring radius as currently animated
	Point1  Point
	Point2  Point
	Heading float64 // degrees in [0, 360)
	Alpha   float64

	RingVisible    bool
	FingersVisible bool
	NeedleVisible  bool
}

// Visible reports whether any part is shown.
func (v Visuals) Visible() bool {
	return v.RingVisible || v.FingersVisible || v.NeedleVisible
}

// Bounds returns the region covered by the visible parts, grown by pad to
// leave room for stroke width and finger markers. Hidden visuals have empty
// bounds.
func (v Visuals) Bounds(pad float64) Rect {
	if !v.Visible() {
		return Rect{}
	}
	r := RectAround(v.Center, v.Radius).Inset(pad)
	if v.FingersVisible {
		r = r.Union(RectAround(v.Point1, pad)).Union(RectAround(v.Point2, pad))
	}
	return r
}

// SessionConfig configures a Session.
type SessionConfig struct {
	Detector DetectorConfig

	IntroFPS        int
	IntroDurationMs int
	IntroEase       Interpolator
	OutroFPS        int
	OutroDurationMs int
	OutroEase       Interpolator

	// FullInvalidation makes both clips request full-surface repaints.
	FullInvalidation bool
	// MarkerPad is added around the ring and finger markers when computing
	// dirty regions.
	MarkerPad float64

	Clock  Clock
	Logger *slog.Logger
	// Debug enables per-tick scheduler stats in the log.
	Debug bool
}

// DefaultSessionConfig returns a two-finger session with a 250ms intro and a
// 300ms outro at 40fps.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Detector:        DetectorConfig{Mode: AnchorTwoFinger},
		IntroFPS:        40,
		IntroDurationMs: 250,
		IntroEase:       EaseInterpolator(ease.OutBack),
		OutroFPS:        40,
		OutroDurationMs: 300,
		OutroEase:       EaseInterpolator(ease.InQuad),
		MarkerPad:       24,
	}
}

// Session composes the rotation detector with the intro and outro clips into
// the widget's calibration lifecycle:
//
//	Inactive -> (rotation started) -> Calibrating -> (rotation ended) -> Outro -> (outro ends) -> Inactive
//
// A rotation starting during Outro cancels the outro and re-enters
// Calibrating.
//
// Session is single-threaded: touch events, injections and ticks must come
// from the same goroutine.
type Session struct {
	cfg    SessionConfig
	driver Driver
	sink   EventSink
	logger *slog.Logger

	detector *Detector
	intro    *Clip
	outro    *Clip
	sched    *Scheduler

	state        CalibrationState
	active       bool
	lastAngleDeg float64
	radius       float64 // live gesture radius
	introTarget  float64
	outroFrom    float64
	visuals      Visuals
	pending      Invalidation
	nowMs        int64

	injectQueue []syntheticTouch
	runner      *ScriptRunner
}

// NewSession creates an inactive session reporting to driver. A nil driver
// discards calibration events.
func NewSession(cfg SessionConfig, driver Driver) (*Session, error) {
	if driver == nil {
		driver = DriverFuncs{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Session{
		cfg:    cfg,
		driver: driver,
		logger: logger.With("component", "dial"),
	}

	var err error
	s.intro, err = NewClip(ClipConfig{
		FPS:              cfg.IntroFPS,
		DurationMs:       cfg.IntroDurationMs,
		Interpolator:     cfg.IntroEase,
		Render:           s.renderIntro,
		OnEnd:            s.introEnded,
		FullInvalidation: cfg.FullInvalidation,
	})
	if err != nil {
		return nil, fmt.Errorf("new session: intro: %w", err)
	}
	s.outro, err = NewClip(ClipConfig{
		FPS:              cfg.OutroFPS,
		DurationMs:       cfg.OutroDurationMs,
		Interpolator:     cfg.OutroEase,
		Render:           s.renderOutro,
		OnEnd:            s.outroEnded,
		FullInvalidation: cfg.FullInvalidation,
	})
	if err != nil {
		return nil, fmt.Errorf("new session: outro: %w", err)
	}

	s.sched = NewScheduler(cfg.Clock)
	s.sched.Add(s.intro)
	s.sched.Add(s.outro)

	s.detector = NewDetector(cfg.Detector, RotationFuncs{
		OnStarted: s.rotationStarted,
		OnRotated: s.rotated,
		OnEnded:   s.rotationEnded,
	})
	return s, nil
}

// --- Touch input ---

// Down feeds a pointer press at time tMs.
func (s *Session) Down(id int, x, y float64, tMs int64) {
	s.nowMs = tMs
	s.detector.Down(id, x, y)
	s.trackFingers()
}

// Move feeds one batch of pointer moves at time tMs.
func (s *Session) Move(tMs int64, pts ...Pointer) {
	s.nowMs = tMs
	s.detector.Move(pts...)
	s.trackFingers()
}

// Up feeds a pointer release at time tMs. The release position is not used:
// the gesture ends at the last known points.
func (s *Session) Up(id int, x, y float64, tMs int64) {
	s.nowMs = tMs
	s.detector.Up(id)
}

// StartSingle starts a single-touch rotation at (x, y) around the
// configured anchor center, regardless of the knob region.
func (s *Session) StartSingle(id int, x, y float64, tMs int64) {
	s.nowMs = tMs
	c := s.detector.Config()
	s.detector.StartSingle(id, x, y, c.Center, c.Radius)
}

// Cancel ends a gesture in progress as if its pointers had lifted.
func (s *Session) Cancel(tMs int64) {
	s.nowMs = tMs
	s.detector.Cancel()
}

// SetAnchor updates the single-touch geometry (center, fixed radius, knob).
func (s *Session) SetAnchor(center Point, radius float64, knob HitShape) {
	s.detector.SetAnchor(center, radius, knob)
}

// --- Frame pacing ---

// Tick advances the intro and outro clips to nowMs and returns everything
// that changed since the previous tick, including gesture-driven changes.
func (s *Session) Tick(nowMs int64) Invalidation {
	s.nowMs = nowMs
	inv := s.sched.Tick(nowMs)
	inv = inv.Merge(s.pending)
	s.pending = Invalidation{}
	s.debugLogTick(s.sched.Stats(), inv)
	return inv
}

// Update runs one frame: it steps the attached script runner, consumes at
// most one injected touch event, then ticks.
func (s *Session) Update(nowMs int64) Invalidation {
	if s.runner != nil {
		s.runner.step(s)
	}
	s.processInjected(nowMs)
	return s.Tick(nowMs)
}

// NextDelay returns how long the host should wait before the next tick.
// ok is false when no animation is running and the host may idle until the
// next touch event.
func (s *Session) NextDelay() (time.Duration, bool) {
	return s.sched.NextDelay()
}

// --- Accessors ---

// State returns the calibration lifecycle state.
func (s *Session) State() CalibrationState { return s.state }

// Active reports whether a rotation gesture is in progress.
func (s *Session) Active() bool { return s.active }

// LastAngle returns the most recent heading sent to the driver.
func (s *Session) LastAngle() float64 { return s.lastAngleDeg }

// Radius returns the live gesture radius.
func (s *Session) Radius() float64 { return s.radius }

// Visuals returns a snapshot of the visual parts.
func (s *Session) Visuals() Visuals { return s.visuals }

// GestureState returns the detector's state.
func (s *Session) GestureState() GestureState { return s.detector.State() }

// Touches returns a snapshot of the detector's tracked points.
func (s *Session) Touches() TouchSession { return s.detector.Touches() }

// Intro returns the intro clip.
func (s *Session) Intro() *Clip { return s.intro }

// Outro returns the outro clip.
func (s *Session) Outro() *Clip { return s.outro }

// Scheduler returns the session's animation scheduler.
func (s *Session) Scheduler() *Scheduler { return s.sched }

// SetEventSink sets the optional event bridge.
func (s *Session) SetEventSink(sink EventSink) {
	s.sink = sink
}

// --- Rotation listener ---

func (s *Session) rotationStarted(e RotationEvent) {
	if s.state == StateOutro {
		s.outro.Stop()
		s.logger.Debug("outro cancelled")
	}
	before := s.bounds()

	s.state = StateCalibrating
	s.active = true
	s.radius = e.Radius
	s.introTarget = e.Radius
	s.lastAngleDeg = 0
	s.visuals = Visuals{
		Center:         e.Center,
		Point1:         e.Point1,
		Point2:         e.Point2,
		Alpha:          1,
		RingVisible:    true,
		FingersVisible: true,
		NeedleVisible:  true,
	}
	s.intro.Restart()
	s.invalidate(before)

	s.logger.Debug("calibration began", "radius", e.Radius, "center", e.Center, "mode", e.Mode)
	s.driver.CalibrationBegan()
	s.emit(EventCalibrationBegan, 0)
}

func (s *Session) rotated(e RotationEvent) {
	before := s.bounds()

	angle := NormalizeDegrees(e.Angle)
	s.radius = e.Radius
	s.introTarget = e.Radius
	s.lastAngleDeg = angle

	s.visuals.Center = e.Center
	s.visuals.Point1 = e.Point1
	s.visuals.Point2 = e.Point2
	s.visuals.Heading = angle
	if s.intro.Ended() {
		s.visuals.Radius = e.Radius
	}
	s.invalidate(before)

	s.driver.CalibrationChanged(angle)
	s.emit(EventCalibrationChanged, angle)
}

func (s *Session) rotationEnded(e RotationEvent) {
	before := s.bounds()

	s.active = false
	s.state = StateOutro
	s.intro.Stop()
	s.visuals.FingersVisible = false
	s.outroFrom = s.visuals.Radius
	s.outro.Restart()
	s.invalidate(before)

	s.logger.Debug("calibration ended", "angle", s.lastAngleDeg)
	s.driver.CalibrationEnded()
	s.emit(EventCalibrationEnded, s.lastAngleDeg)
}

// --- Clip callbacks ---

func (s *Session) renderIntro(scale float64) (Rect, bool) {
	before := s.bounds()
	s.visuals.Radius = s.introTarget * scale
	return before.Union(s.bounds()), true
}

func (s *Session) introEnded() {
	before := s.bounds()
	s.visuals.Radius = s.radius
	s.invalidate(before)
}

func (s *Session) renderOutro(scale float64) (Rect, bool) {
	before := s.bounds()
	if before.Empty() {
		return Rect{}, false
	}
	s.visuals.Radius = s.outroFrom * (1 - scale)
	if s.visuals.Radius < 0 {
		s.visuals.Radius = 0
	}
	s.visuals.Alpha = clamp01(1 - scale)
	return before.Union(s.bounds()), true
}

func (s *Session) outroEnded() {
	// A rotation may have started again since the outro began.
	if s.state != StateOutro {
		return
	}
	before := s.bounds()
	s.visuals.RingVisible = false
	s.visuals.FingersVisible = false
	s.visuals.NeedleVisible = false
	s.state = StateInactive
	s.invalidate(before)
	s.logger.Debug("widget hidden")
}

// --- Helpers ---

// trackFingers keeps the finger markers on the live touch points while a
// gesture is in progress.
func (s *Session) trackFingers() {
	if s.state != StateCalibrating {
		return
	}
	t := s.detector.Touches()
	p1, ok1 := t.Point1()
	p2, ok2 := t.Point2()
	if !ok1 || !ok2 {
		return
	}
	if p1.Pos() == s.visuals.Point1 && p2.Pos() == s.visuals.Point2 {
		return
	}
	before := s.bounds()
	s.visuals.Point1 = p1.Pos()
	s.visuals.Point2 = p2.Pos()
	s.invalidate(before)
}

func (s *Session) bounds() Rect {
	return s.visuals.Bounds(s.cfg.MarkerPad)
}

// invalidate marks both the old region and the current one as dirty.
func (s *Session) invalidate(before Rect) {
	r := before.Union(s.bounds())
	if r.Empty() {
		return
	}
	s.pending = s.pending.AddDirty(r)
}

func (s *Session) emit(t EventType, angle float64) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(CalibrationEvent{
		Type:        t,
		Angle:       angle,
		Radius:      s.radius,
		Center:      s.visuals.Center,
		TimestampMs: s.nowMs,
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
