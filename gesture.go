package dial

import "math"

// NormalizeDegrees maps any angle into [0, 360). It never returns 360.
// NaN and infinities map to 0.
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

// AngleOf returns the direction of p as seen from center, in degrees within
// [0, 360). A point straight above center is 0 and a point to its left is 90,
// so the angle grows counterclockwise on a y-down screen.
func AngleOf(center, p Point) float64 {
	rad := math.Atan2(center.X-p.X, center.Y-p.Y)
	return NormalizeDegrees(rad * 180 / math.Pi)
}

// RadiusOf returns half the distance between p and q.
func RadiusOf(p, q Point) float64 {
	return p.Sub(q).Len() / 2
}

// RotationEvent carries the geometry of one gesture update. Angle is the
// rotation relative to the baseline captured when the gesture started,
// normalized to [0, 360); it is 0 for the started event.
type RotationEvent struct {
	Angle  float64
	Point1 Point
	Point2 Point
	Center Point
	Radius float64
	Mode   AnchorMode
}

// RotationListener receives the detector's output, one method per event.
type RotationListener interface {
	RotationStarted(e RotationEvent)
	Rotated(e RotationEvent)
	RotationEnded(e RotationEvent)
}

// RotationFuncs adapts plain functions to a RotationListener. Nil fields are
// skipped.
type RotationFuncs struct {
	OnStarted func(RotationEvent)
	OnRotated func(RotationEvent)
	OnEnded   func(RotationEvent)
}

func (f RotationFuncs) RotationStarted(e RotationEvent) {
	if f.OnStarted != nil {
		f.OnStarted(e)
	}
}

func (f RotationFuncs) Rotated(e RotationEvent) {
	if f.OnRotated != nil {
		f.OnRotated(e)
	}
}

func (f RotationFuncs) RotationEnded(e RotationEvent) {
	if f.OnEnded != nil {
		f.OnEnded(e)
	}
}

// DetectorConfig supplies the geometry of the input surface.
type DetectorConfig struct {
	// Mode selects the input surface. AnchorTwoFinger recognizes two-finger
	// rotation anywhere. AnchorSingle starts a rotation as soon as one pointer
	// lands inside Knob, mirrored through Center with a fixed Radius.
	Mode   AnchorMode
	Knob   HitShape
	Center Point
	Radius float64
}

// Detector is the rotation gesture state machine. It consumes pointer
// events, keeps the two gesture points in a TouchSession, and reports
// started, rotated and ended events relative to the baseline angle captured
// at rotation start.
type Detector struct {
	cfg      DetectorConfig
	touches  TouchSession
	state    GestureState
	listener RotationListener

	mode        AnchorMode // mode of the gesture in progress
	fixedRadius float64
	startAngle  float64
	last        RotationEvent
}

// NewDetector creates an idle detector reporting to l. A nil listener drops
// all events.
func NewDetector(cfg DetectorConfig, l RotationListener) *Detector {
	if l == nil {
		l = RotationFuncs{}
	}
	return &Detector{cfg: cfg, listener: l}
}

// State returns the current gesture state.
func (d *Detector) State() GestureState { return d.state }

// Touches returns a snapshot of the tracked points.
func (d *Detector) Touches() TouchSession { return d.touches }

// Config returns the detector's geometry.
func (d *Detector) Config() DetectorConfig { return d.cfg }

// Last returns the most recent event emitted.
func (d *Detector) Last() RotationEvent { return d.last }

// StartAngle returns the baseline raw angle of the gesture in progress.
func (d *Detector) StartAngle() float64 { return d.startAngle }

// SetAnchor replaces the single-touch geometry, e.g. after a layout change.
// A gesture in progress keeps the geometry it started with.
func (d *Detector) SetAnchor(center Point, radius float64, knob HitShape) {
	d.cfg.Center = center
	d.cfg.Radius = radius
	d.cfg.Knob = knob
}

// Down handles a pointer press.
func (d *Detector) Down(id int, x, y float64) {
	if d.state == GestureRotating {
		return
	}
	if d.cfg.Mode == AnchorSingle {
		if d.state == GestureIdle && d.cfg.Knob != nil && d.cfg.Knob.Contains(x, y) {
			d.StartSingle(id, x, y, d.cfg.Center, d.cfg.Radius)
		}
		return
	}
	if !d.touches.Down(id, x, y) {
		return
	}
	d.syncState()
}

// Move handles one batch of pointer moves. Untracked ids are ignored.
func (d *Detector) Move(pts ...Pointer) {
	moved := false
	for _, p := range pts {
		if d.touches.Move(p.ID, p.X, p.Y) {
			moved = true
		}
	}
	if !moved {
		return
	}

	switch d.state {
	case GestureTwoPointsDown:
		if d.touches.Tracked() == 2 {
			d.begin(AnchorTwoFinger, 0)
		}
	case GestureRotating:
		e := d.event()
		d.last = e
		d.listener.Rotated(e)
	}
}

// Up handles a pointer release. Releasing a gesture point while rotating
// ends the rotation.
func (d *Detector) Up(id int) {
	if !d.touches.IsTracking(id) {
		return
	}
	if d.state == GestureRotating {
		e := d.event()
		d.touches.Up(id)
		d.finish(e)
		return
	}
	d.touches.Up(id)
	d.syncState()
}

// StartSingle begins a rotation from one pointer at (x, y) around center.
// The second point is the reflection of the first through center and the
// reported radius stays fixed for the whole gesture. A rotation already in
// progress is ended first.
func (d *Detector) StartSingle(id int, x, y float64, center Point, radius float64) {
	if d.state == GestureRotating {
		d.Cancel()
	}
	if radius < 0 {
		radius = 0
	}
	d.touches.Anchor(id, x, y, center)
	d.begin(AnchorSingle, radius)
}

// Cancel ends a rotation in progress, emitting ended with the last known
// points, and forgets all pointers.
func (d *Detector) Cancel() {
	if d.state == GestureRotating {
		e := d.event()
		d.touches.Reset()
		d.finish(e)
		return
	}
	d.touches.Reset()
	d.state = GestureIdle
}

// begin captures the baseline and emits started.
func (d *Detector) begin(mode AnchorMode, radius float64) {
	d.mode = mode
	d.fixedRadius = radius
	d.state = GestureRotating

	p1, _ := d.touches.Point1()
	c, _ := d.touches.Center()
	d.startAngle = AngleOf(c, p1.Pos())

	e := d.event()
	e.Angle = 0
	d.last = e
	d.listener.RotationStarted(e)
}

func (d *Detector) finish(e RotationEvent) {
	d.state = GestureIdle
	d.last = e
	d.listener.RotationEnded(e)
}

// event builds a RotationEvent from the current points.
func (d *Detector) event() RotationEvent {
	p1, _ := d.touches.Point1()
	p2, _ := d.touches.Point2()
	c, _ := d.touches.Center()
	e := RotationEvent{
		Point1: p1.Pos(),
		Point2: p2.Pos(),
		Center: c,
		Mode:   d.mode,
	}
	if d.mode == AnchorSingle {
		e.Radius = d.fixedRadius
	} else {
		e.Radius = RadiusOf(e.Point1, e.Point2)
	}
	e.Angle = NormalizeDegrees(AngleOf(c, e.Point1) - d.startAngle)
	return e
}

// syncState derives the pre-rotation state from the tracked pointer count.
func (d *Detector) syncState() {
	switch d.touches.Tracked() {
	case 0:
		d.state = GestureIdle
	case 1:
		d.state = GestureOnePointDown
	default:
		d.state = GestureTwoPointsDown
	}
}
