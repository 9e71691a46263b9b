package dial

import "math"

// Point is an immutable 2D position in screen coordinates (origin top-left,
// Y increasing downward). Every operation returns a new value.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Len returns the distance from the origin.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the direction of p. A zero vector has
// no direction, so it maps to (1, 0).
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{1, 0}
	}
	return Point{p.X / l, p.Y / l}
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return p.Add(q).Mul(0.5)
}

// Reflect returns the reflection of p through center: 2*center - p.
func (p Point) Reflect(center Point) Point {
	return center.Mul(2).Sub(p)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// RectAround returns the square of half-size r centered on c.
func RectAround(c Point, r float64) Rect {
	if r < 0 {
		r = 0
	}
	return Rect{X: c.X - r, Y: c.Y - r, Width: 2 * r, Height: 2 * r}
}

// Contains reports whether (x, y) lies in r, edges included. A Rect is
// therefore also a HitShape.
func (r Rect) Contains(x, y float64) bool {
	dx, dy := x-r.X, y-r.Y
	return dx >= 0 && dy >= 0 && dx <= r.Width && dy <= r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing both r and other.
// An empty operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset grows the rectangle by d on every side (shrinks for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Pointer is one pointer update inside a batched move.
type Pointer struct {
	ID   int
	X, Y float64
}

// GestureState is the rotation detector's state.
type GestureState uint8

const (
	GestureIdle          GestureState = iota // no qualifying pointer down
	GestureOnePointDown                      // one pointer tracked
	GestureTwoPointsDown                     // two pointers tracked, no move yet
	GestureRotating                          // baseline captured, emitting rotation
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureOnePointDown:
		return "one-point-down"
	case GestureTwoPointsDown:
		return "two-points-down"
	case GestureRotating:
		return "rotating"
	default:
		return "unknown"
	}
}

// AnchorMode selects how the detector obtains its second point.
type AnchorMode uint8

const (
	AnchorTwoFinger AnchorMode = iota // both points come from real pointers
	AnchorSingle                      // second point is the reflection through a fixed center
)

func (m AnchorMode) String() string {
	switch m {
	case AnchorTwoFinger:
		return "two-finger"
	case AnchorSingle:
		return "single"
	default:
		return "unknown"
	}
}

// CalibrationState is the calibration session's lifecycle state.
type CalibrationState uint8

const (
	StateInactive    CalibrationState = iota // widget hidden, no gesture
	StateCalibrating                         // gesture in progress
	StateOutro                               // gesture ended, outro animation running
)

func (s CalibrationState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateCalibrating:
		return "calibrating"
	case StateOutro:
		return "outro"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of calibration event.
type EventType uint8

const (
	EventCalibrationBegan   EventType = iota // rotation gesture started
	EventCalibrationChanged                  // heading changed during the gesture
	EventCalibrationEnded                    // rotation gesture ended
)

func (e EventType) String() string {
	switch e {
	case EventCalibrationBegan:
		return "began"
	case EventCalibrationChanged:
		return "changed"
	case EventCalibrationEnded:
		return "ended"
	default:
		return "unknown"
	}
}
