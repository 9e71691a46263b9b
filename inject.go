package dial

import "math"

type touchAction uint8

const (
	touchDown touchAction = iota
	touchMove
	touchUp
)

// syntheticTouch is a single injected touch event. Moves may batch several
// pointers, like a real multi-touch move.
type syntheticTouch struct {
	action touchAction
	pts    []Pointer
}

// InjectDown queues a pointer press. Injected events are consumed one per
// Update call, in order.
func (s *Session) InjectDown(id int, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticTouch{
		action: touchDown,
		pts:    []Pointer{{ID: id, X: x, Y: y}},
	})
}

// InjectMove queues a batched pointer move.
func (s *Session) InjectMove(pts ...Pointer) {
	if len(pts) == 0 {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticTouch{
		action: touchMove,
		pts:    append([]Pointer(nil), pts...),
	})
}

// InjectUp queues a pointer release.
func (s *Session) InjectUp(id int, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticTouch{
		action: touchUp,
		pts:    []Pointer{{ID: id, X: x, Y: y}},
	})
}

// InjectRotate queues a full two-finger rotation: two fingers land on
// opposite sides of center at fromDeg, sweep to toDeg over frames moves, and
// lift. The whole sequence consumes frames+5 Update calls.
func (s *Session) InjectRotate(center Point, radius, fromDeg, toDeg float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	p := FingerAt(center, radius, fromDeg)
	q := p.Reflect(center)
	s.InjectDown(1, p.X, p.Y)
	s.InjectDown(2, q.X, q.Y)
	for i := 0; i <= frames; i++ {
		t := float64(i) / float64(frames)
		p = FingerAt(center, radius, fromDeg+(toDeg-fromDeg)*t)
		q = p.Reflect(center)
		s.InjectMove(Pointer{ID: 1, X: p.X, Y: p.Y}, Pointer{ID: 2, X: q.X, Y: q.Y})
	}
	s.InjectUp(2, q.X, q.Y)
	s.InjectUp(1, p.X, p.Y)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Session) PendingInjections() int {
	return len(s.injectQueue)
}

// FingerAt returns the point at distance radius from center whose AngleOf is
// deg.
func FingerAt(center Point, radius, deg float64) Point {
	rad := deg * math.Pi / 180
	return center.Sub(Pt(math.Sin(rad), math.Cos(rad)).Mul(radius))
}

// processInjected pops one event from the inject queue and feeds it through
// the regular touch entry points. Returns true if an event was consumed.
func (s *Session) processInjected(nowMs int64) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = syntheticTouch{}
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.action {
	case touchDown:
		p := evt.pts[0]
		s.Down(p.ID, p.X, p.Y, nowMs)
	case touchMove:
		s.Move(nowMs, evt.pts...)
	case touchUp:
		p := evt.pts[0]
		s.Up(p.ID, p.X, p.Y, nowMs)
	}
	return true
}
