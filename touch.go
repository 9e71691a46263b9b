package dial

// TouchPoint is the latest known position of one pointer.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// Pos returns the point's position.
func (p TouchPoint) Pos() Point {
	return Point{p.X, p.Y}
}

// touchSlot is one of the two tracked pointer slots. known means the point
// has a position (real or inferred); tracking means a real pointer is down.
type touchSlot struct {
	pt       TouchPoint
	known    bool
	tracking bool
}

// TouchSession tracks up to two pointer identities and their latest
// coordinates. When only one pointer remains after a two-point session (or
// after Anchor), the other point is inferred as the reflection of the
// remaining one through the center.
//
// Unknown pointer ids, a third pointer, and duplicate downs are ignored:
// multi-touch hardware delivers such races in normal operation.
type TouchSession struct {
	slots     [2]touchSlot
	center    Point
	hasCenter bool
}

// Down starts tracking pointer id. It reports whether the pointer was
// accepted into a slot.
func (t *TouchSession) Down(id int, x, y float64) bool {
	if t.slotOf(id) >= 0 {
		return false
	}
	slot := -1
	switch {
	case !t.slots[0].tracking && !t.slots[1].tracking:
		// Fresh session. Any inferred leftovers are discarded.
		t.Reset()
		slot = 0
	case t.slots[0].tracking && !t.slots[1].tracking:
		slot = 1
	case !t.slots[0].tracking && t.slots[1].tracking:
		slot = 0
	default:
		return false
	}

	t.slots[slot] = touchSlot{pt: TouchPoint{ID: id, X: x, Y: y}, known: true, tracking: true}
	if t.slots[0].tracking && t.slots[1].tracking {
		t.center = t.slots[0].pt.Pos().Midpoint(t.slots[1].pt.Pos())
		t.hasCenter = true
	}
	return true
}

// Move updates the position of pointer id. It reports whether id was tracked.
func (t *TouchSession) Move(id int, x, y float64) bool {
	i := t.slotOf(id)
	if i < 0 {
		return false
	}
	t.slots[i].pt.X = x
	t.slots[i].pt.Y = y

	other := 1 - i
	switch {
	case t.slots[other].tracking:
		t.center = t.slots[0].pt.Pos().Midpoint(t.slots[1].pt.Pos())
		t.hasCenter = true
	case t.hasCenter:
		inferred := t.slots[i].pt.Pos().Reflect(t.center)
		t.slots[other].pt.X = inferred.X
		t.slots[other].pt.Y = inferred.Y
		t.slots[other].known = true
	}
	return true
}

// Up stops tracking pointer id. It reports whether id was tracked.
func (t *TouchSession) Up(id int) bool {
	i := t.slotOf(id)
	if i < 0 {
		return false
	}
	if t.slots[0].tracking && t.slots[1].tracking {
		t.center = t.slots[0].pt.Pos().Midpoint(t.slots[1].pt.Pos())
		t.hasCenter = true
	}
	t.slots[i].tracking = false
	if !t.slots[0].tracking && !t.slots[1].tracking {
		t.Reset()
	}
	return true
}

// Anchor starts a single-pointer session around a caller-supplied center.
// The second point is synthesized as the reflection of (x, y) and follows
// every later Move of id. Any previous state is discarded.
func (t *TouchSession) Anchor(id int, x, y float64, center Point) {
	t.Reset()
	p := TouchPoint{ID: id, X: x, Y: y}
	q := p.Pos().Reflect(center)
	t.slots[0] = touchSlot{pt: p, known: true, tracking: true}
	t.slots[1] = touchSlot{pt: TouchPoint{ID: -1, X: q.X, Y: q.Y}, known: true}
	t.center = center
	t.hasCenter = true
}

// Reset clears all points and the center.
func (t *TouchSession) Reset() {
	*t = TouchSession{}
}

// Point1 returns the first point and whether it is known.
func (t TouchSession) Point1() (TouchPoint, bool) {
	return t.slots[0].pt, t.slots[0].known
}

// Point2 returns the second point and whether it is known.
func (t TouchSession) Point2() (TouchPoint, bool) {
	return t.slots[1].pt, t.slots[1].known
}

// Center returns the center point and whether it is set.
func (t TouchSession) Center() (Point, bool) {
	return t.center, t.hasCenter
}

// Tracking1 reports whether a real pointer holds the first slot.
func (t TouchSession) Tracking1() bool { return t.slots[0].tracking }

// Tracking2 reports whether a real pointer holds the second slot.
func (t TouchSession) Tracking2() bool { return t.slots[1].tracking }

// Tracked returns how many real pointers are down (0, 1 or 2).
func (t TouchSession) Tracked() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].tracking {
			n++
		}
	}
	return n
}

// IsTracking reports whether pointer id is currently tracked.
func (t TouchSession) IsTracking(id int) bool {
	return t.slotOf(id) >= 0
}

// slotOf returns the slot index tracking id, or -1.
func (t TouchSession) slotOf(id int) int {
	for i := range t.slots {
		if t.slots[i].tracking && t.slots[i].pt.ID == id {
			return i
		}
	}
	return -1
}
