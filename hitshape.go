package dial

// HitShape is a region used to decide whether a touch lands on the knob.
// HitCircle, HitRing and Rect implement it.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitRing is an annulus: the area between Inner and Outer radius. Useful for
// a dial whose center should not start a rotation.
type HitRing struct {
	CenterX, CenterY float64
	Inner, Outer     float64
}

// Contains reports whether (x, y) lies within the ring, edges included.
func (r HitRing) Contains(x, y float64) bool {
	dx := x - r.CenterX
	dy := y - r.CenterY
	d2 := dx*dx + dy*dy
	return d2 >= r.Inner*r.Inner && d2 <= r.Outer*r.Outer
}

// KnobShape returns the hit area of a knob of the given radius around center.
// hole is the fraction of the radius that does not start a rotation. Values
// outside (0, 1) give a full disc.
func KnobShape(center Point, radius, hole float64) HitShape {
	if hole <= 0 || hole >= 1 {
		return HitCircle{CenterX: center.X, CenterY: center.Y, Radius: radius}
	}
	return HitRing{CenterX: center.X, CenterY: center.Y, Inner: radius * hole, Outer: radius}
}
