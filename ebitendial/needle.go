package ebitendial

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/dial"
)

// needleTween eases the displayed needle heading toward the session's heading
// along the shorter arc. A zero duration snaps.
type needleTween struct {
	duration float32
	easing   ease.TweenFunc

	shown  float64
	target float64
	tween  *gween.Tween
}

func newNeedleTween(duration float32, fn ease.TweenFunc) needleTween {
	if fn == nil {
		fn = ease.OutCubic
	}
	return needleTween{duration: duration, easing: fn}
}

// update retargets the tween when heading changed and advances it by dt
// seconds. It reports whether the shown heading moved.
func (n *needleTween) update(dt float32, heading float64) bool {
	heading = dial.NormalizeDegrees(heading)
	if heading != n.target {
		n.target = heading
		if n.duration <= 0 {
			n.tween = nil
			moved := n.shown != heading
			n.shown = heading
			return moved
		}
		delta := dial.NormalizeDegrees(heading-n.shown+180) - 180
		n.tween = gween.New(float32(n.shown), float32(n.shown+delta), n.duration, n.easing)
	}
	if n.tween == nil {
		return false
	}
	v, done := n.tween.Update(dt)
	prev := n.shown
	n.shown = dial.NormalizeDegrees(float64(v))
	if done {
		n.shown = n.target
		n.tween = nil
	}
	return n.shown != prev
}

// snap jumps to heading without animating.
func (n *needleTween) snap(heading float64) {
	heading = dial.NormalizeDegrees(heading)
	n.shown = heading
	n.target = heading
	n.tween = nil
}

// heading returns the displayed heading in [0, 360).
func (n *needleTween) heading() float64 {
	return n.shown
}

// moving reports whether a tween is in flight.
func (n *needleTween) moving() bool {
	return n.tween != nil
}
