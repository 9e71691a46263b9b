package ebitendial

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/dial"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// pointerSample is the polled state of one pointer slot for a frame.
type pointerSample struct {
	slot int
	x, y float64
}

type pointerState struct {
	down         bool
	lastX, lastY float64
}

// pointerTracker turns per-frame pointer polls into press, batched move and
// release calls on a Session.
type pointerTracker struct {
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	samples      []pointerSample
	moved        []dial.Pointer
}

// poll reads the mouse (pointer 0, left button) and every active touch
// (pointers 1-9) from ebiten.
func (t *pointerTracker) poll() []pointerSample {
	t.samples = t.samples[:0]

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		t.samples = append(t.samples, pointerSample{slot: 0, x: float64(mx), y: float64(my)})
	}

	touchIDs := ebiten.AppendTouchIDs(t.prevTouchIDs[:0])
	t.prevTouchIDs = touchIDs
	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := t.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		t.samples = append(t.samples, pointerSample{slot: slot, x: float64(tx), y: float64(ty)})
	}
	t.releaseTouchSlots(active)
	return t.samples
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (t *pointerTracker) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && t.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !t.touchUsed[i] {
			t.touchUsed[i] = true
			t.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// releaseTouchSlots frees the mapping of touch slots not seen this frame.
func (t *pointerTracker) releaseTouchSlots(active [maxPointers]bool) {
	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && !active[i] {
			t.touchUsed[i] = false
			t.touchMap[i] = 0
		}
	}
}

// apply diffs this frame's samples against the previous frame and feeds the
// session: releases first, then presses, then one batched move.
func (t *pointerTracker) apply(samples []pointerSample, nowMs int64, s *dial.Session) {
	var seen [maxPointers]bool
	for _, sm := range samples {
		if sm.slot >= 0 && sm.slot < maxPointers {
			seen[sm.slot] = true
		}
	}

	for i := range t.pointers {
		ps := &t.pointers[i]
		if ps.down && !seen[i] {
			ps.down = false
			s.Up(i, ps.lastX, ps.lastY, nowMs)
		}
	}

	t.moved = t.moved[:0]
	for _, sm := range samples {
		if sm.slot < 0 || sm.slot >= maxPointers {
			continue
		}
		ps := &t.pointers[sm.slot]
		switch {
		case !ps.down:
			ps.down = true
			ps.lastX, ps.lastY = sm.x, sm.y
			s.Down(sm.slot, sm.x, sm.y, nowMs)
		case ps.lastX != sm.x || ps.lastY != sm.y:
			ps.lastX, ps.lastY = sm.x, sm.y
			t.moved = append(t.moved, dial.Pointer{ID: sm.slot, X: sm.x, Y: sm.y})
		}
	}
	if len(t.moved) > 0 {
		s.Move(nowMs, t.moved...)
	}
}

// down reports how many pointers are currently pressed.
func (t *pointerTracker) down() int {
	n := 0
	for i := range t.pointers {
		if t.pointers[i].down {
			n++
		}
	}
	return n
}
