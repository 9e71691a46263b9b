package ebitendial

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/dial"
)

// Style controls how the widget is drawn.
type Style struct {
	Background color.RGBA
	Ring       color.RGBA
	Needle     color.RGBA
	Finger     color.RGBA

	RingWidth    float64
	NeedleWidth  float64
	FingerRadius float64
	// Segments is the number of segments used to approximate circles.
	Segments int

	// NeedleSmoothing is the duration in seconds over which the needle eases
	// toward a new heading. Zero snaps.
	NeedleSmoothing float32
	NeedleEase      ease.TweenFunc

	// AutoAnchor re-centers the single-touch knob on every layout change:
	// center of the window, radius KnobFraction of the shorter side.
	AutoAnchor   bool
	KnobFraction float64
	// KnobHole is the fraction of the knob radius around the center that
	// ignores presses. Zero makes the whole knob live.
	KnobHole float64
}

// DefaultStyle returns a dark theme with a light-blue ring.
func DefaultStyle() Style {
	return Style{
		Background:      color.RGBA{R: 30, G: 30, B: 40, A: 255},
		Ring:            color.RGBA{R: 80, G: 180, B: 255, A: 255},
		Needle:          color.RGBA{R: 255, G: 200, B: 80, A: 255},
		Finger:          color.RGBA{R: 255, G: 255, B: 255, A: 160},
		RingWidth:       6,
		NeedleWidth:     4,
		FingerRadius:    18,
		Segments:        64,
		NeedleSmoothing: 0.08,
		NeedleEase:      ease.OutCubic,
		AutoAnchor:      true,
		KnobFraction:    0.3,
	}
}

// Widget renders a dial.Session with ebiten. It implements ebiten.Game, so
// it can be passed to ebiten.RunGame directly or through Run.
//
// Only regions reported dirty by the session are repainted on the offscreen
// canvas; the canvas is then composited onto the screen every frame.
type Widget struct {
	session *dial.Session
	clock   dial.Clock
	style   Style

	tracker pointerTracker
	needle  needleTween
	mesh    meshBuf

	canvas        *ebiten.Image
	width, height int
	pending       dial.Invalidation
	lastMs        int64
	ticked        bool
	wasVisible    bool

	fps        *fpsOverlay
	showFPS    bool
	updateFunc func() error
}

// NewWidget creates a widget drawing s. The session's scheduler clock is used
// for all timing.
func NewWidget(s *dial.Session, style Style) *Widget {
	if style.Segments < 3 {
		style.Segments = 3
	}
	return &Widget{
		session: s,
		clock:   s.Scheduler().Clock(),
		style:   style,
		needle:  newNeedleTween(style.NeedleSmoothing, style.NeedleEase),
		pending: dial.Invalidation{Full: true},
	}
}

// Session returns the widget's session.
func (w *Widget) Session() *dial.Session { return w.session }

// Style returns the widget's style.
func (w *Widget) Style() Style { return w.style }

// SetUpdateFunc sets a callback run at the end of every Update.
func (w *Widget) SetUpdateFunc(fn func() error) {
	w.updateFunc = fn
}

// SetShowFPS toggles the FPS overlay.
func (w *Widget) SetShowFPS(show bool) {
	w.showFPS = show
}

// Update polls pointers, feeds them to the session and ticks its animations.
func (w *Widget) Update() error {
	now := w.clock.NowMs()
	var dt float32
	if w.ticked {
		dt = float32(now-w.lastMs) / 1000
	}
	w.lastMs, w.ticked = now, true

	w.tracker.apply(w.tracker.poll(), now, w.session)
	w.step(now, dt)

	if w.showFPS {
		if w.fps == nil {
			w.fps = newFPSOverlay()
		}
		w.fps.update(float64(dt), w.status())
	}
	if w.updateFunc != nil {
		return w.updateFunc()
	}
	return nil
}

// step advances the session and the needle tween without touching ebiten
// input state.
func (w *Widget) step(now int64, dt float32) {
	w.pending = w.pending.Merge(w.session.Update(now))

	v := w.session.Visuals()
	if v.Visible() && !w.wasVisible {
		w.needle.snap(v.Heading)
	}
	w.wasVisible = v.Visible()

	if w.needle.update(dt, v.Heading) && v.NeedleVisible {
		w.pending = w.pending.AddDirty(dial.RectAround(v.Center, v.Radius).Inset(w.style.NeedleWidth+1))
	}
}

// status is the one-line state summary shown in the FPS overlay: state,
// heading, pointers down, and a tilde while the needle is still easing.
func (w *Widget) status() string {
	s := fmt.Sprintf("%s %.0f p%d", w.session.State(), w.session.LastAngle(), w.tracker.down())
	if w.needle.moving() {
		s += " ~"
	}
	return s
}

// Draw repaints the dirty part of the canvas and composites it onto screen.
func (w *Widget) Draw(screen *ebiten.Image) {
	if w.width <= 0 || w.height <= 0 {
		b := screen.Bounds()
		w.resize(b.Dx(), b.Dy())
	}
	if w.canvas == nil {
		w.canvas = ebiten.NewImage(w.width, w.height)
		w.pending.Full = true
	}

	switch {
	case w.pending.Full:
		w.repaint(w.canvas)
	case w.pending.HasDirty:
		r := dirtyRect(w.pending.Dirty, w.canvas.Bounds())
		if !r.Empty() {
			w.repaint(w.canvas.SubImage(r).(*ebiten.Image))
		}
	}
	w.pending = dial.Invalidation{}

	screen.DrawImage(w.canvas, nil)
	if w.showFPS && w.fps != nil {
		w.fps.draw(screen)
	}
}

// Layout tracks the window size. A size change reallocates the canvas and,
// with AutoAnchor, moves the single-touch knob to the window center.
func (w *Widget) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (w *Widget) resize(width, height int) {
	w.width, w.height = width, height
	if w.canvas != nil {
		w.canvas.Deallocate()
		w.canvas = nil
	}
	w.pending.Full = true

	if w.style.AutoAnchor {
		center, radius := knobGeometry(width, height, w.style.KnobFraction)
		w.session.SetAnchor(center, radius, knobShape(center, radius, w.style))
	}
}

// knobShape is the press area of the knob: its disc grown by a finger radius,
// minus KnobHole.
func knobShape(center dial.Point, radius float64, st Style) dial.HitShape {
	outer := radius + st.FingerRadius
	return dial.KnobShape(center, outer, st.KnobHole*radius/outer)
}

// knobGeometry centers the knob in a width x height surface.
func knobGeometry(width, height int, fraction float64) (dial.Point, float64) {
	if fraction <= 0 {
		fraction = 0.3
	}
	short := math.Min(float64(width), float64(height))
	return dial.Pt(float64(width)/2, float64(height)/2), short * fraction
}

// repaint clears dst to the background and redraws every visible part. dst
// may be a sub-image of the canvas; drawing is clipped to its bounds.
func (w *Widget) repaint(dst *ebiten.Image) {
	dst.Fill(w.style.Background)

	v := w.session.Visuals()
	if !v.Visible() {
		return
	}
	st := &w.style
	if v.RingVisible {
		w.mesh.ring(v.Center, v.Radius, st.RingWidth, st.Segments, st.Ring, v.Alpha)
	}
	if v.NeedleVisible && v.Radius > 0 {
		tip := dial.FingerAt(v.Center, v.Radius, w.needle.heading())
		w.mesh.line(v.Center, tip, st.NeedleWidth, st.Needle, v.Alpha)
		w.mesh.disc(v.Center, st.NeedleWidth, st.Segments/4+3, st.Needle, v.Alpha)
	}
	if v.FingersVisible {
		w.mesh.disc(v.Point1, st.FingerRadius, st.Segments/2+3, st.Finger, v.Alpha)
		w.mesh.disc(v.Point2, st.FingerRadius, st.Segments/2+3, st.Finger, v.Alpha)
	}
	w.mesh.flush(dst)
}

// dirtyRect converts a dirty region to whole pixels covering it, clipped to
// bounds.
func dirtyRect(r dial.Rect, bounds image.Rectangle) image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	out := image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)),
		int(math.Ceil(r.Y+r.Height)),
	)
	return out.Intersect(bounds)
}
