package ebitendial

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/dial"
)

// meshBuf accumulates untextured triangles for a single DrawTriangles32 call.
// Vertex colors are premultiplied by alpha.
type meshBuf struct {
	verts []ebiten.Vertex
	inds  []uint32
}

func (m *meshBuf) reset() {
	m.verts = m.verts[:0]
	m.inds = m.inds[:0]
}

func (m *meshBuf) empty() bool {
	return len(m.inds) == 0
}

func (m *meshBuf) vertex(x, y float64, c color.RGBA, alpha float64) uint32 {
	a := float32(c.A) / 255 * float32(alpha)
	m.verts = append(m.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		ColorR: float32(c.R) / 255 * a,
		ColorG: float32(c.G) / 255 * a,
		ColorB: float32(c.B) / 255 * a,
		ColorA: a,
	})
	return uint32(len(m.verts) - 1)
}

// ring appends an annulus strip of the given stroke width around center.
// N segments: 2N vertices, 6N indices.
func (m *meshBuf) ring(center dial.Point, radius, width float64, segments int, c color.RGBA, alpha float64) {
	if radius <= 0 || width <= 0 || segments < 3 {
		return
	}
	inner := math.Max(radius-width/2, 0)
	outer := radius + width/2

	base := uint32(len(m.verts))
	for i := 0; i < segments; i++ {
		th := 2 * math.Pi * float64(i) / float64(segments)
		sin, cos := math.Sincos(th)
		m.vertex(center.X+outer*cos, center.Y+outer*sin, c, alpha)
		m.vertex(center.X+inner*cos, center.Y+inner*sin, c, alpha)
	}
	n := uint32(segments)
	for i := uint32(0); i < n; i++ {
		v := base + i*2
		next := base + ((i+1)%n)*2
		m.inds = append(m.inds,
			v, v+1, next,
			v+1, next+1, next,
		)
	}
}

// disc appends a filled circle as a triangle fan: N+1 vertices, 3N indices.
func (m *meshBuf) disc(center dial.Point, radius float64, segments int, c color.RGBA, alpha float64) {
	if radius <= 0 || segments < 3 {
		return
	}
	hub := m.vertex(center.X, center.Y, c, alpha)
	first := uint32(len(m.verts))
	for i := 0; i < segments; i++ {
		th := 2 * math.Pi * float64(i) / float64(segments)
		sin, cos := math.Sincos(th)
		m.vertex(center.X+radius*cos, center.Y+radius*sin, c, alpha)
	}
	n := uint32(segments)
	for i := uint32(0); i < n; i++ {
		m.inds = append(m.inds, hub, first+i, first+(i+1)%n)
	}
}

// line appends a quad of the given width from a to b.
func (m *meshBuf) line(a, b dial.Point, width float64, c color.RGBA, alpha float64) {
	if width <= 0 {
		return
	}
	nx, ny := perpendicular(a, b)
	hw := width / 2
	v0 := m.vertex(a.X+nx*hw, a.Y+ny*hw, c, alpha)
	v1 := m.vertex(a.X-nx*hw, a.Y-ny*hw, c, alpha)
	v2 := m.vertex(b.X+nx*hw, b.Y+ny*hw, c, alpha)
	v3 := m.vertex(b.X-nx*hw, b.Y-ny*hw, c, alpha)
	m.inds = append(m.inds,
		v0, v1, v2,
		v1, v3, v2,
	)
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
// A zero-length segment takes the direction of the x axis.
func perpendicular(a, b dial.Point) (float64, float64) {
	d := b.Sub(a).Normalize()
	return -d.Y, d.X
}

// flush draws the accumulated triangles onto target and resets the buffer.
func (m *meshBuf) flush(target *ebiten.Image) {
	if m.empty() {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(m.verts, m.inds, ensureWhitePixel(), &triOp)
	m.reset()
}

// --- White pixel singleton (single-threaded, like the rest of the widget) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source texture for untextured meshes.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
