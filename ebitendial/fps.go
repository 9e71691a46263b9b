package ebitendial

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS, TPS and dial state in the top-left
// corner. The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
	status     string
}

func newFPSOverlay() *fpsOverlay {
	// 160x48 is enough for three short lines of debug text.
	return &fpsOverlay{img: ebiten.NewImage(160, 48)}
}

func (o *fpsOverlay) update(dt float64, status string) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 && status == o.status {
		return
	}
	o.lastUpdate = 0
	o.status = status

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), status))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
