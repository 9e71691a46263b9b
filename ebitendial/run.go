package ebitendial

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// TPS sets ticks per second; zero keeps ebiten's default of 60.
	TPS int
}

// Run opens a resizable window and runs w until the window is closed or an
// update returns an error.
func Run(w *Widget, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 480
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title == "" {
		cfg.Title = "dial"
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	w.SetShowFPS(cfg.ShowFPS)
	return ebiten.RunGame(w)
}
