package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/dial/ebitendial"
)

var optWidth, optHeight int
var optShowFPS bool
var optKnobHole float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the dial in a desktop window",
	Long: `Open the dial in a resizable ebiten window.

In two-finger mode the dial follows any pair of touches. In single mode the
knob is centered in the window and a mouse drag or a single touch turns it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaultSlog(cmd, args)

		driver := &logDriver{logger: slog.Default()}
		s, err := newSession(slog.Default(), driver, nil)
		if err != nil {
			return err
		}
		style := ebitendial.DefaultStyle()
		style.KnobHole = optKnobHole
		w := ebitendial.NewWidget(s, style)
		slog.Info("Opening window", "width", optWidth, "height", optHeight)
		return ebitendial.Run(w, ebitendial.RunConfig{
			Title:   "dialsim",
			Width:   optWidth,
			Height:  optHeight,
			ShowFPS: optShowFPS,
		})
	},
}

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().IntVar(&optWidth, "width", 480, "window width")
	windowCmd.Flags().IntVar(&optHeight, "height", 480, "window height")
	windowCmd.Flags().BoolVar(&optShowFPS, "show-fps", false, "show the FPS overlay")
	windowCmd.Flags().Float64Var(&optKnobHole, "knob-hole", 0, "fraction of the knob radius that ignores presses (0 for a full disc)")
}
