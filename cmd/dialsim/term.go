package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/dial"
	"github.com/phanxgames/dial/termdial"
)

var optLogFile string

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Turn the dial in the terminal with the mouse",
	Long: `Render the dial in the terminal and drag the knob with the mouse.

The terminal only reports one pointer, so the session always runs in single
mode. Logs go to --log-file since stderr shares the screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var out io.Writer = io.Discard
		if optLogFile != "" {
			f, err := os.OpenFile(optLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		level := slog.LevelInfo
		if optVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

		driver := &logDriver{logger: logger}
		s, err := newSession(logger, driver, func(c *dial.SessionConfig) {
			c.Detector.Mode = dial.AnchorSingle
		})
		if err != nil {
			return err
		}
		tc := termdial.DefaultConfig()
		tc.KnobHole = optKnobHole
		return termdial.Run(termdial.New(s, tc))
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
	termCmd.Flags().StringVar(&optLogFile, "log-file", "", "append logs to this file")
	termCmd.Flags().Float64Var(&optKnobHole, "knob-hole", 0, "fraction of the knob radius that ignores presses (0 for a full disc)")
}
