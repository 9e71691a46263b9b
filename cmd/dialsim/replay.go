package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phanxgames/dial"
)

var optFrameMs int64
var optMaxFrames int

var replayCmd = &cobra.Command{
	Use:   "replay SCRIPT",
	Short: "Play a gesture script headlessly and print the driver events",
	Long: `Replay a JSON gesture script against a session driven by a manual clock.

Each frame advances the clock by --frame-ms. Driver events are printed to
stdout as they happen; the run stops once the script is done and the
animations have settled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaultSlog(cmd, args)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		c, err := loadSimConfig(viper.GetViper())
		if err != nil {
			return err
		}
		stats, err := runReplay(cmd.OutOrStdout(), slog.Default(), c, data, optFrameMs, optMaxFrames)
		if err != nil {
			return err
		}
		slog.Info("Replay done", "frames", stats.Frames, "began", stats.Began,
			"changed", stats.Changed, "ended", stats.Ended, "angle", stats.Angle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Int64Var(&optFrameMs, "frame-ms", 16, "milliseconds per frame")
	replayCmd.Flags().IntVar(&optMaxFrames, "max-frames", 10000, "stop after this many frames")
}

type replayStats struct {
	Frames                int
	Began, Changed, Ended int
	Angle                 float64
}

// runReplay plays script on a fresh session until the script is done and
// no animation is running, or maxFrames is reached.
func runReplay(out io.Writer, logger *slog.Logger, c simConfig, script []byte, frameMs int64, maxFrames int) (replayStats, error) {
	if frameMs <= 0 || maxFrames <= 0 {
		return replayStats{}, fmt.Errorf("frame-ms %d, max-frames %d: %w", frameMs, maxFrames, dial.ErrInvalidArgument)
	}
	runner, err := dial.LoadScript(script)
	if err != nil {
		return replayStats{}, err
	}
	cfg, err := c.sessionConfig(logger)
	if err != nil {
		return replayStats{}, err
	}
	clock := &dial.ManualClock{}
	cfg.Clock = clock

	driver := &logDriver{logger: logger, out: out}
	s, err := dial.NewSession(cfg, driver)
	if err != nil {
		return replayStats{}, err
	}
	s.SetScriptRunner(runner)

	frames := 0
	for frames < maxFrames {
		s.Update(clock.NowMs())
		frames++
		if runner.Done() && s.PendingInjections() == 0 && s.State() == dial.StateInactive {
			break
		}
		clock.Advance(frameMs)
	}
	if frames >= maxFrames && !runner.Done() {
		logger.Warn("Replay stopped before script finished", "frames", frames)
	}
	return replayStats{
		Frames:  frames,
		Began:   driver.began,
		Changed: driver.changed,
		Ended:   driver.ended,
		Angle:   s.LastAngle(),
	}, nil
}
