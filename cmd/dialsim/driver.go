package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phanxgames/dial"
)

// logDriver stands in for the device: it logs every calibration event and,
// when out is set, prints one line per event.
type logDriver struct {
	logger *slog.Logger
	out    io.Writer

	began, changed, ended int
	last                  float64
}

var _ dial.Driver = (*logDriver)(nil)

func (d *logDriver) CalibrationBegan() {
	d.began++
	d.logger.Info("calibration began")
	d.printf("began\n")
}

func (d *logDriver) CalibrationChanged(angleDeg float64) {
	d.changed++
	d.last = angleDeg
	d.logger.Debug("calibration changed", "angle", angleDeg)
	d.printf("changed %.2f\n", angleDeg)
}

func (d *logDriver) CalibrationEnded() {
	d.ended++
	d.logger.Info("calibration ended", "angle", d.last)
	d.printf("ended %.2f\n", d.last)
}

func (d *logDriver) printf(format string, args ...any) {
	if d.out != nil {
		fmt.Fprintf(d.out, format, args...)
	}
}
