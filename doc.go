// Package dial is the gesture and animation core of a touch calibration
// widget: the user turns a dial with two fingers (or one finger on a knob) to
// set a device heading while the widget animates in and out.
//
// The package has no rendering or platform dependency. Front-ends feed it
// pointer events and ticks; see the ebitendial and termdial packages.
//
// # Pipeline
//
// Raw pointer events flow through four layers:
//
//	TouchSession -> Detector -> Session -> Scheduler
//
// A [TouchSession] tracks up to two pointers and infers a missing point by
// reflection through a known center. A [Detector] turns those points into
// started/rotated/ended [RotationEvent] values relative to the angle at which
// the rotation started. A [Session] maps rotation events to [Driver] calls
// and drives the intro and outro [Clip] animations through a [Scheduler].
//
// # Quick start
//
//	s, err := dial.NewSession(dial.DefaultSessionConfig(), dial.DriverFuncs{
//		Changed: func(deg float64) { robot.SetHeading(deg) },
//	})
//	if err != nil {
//		return err
//	}
//	s.Down(1, 100, 150, now)
//	s.Down(2, 200, 150, now)
//	s.Move(now+16, dial.Pointer{ID: 1, X: 100, Y: 140}, dial.Pointer{ID: 2, X: 200, Y: 160})
//	inv := s.Tick(now + 16) // repaint inv.Dirty, or everything if inv.Full
//
// # Frame pacing
//
// Clips compute their frame from elapsed wall-clock time, so a late tick
// skips ahead rather than slowing the animation down. There is no global
// animation driver: the host calls [Session.Tick] and asks to be called again
// after [Session.NextDelay].
//
// Easing uses [gween] easing functions through [EaseInterpolator].
//
// [gween]: https://github.com/tanema/gween
package dial
