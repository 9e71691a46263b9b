package dial

// Driver is the device-control collaborator. It receives one call per
// calibration event; angles are degrees in [0, 360).
type Driver interface {
	CalibrationBegan()
	CalibrationChanged(angleDeg float64)
	CalibrationEnded()
}

// DriverFuncs adapts plain functions to a Driver. Nil fields are skipped.
type DriverFuncs struct {
	Began   func()
	Changed func(angleDeg float64)
	Ended   func()
}

func (f DriverFuncs) CalibrationBegan() {
	if f.Began != nil {
		f.Began()
	}
}

func (f DriverFuncs) CalibrationChanged(angleDeg float64) {
	if f.Changed != nil {
		f.Changed(angleDeg)
	}
}

func (f DriverFuncs) CalibrationEnded() {
	if f.Ended != nil {
		f.Ended()
	}
}

// EventSink is the interface for optional event bridges (ECS worlds, logs).
// When set on a Session, every calibration event is forwarded to it.
type EventSink interface {
	EmitEvent(event CalibrationEvent)
}

// CalibrationEvent carries calibration data for event bridges.
type CalibrationEvent struct {
	Type        EventType
	Angle       float64 // 0 for began, current heading for changed, final heading for ended
	Radius      float64
	Center      Point
	TimestampMs int64
}
