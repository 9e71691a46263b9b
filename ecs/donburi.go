package ecs

import (
	"github.com/phanxgames/dial"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CalibrationEventType carries every calibration event published by a
// donburi sink. Systems subscribe with CalibrationEventType.Subscribe and
// receive the queued events on the world's next ProcessEvents.
var CalibrationEventType = events.NewEventType[dial.CalibrationEvent]()

// worldSink publishes calibration events of the selected types into world.
type worldSink struct {
	world donburi.World
	only  [3]bool
	all   bool
}

// NewDonburiSink returns a dial.EventSink that publishes to
// CalibrationEventType in world. With no types every event is published;
// otherwise only the listed ones, e.g. EventCalibrationChanged for systems
// that only follow the heading.
func NewDonburiSink(world donburi.World, types ...dial.EventType) dial.EventSink {
	s := &worldSink{world: world, all: len(types) == 0}
	for _, t := range types {
		if int(t) < len(s.only) {
			s.only[t] = true
		}
	}
	return s
}

func (s *worldSink) EmitEvent(e dial.CalibrationEvent) {
	if !s.all && (int(e.Type) >= len(s.only) || !s.only[e.Type]) {
		return
	}
	CalibrationEventType.Publish(s.world, e)
}
