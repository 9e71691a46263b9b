// Package ecs publishes dial calibration events into a donburi world.
//
// A session reports three kinds of [dial.CalibrationEvent]: began when a
// rotation starts (Angle 0), changed for every heading update, and ended
// with the final heading. Radius and Center describe the gesture at the
// time of the event and TimestampMs is the session clock.
//
//	session.SetEventSink(ecs.NewDonburiSink(world))
//
//	ecs.CalibrationEventType.Subscribe(world, func(w donburi.World, e dial.CalibrationEvent) {
//		// follow e.Angle
//	})
//	ecs.CalibrationEventType.ProcessEvents(world)
package ecs
