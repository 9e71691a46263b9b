// Package termdial runs a dial.Session in a terminal with bubbletea.
//
// The terminal mouse acts as a single pointer on a knob centered in the
// window, so the session should use dial.AnchorSingle. Animation ticks are
// reposted with tea.Tick after the session's NextDelay.
package termdial
