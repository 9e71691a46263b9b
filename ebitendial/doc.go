// Package ebitendial draws a dial.Session in an ebiten window.
//
// The mouse acts as pointer 0 and touches occupy pointers 1-9, so a
// two-finger rotation works on touch screens and a single-touch knob works
// with the mouse. Rendering is incremental: only the dirty region reported by
// the session is repainted on an offscreen canvas.
//
//	s, _ := dial.NewSession(dial.DefaultSessionConfig(), driver)
//	w := ebitendial.NewWidget(s, ebitendial.DefaultStyle())
//	err := ebitendial.Run(w, ebitendial.RunConfig{Title: "Calibrate", ShowFPS: true})
package ebitendial
