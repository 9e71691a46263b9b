package dial

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	ID     int     `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	CX     float64 `json:"cx,omitempty"`
	CY     float64 `json:"cy,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	From   float64 `json:"from,omitempty"`
	To     float64 `json:"to,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected touch events across frames so a gesture
// can be replayed deterministically. Attach to a Session via SetScriptRunner.
//
// Example script:
//
//	{"steps": [
//		{"action": "rotate", "cx": 160, "cy": 160, "radius": 60, "from": 0, "to": 90, "frames": 10},
//		{"action": "wait", "frames": 20},
//		{"action": "down", "id": 1, "x": 100, "y": 100},
//		{"action": "move", "id": 1, "x": 110, "y": 100},
//		{"action": "up", "id": 1}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script and returns a ScriptRunner ready
// to be attached to a Session via SetScriptRunner.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "down", "move", "up", "rotate", "wait":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the session. The runner steps
// once per Update, before injected events are consumed.
func (s *Session) SetScriptRunner(runner *ScriptRunner) {
	s.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Len returns the number of steps in the script.
func (r *ScriptRunner) Len() int {
	return len(r.steps)
}

// step advances the runner by one frame. Called from Session.Update.
func (r *ScriptRunner) step(s *Session) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "down":
		s.InjectDown(st.ID, st.X, st.Y)
	case "move":
		s.InjectMove(Pointer{ID: st.ID, X: st.X, Y: st.Y})
	case "up":
		s.InjectUp(st.ID, st.X, st.Y)
	case "rotate":
		s.InjectRotate(Pt(st.CX, st.CY), st.Radius, st.From, st.To, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
