package folio

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"hover":      true,
	"leave":      true,
	"scroll":     true,
	"scrollTo":   true,
	"wait":       true,
}

// TestRunner sequences injected input and screenshots across ticks for
// automated visual runs. Attach it with App.SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script:
//
//	{"steps": [
//		{"action": "scroll", "dy": 600},
//		{"action": "wait", "frames": 90},
//		{"action": "hover", "x": 320, "y": 200},
//		{"action": "screenshot", "label": "projects"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner; it steps once per App.Update before input.
func (a *App) SetTestRunner(runner *TestRunner) {
	a.testRunner = runner
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// Steps returns the number of steps in the script.
func (r *TestRunner) Steps() int { return len(r.steps) }

func (r *TestRunner) step(a *App) {
	if r.done {
		return
	}
	if len(a.injectQueue) > 0 {
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
	case "screenshot":
		a.Screenshot(st.Label)
	case "click":
		a.InjectClick(st.X, st.Y)
	case "hover":
		a.InjectMove(st.X, st.Y)
	case "leave":
		a.InjectLeave()
	case "scroll":
		a.InjectScroll(st.DY)
	case "scrollTo":
		a.ScrollTo(st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(a.injectQueue) == 0 {
		r.done = true
	}
}
