package folio

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "scroll", "dy": 640},
			{"action": "wait", "frames": 3},
			{"action": "hover", "x": 10, "y": 20}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.Steps() != 5 {
		t.Fatalf("expected 5 steps, got %d", runner.Steps())
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].DY != 640 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Action != "wait" || runner.steps[3].Frames != 3 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "drag"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerStep_ClickDrainsBeforeAdvancing(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 5, "y": 5},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	a.SetTestRunner(runner)

	runner.step(a)
	if len(a.injectQueue) != 2 {
		t.Fatalf("click should queue press and release, got %d events", len(a.injectQueue))
	}
	runner.step(a)
	if len(a.screenshotQueue) != 0 {
		t.Fatal("runner advanced before the injected click drained")
	}
	a.injectQueue = a.injectQueue[:0]
	runner.step(a)
	if len(a.screenshotQueue) != 1 || a.screenshotQueue[0] != "after" {
		t.Fatalf("screenshot queue = %v", a.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done after the last step")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1 runs the wait; frames 2 and 3 count it down.
	for i := 0; i < 3; i++ {
		runner.step(a)
		if runner.Done() || len(a.screenshotQueue) != 0 {
			t.Fatalf("frame %d: runner moved on during the wait", i+1)
		}
	}

	// Frame 4 runs the screenshot and finishes.
	runner.step(a)
	if len(a.screenshotQueue) != 1 {
		t.Errorf("screenshot queue = %v", a.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("expected done after the last step")
	}
}

func TestRunnerStep_HoverAndLeave(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "hover", "x": 30, "y": 40},
		{"action": "leave"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	a.SetTestRunner(runner)
	for i := 0; i < 4; i++ {
		if err := a.Update(); err != nil {
			t.Fatal(err)
		}
		if i == 0 && (a.pointer.lastX != 30 || a.pointer.lastY != 40 || !a.pointer.inside) {
			t.Errorf("pointer after hover = %+v", a.pointer)
		}
	}
	if a.pointer.inside {
		t.Error("pointer should have left the window")
	}
}
