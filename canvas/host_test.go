package canvas

import (
	"testing"
)

func TestHostStartStop(t *testing.T) {
	loop := &FrameLoop{}
	frame := NewFrame(200, 100)
	rec := NewRecorder(0, 0)
	h, err := NewHost(KindSpectrum, rec, loop, 1)
	if err != nil {
		t.Fatal(err)
	}

	h.Start(frame)
	if w, ht := rec.Size(); w != 200 || ht != 100 {
		t.Fatalf("surface size = %dx%d, want 200x100", w, ht)
	}
	if !h.Running() {
		t.Fatal("host should be running after Start")
	}
	if loop.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", loop.Pending())
	}

	for i := 0; i < 3; i++ {
		loop.Run(step)
	}
	if h.Ticks() != 3 {
		t.Errorf("ticks = %d, want 3", h.Ticks())
	}

	h.Stop()
	drawn := rec.Len()
	if loop.Pending() != 0 {
		t.Errorf("pending after Stop = %d, want 0", loop.Pending())
	}
	if frame.Subscribers() != 0 {
		t.Errorf("resize subscribers after Stop = %d, want 0", frame.Subscribers())
	}
	for i := 0; i < 5; i++ {
		loop.Run(step)
	}
	frame.SetSize(50, 50)
	if rec.Len() != drawn {
		t.Errorf("drew %d ops after Stop", rec.Len()-drawn)
	}
	h.Stop()
}

func TestHostRestartBuildsFreshState(t *testing.T) {
	loop := &FrameLoop{}
	frame := NewFrame(300, 150)
	run := func(h *Host) []Op {
		rec := h.Surface().(*Recorder)
		rec.Reset()
		h.Start(frame)
		for i := 0; i < 10; i++ {
			loop.Run(step)
		}
		h.Stop()
		return append([]Op(nil), rec.Ops()...)
	}
	h, err := NewHost(KindScan, NewRecorder(0, 0), loop, 5)
	if err != nil {
		t.Fatal(err)
	}
	first := run(h)
	second := run(h)
	if len(first) != len(second) {
		t.Fatalf("op counts differ: %d vs %d", len(first), len(second))
	}
	if h.Ticks() != 10 {
		t.Errorf("ticks = %d, want 10", h.Ticks())
	}
}

func TestHostZeroSizeSkipsTicks(t *testing.T) {
	loop := &FrameLoop{}
	frame := NewFrame(0, 0)
	rec := NewRecorder(0, 0)
	h, _ := NewHost(KindVoyage, rec, loop, 1)
	h.Start(frame)
	loop.Run(step)
	loop.Run(step)
	if h.Ticks() != 0 || rec.Len() != 0 {
		t.Errorf("zero-size container painted: ticks=%d ops=%d", h.Ticks(), rec.Len())
	}
	if loop.Pending() != 1 {
		t.Errorf("host stopped rescheduling on a zero-size container")
	}

	frame.SetSize(640, 360)
	loop.Run(step)
	if h.Ticks() != 1 {
		t.Errorf("ticks after resize = %d, want 1", h.Ticks())
	}
	if rec.Resizes() != 2 {
		t.Errorf("surface resizes = %d, want 2", rec.Resizes())
	}
	h.Stop()
}

func TestHostUnknownKind(t *testing.T) {
	if _, err := NewHost(KindNone, NewRecorder(1, 1), &FrameLoop{}, 0); err == nil {
		t.Error("expected error for KindNone")
	}
}

func TestHostStartGuards(t *testing.T) {
	loop := &FrameLoop{}
	h, _ := NewHost(KindPulse, NewRecorder(0, 0), loop, 0)
	h.Start(nil)
	if h.Running() {
		t.Error("Start(nil) should be a no-op")
	}
	frame := NewFrame(10, 10)
	h.Start(frame)
	h.Start(frame)
	if frame.Subscribers() != 1 || loop.Pending() != 1 {
		t.Errorf("double Start: subscribers=%d pending=%d", frame.Subscribers(), loop.Pending())
	}
	h.Stop()
}

func TestFrameLoopDefersNewRequests(t *testing.T) {
	loop := &FrameLoop{}
	calls := 0
	var fn func(float64)
	fn = func(float64) {
		calls++
		loop.RequestFrame(fn)
	}
	loop.RequestFrame(fn)
	loop.Run(step)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	loop.Run(step)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestFrameLoopCancel(t *testing.T) {
	loop := &FrameLoop{}
	ran := false
	cancel := loop.RequestFrame(func(float64) { ran = true })
	cancel()
	loop.Run(step)
	if ran {
		t.Error("cancelled callback ran")
	}
	if loop.Pending() != 0 {
		t.Errorf("pending = %d, want 0", loop.Pending())
	}
}

func TestFrameResizeNotifications(t *testing.T) {
	f := NewFrame(-5, 10)
	if w, h := f.Size(); w != 0 || h != 10 {
		t.Fatalf("size = %dx%d, want 0x10", w, h)
	}
	var got [][2]int
	unsub := f.OnResize(func(w, h int) { got = append(got, [2]int{w, h}) })
	f.SetSize(0, 10)
	f.SetSize(20, 10)
	unsub()
	f.SetSize(30, 30)
	if len(got) != 1 || got[0] != [2]int{20, 10} {
		t.Errorf("notifications = %v, want [[20 10]]", got)
	}
	unsub()
}

func TestRenderFramesStopsOnError(t *testing.T) {
	n := 0
	err := RenderFrames(KindTicker, NewRecorder(100, 100), 0, 10, step, func(i int) error {
		n++
		if i == 2 {
			return errStop
		}
		return nil
	})
	if err != errStop {
		t.Errorf("err = %v, want errStop", err)
	}
	if n != 3 {
		t.Errorf("callbacks = %d, want 3", n)
	}
}

var errStop = stopError("stop")

type stopError string

func (e stopError) Error() string { return string(e) }
