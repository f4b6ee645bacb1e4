package canvas

// Scheduler delivers display ticks, like requestAnimationFrame. A requested
// callback runs at most once; cancel prevents it from running at all.
type Scheduler interface {
	RequestFrame(fn func(dt float64)) (cancel func())
}

// Container is the element an animation is mounted in. It reports its
// current size and notifies subscribers when the size changes.
type Container interface {
	Size() (w, h int)
	OnResize(fn func(w, h int)) (unsubscribe func())
}

// Host binds one animation to a surface, a container and a scheduler. The
// animation's state exists only between Start and Stop.
type Host struct {
	kind    Kind
	seed    uint64
	surface Surface
	sched   Scheduler

	anim        Animation
	cancelFrame func()
	unsubscribe func()
	running     bool
	ticks       int
}

// NewHost validates kind and returns a stopped host.
func NewHost(kind Kind, surface Surface, sched Scheduler, seed uint64) (*Host, error) {
	if _, err := New(kind); err != nil {
		return nil, err
	}
	return &Host{kind: kind, seed: seed, surface: surface, sched: sched}, nil
}

// Kind returns the hosted variant.
func (h *Host) Kind() Kind { return h.kind }

// Surface returns the surface the host paints.
func (h *Host) Surface() Surface { return h.surface }

// Running reports whether the host is between Start and Stop.
func (h *Host) Running() bool { return h.running }

// Ticks returns how many frames have been painted since the last Start.
func (h *Host) Ticks() int { return h.ticks }

// Start sizes the surface to c, builds fresh animation state and schedules
// the first tick. A nil container or an already running host is a no-op.
func (h *Host) Start(c Container) {
	if h.running || c == nil || h.surface == nil || h.sched == nil {
		return
	}
	anim, err := New(h.kind)
	if err != nil {
		return
	}
	w, ht := c.Size()
	h.surface.Resize(w, ht)
	anim.Init(w, ht, NewRand(h.seed, h.kind))
	h.anim = anim
	h.ticks = 0
	h.running = true
	h.unsubscribe = c.OnResize(h.resize)
	h.schedule()
}

// Stop cancels the pending tick and the resize subscription and discards the
// animation state. Safe to call repeatedly.
func (h *Host) Stop() {
	if !h.running {
		return
	}
	h.running = false
	if h.cancelFrame != nil {
		h.cancelFrame()
		h.cancelFrame = nil
	}
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
	h.anim = nil
}

func (h *Host) schedule() {
	h.cancelFrame = h.sched.RequestFrame(h.tick)
}

func (h *Host) resize(w, ht int) {
	if !h.running {
		return
	}
	h.surface.Resize(w, ht)
	h.anim.Resize(w, ht)
}

func (h *Host) tick(dt float64) {
	h.cancelFrame = nil
	if !h.running {
		return
	}
	if w, ht := h.surface.Size(); w > 0 && ht > 0 {
		h.anim.Advance(dt)
		h.anim.Render(h.surface)
		h.ticks++
	}
	h.schedule()
}

// FrameLoop is a Scheduler driven by the caller, typically once per
// Ebitengine Update. Callbacks requested while Run executes wait for the next
// Run, so every host advances exactly once per call.
type FrameLoop struct {
	queue []*frameRequest
}

type frameRequest struct {
	fn        func(dt float64)
	cancelled bool
}

// RequestFrame queues fn for the next Run.
func (l *FrameLoop) RequestFrame(fn func(dt float64)) func() {
	req := &frameRequest{fn: fn}
	l.queue = append(l.queue, req)
	return func() { req.cancelled = true }
}

// Run invokes every callback queued before the call.
func (l *FrameLoop) Run(dt float64) {
	batch := l.queue
	l.queue = nil
	for _, req := range batch {
		if !req.cancelled {
			req.cancelled = true
			req.fn(dt)
		}
	}
}

// Pending returns the number of queued, uncancelled callbacks.
func (l *FrameLoop) Pending() int {
	n := 0
	for _, req := range l.queue {
		if !req.cancelled {
			n++
		}
	}
	return n
}

// Frame is a Container with an explicitly set size.
type Frame struct {
	w, h   int
	subs   []frameSub
	nextID int
}

type frameSub struct {
	id int
	fn func(w, h int)
}

// NewFrame creates a frame of the given size. Negative sizes become zero.
func NewFrame(w, h int) *Frame {
	return &Frame{w: max(w, 0), h: max(h, 0)}
}

func (f *Frame) Size() (int, int) { return f.w, f.h }

// SetSize updates the frame and notifies subscribers when it changed.
func (f *Frame) SetSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == f.w && h == f.h {
		return
	}
	f.w, f.h = w, h
	for _, s := range append([]frameSub(nil), f.subs...) {
		s.fn(w, h)
	}
}

// OnResize subscribes fn to size changes.
func (f *Frame) OnResize(fn func(w, h int)) func() {
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, frameSub{id: id, fn: fn})
	return func() {
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of live resize subscriptions.
func (f *Frame) Subscribers() int { return len(f.subs) }

// RenderFrames drives a fresh kind animation on s for n ticks of dt seconds,
// calling each after every painted tick. It is the headless path used by
// export and the preview server.
func RenderFrames(kind Kind, s Surface, seed uint64, n int, dt float64, each func(i int) error) error {
	loop := &FrameLoop{}
	host, err := NewHost(kind, s, loop, seed)
	if err != nil {
		return err
	}
	w, h := s.Size()
	host.Start(NewFrame(w, h))
	defer host.Stop()
	for i := 0; i < n; i++ {
		loop.Run(dt)
		if each != nil {
			if err := each(i); err != nil {
				return err
			}
		}
	}
	return nil
}
