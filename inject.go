package folio

// syntheticEvent is one injected input event, in window coordinates like
// the screenshots a script is written against.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	leave   bool
	scroll  float64
}

// InjectMove queues a pointer move to (x, y) with the button up.
func (a *App) InjectMove(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectPress queues a button press at (x, y).
func (a *App) InjectPress(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a button release at (x, y).
func (a *App) InjectRelease(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two ticks.
func (a *App) InjectClick(x, y float64) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectScroll queues a relative scroll of dy pixels. The pointer stays
// where the previous event left it.
func (a *App) InjectScroll(dy float64) {
	a.injectQueue = append(a.injectQueue, syntheticEvent{x: a.pointer.lastX, y: a.pointer.lastY, scroll: dy})
}

// InjectLeave queues the pointer leaving the window.
func (a *App) InjectLeave() {
	a.injectQueue = append(a.injectQueue, syntheticEvent{leave: true})
}

// popInjected removes the next queued event and converts it to device
// input. Returns false when the queue is empty.
func (a *App) popInjected() (pointerInput, bool) {
	if len(a.injectQueue) == 0 {
		return pointerInput{}, false
	}
	evt := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	if evt.leave {
		return pointerInput{x: -1, y: -1}, true
	}
	return pointerInput{
		x:       evt.x,
		y:       evt.y,
		inside:  evt.x >= 0 && evt.y >= 0 && evt.x < float64(a.width) && evt.y < float64(a.height),
		pressed: evt.pressed,
		scroll:  evt.scroll,
	}, true
}
