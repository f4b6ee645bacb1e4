package folio

// DefaultThreshold is the visible fraction that settles a trigger created
// with a zero threshold.
const DefaultThreshold = 0.1

// TriggerState is the lifecycle of a Trigger.
type TriggerState uint8

const (
	// Watching triggers have not yet seen enough of their element.
	Watching TriggerState = iota
	// Settled triggers fired once and are permanently visible.
	Settled
)

func (s TriggerState) String() string {
	if s == Settled {
		return "settled"
	}
	return "watching"
}

// Trigger is a one-shot "became visible" signal. It starts Watching and moves
// to Settled the first time the observed fraction reaches the threshold.
// Nothing moves it back.
type Trigger struct {
	threshold float64
	state     TriggerState
}

// NewTrigger creates a watching trigger. A threshold <= 0 selects
// DefaultThreshold; values above 1 are clamped to 1.
func NewTrigger(threshold float64) *Trigger {
	switch {
	case !(threshold > 0):
		threshold = DefaultThreshold
	case threshold > 1:
		threshold = 1
	}
	return &Trigger{threshold: threshold}
}

// Threshold returns the fraction that settles the trigger.
func (t *Trigger) Threshold() float64 { return t.threshold }

// State returns the current state.
func (t *Trigger) State() TriggerState { return t.state }

// Visible reports whether the trigger has settled.
func (t *Trigger) Visible() bool { return t.state == Settled }

// Observe feeds one visibility measurement. It returns true exactly once, on
// the call that settles the trigger. NaN never settles it.
func (t *Trigger) Observe(fraction float64) bool {
	if t.state == Settled || !(fraction >= t.threshold) {
		return false
	}
	t.state = Settled
	return true
}

// Observer is the page's intersection observer. Elements are registered with
// Watch and measured against the viewport on every Check; an element is
// dropped as soon as its trigger settles.
type Observer struct {
	entries []*observed
}

type observed struct {
	trigger *Trigger
	bounds  func() Rect
	onFire  func()
	removed bool
}

// Watch registers t for the element whose current bounds are reported by
// bounds. The returned teardown unobserves the element; it is safe to call
// after the trigger fired or more than once.
func (o *Observer) Watch(t *Trigger, bounds func() Rect) (teardown func()) {
	return o.WatchFunc(t, bounds, nil)
}

// WatchFunc is Watch with a callback run once when the trigger settles.
func (o *Observer) WatchFunc(t *Trigger, bounds func() Rect, onFire func()) (teardown func()) {
	if t == nil || bounds == nil {
		return func() {}
	}
	e := &observed{trigger: t, bounds: bounds, onFire: onFire}
	o.entries = append(o.entries, e)
	return func() { e.removed = true }
}

// Check measures every watched element against viewport, settles triggers
// that reached their threshold and returns how many fired.
func (o *Observer) Check(viewport Rect) int {
	fired := 0
	live := o.entries[:0]
	for _, e := range o.entries {
		if e.removed {
			continue
		}
		if e.trigger.Observe(e.bounds().VisibleFraction(viewport)) {
			fired++
			if e.onFire != nil {
				e.onFire()
			}
		}
		if e.trigger.Visible() {
			e.removed = true
			continue
		}
		live = append(live, e)
	}
	clear(o.entries[len(live):])
	o.entries = live
	return fired
}

// Len returns the number of elements still being observed.
func (o *Observer) Len() int {
	n := 0
	for _, e := range o.entries {
		if !e.removed {
			n++
		}
	}
	return n
}
