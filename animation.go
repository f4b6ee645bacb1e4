package folio

import (
	"strconv"
	"time"

	"github.com/phanxgames/folio/canvas"
	"github.com/phanxgames/folio/content"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenGroup animates up to 4 float64 fields simultaneously. Call Update(dt)
// each frame; values are written straight into the target fields.
type tweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// add appends a tween of *field from its current value to `to`.
func (g *tweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *tweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reveal timing. Cards within a section enter one after another.
const (
	RevealStagger  = 100 * time.Millisecond
	RevealDuration = 600 * time.Millisecond
	RevealDistance = 30.0
)

// Reveal fades and slides an element in the first time it becomes visible.
type Reveal struct {
	trigger *Trigger
	delay   time.Duration
	waited  time.Duration

	alpha  float64
	offset float64
	group  *tweenGroup
}

// NewReveal creates a hidden reveal for the index-th element of a section.
func NewReveal(index int) *Reveal {
	return &Reveal{
		trigger: NewTrigger(DefaultThreshold),
		delay:   time.Duration(max(index, 0)) * RevealStagger,
		offset:  RevealDistance,
	}
}

// Trigger returns the reveal's visibility trigger.
func (r *Reveal) Trigger() *Trigger { return r.trigger }

// Update advances the transition. Nothing moves until the trigger settles and
// the stagger delay has passed.
func (r *Reveal) Update(dt time.Duration) {
	if !r.trigger.Visible() || (r.group != nil && r.group.Done) {
		return
	}
	if r.group == nil {
		r.waited += dt
		if r.waited < r.delay {
			return
		}
		dt = r.waited - r.delay
		r.group = &tweenGroup{}
		secs := float32(RevealDuration.Seconds())
		r.group.add(&r.alpha, 1, secs, ease.OutCubic)
		r.group.add(&r.offset, 0, secs, ease.OutCubic)
	}
	r.group.Update(float32(dt.Seconds()))
}

// Alpha is the element opacity in [0, 1].
func (r *Reveal) Alpha() float64 { return r.alpha }

// Offset is the remaining downward slide in pixels.
func (r *Reveal) Offset() float64 { return r.offset }

// Done reports whether the element is fully shown.
func (r *Reveal) Done() bool { return r.group != nil && r.group.Done }

// Impact bar timing and colors.
const (
	ImpactThreshold = 0.2
	ImpactDelay     = 300 * time.Millisecond
	ImpactDuration  = 1500 * time.Millisecond
)

var (
	AccentColor   = canvas.Hex("#646cff")
	DecreaseColor = canvas.Hex("#4CAF50")
)

// ImpactBar is a horizontal bar that grows to a stat's value (as a
// percentage of the track) once the bar is a fifth visible.
type ImpactBar struct {
	stat    content.Stat
	trigger *Trigger
	waited  time.Duration
	width   float64
	group   *tweenGroup
}

// NewImpactBar creates an empty bar for stat.
func NewImpactBar(stat content.Stat) *ImpactBar {
	return &ImpactBar{stat: stat, trigger: NewTrigger(ImpactThreshold)}
}

// Trigger returns the bar's visibility trigger.
func (b *ImpactBar) Trigger() *Trigger { return b.trigger }

// Stat returns the stat shown by the bar.
func (b *ImpactBar) Stat() content.Stat { return b.stat }

// Color is green for reductions and the accent purple otherwise.
func (b *ImpactBar) Color() canvas.Color {
	if b.stat.Decrease() {
		return DecreaseColor
	}
	return AccentColor
}

func (b *ImpactBar) Update(dt time.Duration) {
	if !b.trigger.Visible() || (b.group != nil && b.group.Done) {
		return
	}
	if b.group == nil {
		b.waited += dt
		if b.waited < ImpactDelay {
			return
		}
		dt = b.waited - ImpactDelay
		b.group = &tweenGroup{}
		b.group.add(&b.width, float64(b.stat.Value), float32(ImpactDuration.Seconds()), ease.OutQuint)
	}
	b.group.Update(float32(dt.Seconds()))
}

// Width is the current bar length as a percentage of the track.
func (b *ImpactBar) Width() float64 { return b.width }

// Fraction is Width clamped to [0, 1] of the track.
func (b *ImpactBar) Fraction() float64 {
	return min(max(b.width/100, 0), 1)
}

// Done reports whether the bar reached its value.
func (b *ImpactBar) Done() bool { return b.group != nil && b.group.Done }

// Text renders the label value as prefix, rounded width and suffix.
func (b *ImpactBar) Text() string {
	v := int(b.width + 0.5)
	if b.Done() {
		v = b.stat.Value
	}
	return b.stat.Prefix + strconv.Itoa(v) + b.stat.Suffix
}
