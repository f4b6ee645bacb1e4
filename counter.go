package folio

import (
	"strconv"
	"time"

	"github.com/phanxgames/folio/content"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// DefaultCounterDuration is the time a counter takes to reach its target.
	DefaultCounterDuration = 2 * time.Second
	// CounterThreshold is the visible fraction that starts a counter.
	CounterThreshold = 0.5
	// counterPace is the share of the duration spent stepping; the rest is
	// slack before the final value is forced.
	counterPace = 0.8
)

// Counter counts a stat from 0 up to its value once its element is half
// visible. It steps by one every duration/target*0.8 and is forced to
// exactly the target when duration has elapsed. It runs once.
type Counter struct {
	stat     content.Stat
	duration time.Duration
	trigger  *Trigger

	tween   *gween.Tween
	elapsed time.Duration
	value   int
	started bool
	done    bool
}

// NewCounter creates a counter for stat. A non-positive duration selects
// DefaultCounterDuration.
func NewCounter(stat content.Stat, duration time.Duration) *Counter {
	if duration <= 0 {
		duration = DefaultCounterDuration
	}
	return &Counter{
		stat:     stat,
		duration: duration,
		trigger:  NewTrigger(CounterThreshold),
	}
}

// Trigger returns the counter's visibility trigger for registration with an
// Observer.
func (c *Counter) Trigger() *Trigger { return c.trigger }

// Stat returns the stat being counted.
func (c *Counter) Stat() content.Stat { return c.stat }

// Update advances the count by dt. Before the trigger settles it does
// nothing.
func (c *Counter) Update(dt time.Duration) {
	if c.done || !c.trigger.Visible() {
		return
	}
	target := c.stat.Value
	if !c.started {
		c.started = true
		if target <= 0 {
			c.value = max(target, 0)
			c.done = true
			return
		}
		pace := float32(c.duration.Seconds() * counterPace)
		c.tween = gween.New(0, float32(target), pace, ease.Linear)
	}
	if dt < 0 {
		dt = 0
	}
	c.elapsed += dt
	v, _ := c.tween.Update(float32(dt.Seconds()))
	c.value = min(int(v), target)
	if c.elapsed >= c.duration {
		c.value = target
		c.done = true
	}
}

// Value returns the integer currently displayed.
func (c *Counter) Value() int { return c.value }

// Done reports whether the counter has reached its final value.
func (c *Counter) Done() bool { return c.done }

// Text renders prefix, value and suffix.
func (c *Counter) Text() string {
	return c.stat.Prefix + strconv.Itoa(c.value) + c.stat.Suffix
}
