package folio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTriggerThreshold(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, DefaultThreshold},
		{-1, DefaultThreshold},
		{math.NaN(), DefaultThreshold},
		{0.5, 0.5},
		{1, 1},
		{3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewTrigger(tt.in).Threshold(), "threshold %v", tt.in)
	}
}

func TestTriggerFiresOnce(t *testing.T) {
	tr := NewTrigger(0)
	assert.Equal(t, Watching, tr.State())
	for _, f := range []float64{0.05, math.NaN(), math.Inf(-1), -1} {
		assert.False(t, tr.Observe(f), "fraction %v is below the threshold", f)
		assert.False(t, tr.Visible())
	}

	assert.True(t, tr.Observe(0.1), "reaching the threshold fires")
	assert.True(t, tr.Visible())
	assert.Equal(t, "settled", tr.State().String())

	for _, f := range []float64{1, 0.5, 0, 0} {
		assert.False(t, tr.Observe(f), "settled trigger must not fire again")
		assert.True(t, tr.Visible(), "settled trigger must not revert")
	}
}

func TestObserverCheck(t *testing.T) {
	var o Observer
	top := NewTrigger(0)
	bottom := NewTrigger(0.5)
	fired := 0
	o.WatchFunc(top, func() Rect { return Rect{0, 100, 100, 100} }, func() { fired++ })
	o.Watch(bottom, func() Rect { return Rect{0, 1000, 100, 100} })
	require.Equal(t, 2, o.Len())

	n := o.Check(Rect{0, 0, 800, 600})
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, fired)
	assert.True(t, top.Visible())
	assert.False(t, bottom.Visible())
	assert.Equal(t, 1, o.Len(), "settled elements are unobserved")

	// 40% of the bottom element is in view: below its threshold.
	assert.Equal(t, 0, o.Check(Rect{0, 460, 800, 580}))
	assert.False(t, bottom.Visible())

	assert.Equal(t, 1, o.Check(Rect{0, 500, 800, 600}))
	assert.True(t, bottom.Visible())
	assert.Equal(t, 0, o.Len())

	// Scrolling away never reverts.
	assert.Equal(t, 0, o.Check(Rect{0, 5000, 800, 600}))
	assert.True(t, top.Visible())
	assert.Equal(t, 1, fired)
}

func TestObserverTeardown(t *testing.T) {
	var o Observer
	tr := NewTrigger(0)
	teardown := o.Watch(tr, func() Rect { return Rect{0, 0, 10, 10} })
	teardown()
	teardown()
	assert.Equal(t, 0, o.Check(Rect{0, 0, 100, 100}))
	assert.False(t, tr.Visible(), "detached element must not fire")
	assert.Equal(t, 0, o.Len())
}

func TestUnattachedTriggerNeverFires(t *testing.T) {
	var o Observer
	watched := NewTrigger(0)
	loose := NewTrigger(0)
	o.Watch(watched, func() Rect { return Rect{0, 0, 10, 10} })
	o.Watch(nil, func() Rect { return Rect{} })
	o.Check(Rect{0, 0, 100, 100})
	assert.True(t, watched.Visible())
	assert.False(t, loose.Visible())
}
