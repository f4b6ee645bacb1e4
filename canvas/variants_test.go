package canvas

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 1.0 / frameRate

var sizes = [][2]int{{0, 0}, {1, 1}, {0, 200}, {320, 0}, {320, 200}, {1920, 1080}, {40, 900}}

// Every variant must tolerate any size, including zero, in any order.
func TestVariantsSurviveResize(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			a, err := New(k)
			require.NoError(t, err)
			rec := NewRecorder(0, 0)
			a.Init(0, 0, NewRand(1, k))
			for _, sz := range sizes {
				rec.Resize(sz[0], sz[1])
				a.Resize(sz[0], sz[1])
				for i := 0; i < 5; i++ {
					a.Advance(step)
					a.Render(rec)
				}
			}
			assert.True(t, rec.Finite(), "non-finite coordinates drawn")
		})
	}
}

func TestVariantsRenderOnRaster(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			r := NewRaster(160, 100)
			err := RenderFrames(k, r, 42, 30, step, nil)
			require.NoError(t, err)
			w, h := r.Size()
			assert.Equal(t, 160, w)
			assert.Equal(t, 100, h)
		})
	}
}

func TestVariantsDeterministic(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			run := func() []Op {
				rec := NewRecorder(300, 150)
				require.NoError(t, RenderFrames(k, rec, 9, 20, step, nil))
				return rec.Ops()
			}
			assert.Equal(t, run(), run())
		})
	}
}

func TestVariantsLongDt(t *testing.T) {
	for _, k := range Kinds() {
		a, _ := New(k)
		a.Init(200, 120, NewRand(3, k))
		a.Advance(5)
		a.Advance(-1)
		rec := NewRecorder(200, 120)
		a.Render(rec)
		assert.True(t, rec.Finite(), k.String())
	}
}

func TestVoyageStateSequence(t *testing.T) {
	a := &voyage{}
	a.Init(800, 200, nil)
	require.Equal(t, voyageSailing, a.state)
	require.Equal(t, -100.0, a.shipX)

	seen := []voyageState{a.state}
	for i := 0; i < 3000 && len(seen) < 5; i++ {
		a.Advance(step)
		if a.state != seen[len(seen)-1] {
			seen = append(seen, a.state)
		}
	}
	assert.Equal(t, []voyageState{voyageSailing, voyageImpact, voyageSinking, voyageReset, voyageSailing}, seen)
	assert.Equal(t, -float64(voyageShipLength), a.shipX)
	assert.Zero(t, a.rotation)
}

func TestVoyageImpactPoint(t *testing.T) {
	a := &voyage{}
	a.Init(1000, 300, nil)
	for a.state == voyageSailing {
		a.Advance(step)
	}
	assert.GreaterOrEqual(t, a.shipX+voyageShipLength, a.iceX())
	assert.Less(t, a.shipX+voyageShipLength, a.iceX()+2)
}

func TestVoyageResizeKeepsState(t *testing.T) {
	a := &voyage{}
	a.Init(800, 200, nil)
	for i := 0; i < 100; i++ {
		a.Advance(step)
	}
	x := a.shipX
	a.Resize(400, 100)
	assert.Equal(t, x, a.shipX)
	assert.Equal(t, voyageSailing, a.state)
}

func TestVoyageStateString(t *testing.T) {
	assert.Equal(t, "sailing", voyageSailing.String())
	assert.Equal(t, "impact", voyageImpact.String())
	assert.Equal(t, "sinking", voyageSinking.String())
	assert.Equal(t, "reset", voyageReset.String())
}

func TestTickerBounces(t *testing.T) {
	a := &ticker{}
	a.Init(300, 200, nil)
	up, down := false, false
	prev := a.price
	for i := 0; i < 1000; i++ {
		a.Advance(step)
		if a.price > prev {
			up = true
		}
		if a.price < prev {
			down = true
		}
		prev = a.price
		require.GreaterOrEqual(t, a.price, 50.0)
		require.LessOrEqual(t, a.price, 120.0)
	}
	assert.True(t, up && down)

	rec := NewRecorder(300, 200)
	a.Render(rec)
	assert.Equal(t, []string{fmt.Sprintf("$%d", a.Price()), "ADMIT ONE"}, rec.Texts())
}

func TestViewsGrouping(t *testing.T) {
	a := &views{}
	a.Init(300, 200, NewRand(1, KindViews))
	assert.Equal(t, "1,500", a.Label())
	a.count = 1234567
	assert.Equal(t, "1,234,567", a.Label())

	a.count = 1500
	for i := 0; i < 60; i++ {
		a.Advance(step)
	}
	assert.GreaterOrEqual(t, a.count, 1500)
	assert.Less(t, a.count, 1500+60*50)
}

func TestSpectrumBars(t *testing.T) {
	a := &spectrum{}
	a.Init(320, 100, nil)
	a.Advance(step)
	rec := NewRecorder(320, 100)
	a.Render(rec)
	// background plus one rect per bar
	assert.Equal(t, spectrumBars+1, rec.Count(OpFillRect))
	for i := 0; i < spectrumBars; i++ {
		h := a.barHeight(i)
		assert.GreaterOrEqual(t, h, 10.0)
		assert.LessOrEqual(t, h, 100*0.7+10)
	}
}

func TestPulseFadesAndWraps(t *testing.T) {
	a := &pulse{}
	a.Init(90, 100, nil)
	rec := NewRecorder(90, 100)
	for i := 0; i < 40; i++ {
		a.Advance(step)
		a.Render(rec)
	}
	assert.Equal(t, 40, rec.Count(OpFill))
	assert.LessOrEqual(t, a.x, 90.0)
	assert.Equal(t, 50.0, a.beat(10))
	assert.Less(t, a.beat(45), 50.0)
}

func TestDocumentPhases(t *testing.T) {
	a := &document{}
	a.Init(300, 300, nil)
	assert.True(t, a.pulsing())
	assert.False(t, a.showCards())

	a.tick = 90
	rec := NewRecorder(300, 300)
	a.Render(rec)
	assert.Equal(t, []string{"A", "B", "C", "D"}, rec.Texts())
	assert.False(t, a.pulsing())
}

func TestTurntableMeters(t *testing.T) {
	a := &turntable{}
	a.Init(400, 200, NewRand(5, KindTurntable))
	for i := 0; i < 600; i++ {
		a.Advance(step)
		for _, d := range a.decks {
			require.GreaterOrEqual(t, d.level, 0.0)
			require.LessOrEqual(t, d.level, 1.0)
			require.GreaterOrEqual(t, d.peak, d.level)
		}
	}
	// 45 rpm turns faster than 33 1/3.
	assert.Greater(t, a.decks[1].spin(), a.decks[0].spin())
	assert.InDelta(t, 2*math.Pi*45/60/60, a.decks[1].spin(), 1e-12)
}

func TestOrchardStages(t *testing.T) {
	a := &orchard{}
	a.Init(400, 300, NewRand(2, KindOrchard))
	seen := []orchardStage{a.stage}
	for i := 0; i < 5000 && len(seen) < 7; i++ {
		a.Advance(step)
		if a.stage != seen[len(seen)-1] {
			seen = append(seen, a.stage)
		}
	}
	assert.Equal(t, []orchardStage{
		stageGrowing, stageBlooming, stageShaking, stageFalling,
		stageCollecting, stageReset, stageGrowing,
	}, seen)
	assert.Equal(t, fruitCount, a.harvest)
}

func TestOrchardFruitRestsOnGround(t *testing.T) {
	a := &orchard{}
	a.Init(400, 300, NewRand(2, KindOrchard))
	a.growth = 1
	a.drop()
	done := false
	for i := 0; i < 2000 && !done; i++ {
		done = a.fall(1)
	}
	require.True(t, done)
	for _, f := range a.fruits {
		assert.Equal(t, a.ground()-5, f.y)
	}
}

func TestRocketLoops(t *testing.T) {
	a := &rocket{}
	a.Init(300, 120, NewRand(1, KindRocket))
	for a.x < a.w+150 {
		a.Advance(step)
	}
	assert.Positive(t, a.particles.alive)
	// parked for the pause, then back at the start
	for i := 0; i < int(rocketPause*frameRate)+2; i++ {
		a.Advance(step)
	}
	assert.Less(t, a.x, 0.0)

	rec := NewRecorder(300, 120)
	a.Render(rec)
	assert.Equal(t, OpClear, rec.Ops()[0].Kind)
}

func TestInstrumentsRebuildOnResize(t *testing.T) {
	a := &instruments{}
	a.Init(800, 600, NewRand(4, KindInstruments))
	require.Len(t, a.items, instrumentCount)
	a.Resize(100, 50)
	require.Len(t, a.items, instrumentCount)
	for _, it := range a.items {
		assert.LessOrEqual(t, it.x, 100.0)
		assert.LessOrEqual(t, it.y, 50.0)
	}
	// shared outlines are never transformed in place
	before := append([]Vec2(nil), guitarOutline...)
	a.Render(NewRecorder(100, 50))
	assert.Equal(t, before, guitarOutline)
}

func TestScanRebuildsOnResize(t *testing.T) {
	a := &scan{}
	a.Init(400, 300, NewRand(1, KindScan))
	a.Resize(200, 100)
	for i := 0; i < 200; i++ {
		a.Advance(step)
		require.GreaterOrEqual(t, a.scanY, 0.0)
		require.LessOrEqual(t, a.scanY, 100.0)
	}
}
