package canvas

import (
	"math"
	"math/rand/v2"
)

// voyageState is the ship's narrative stage.
type voyageState uint8

const (
	voyageSailing voyageState = iota
	voyageImpact
	voyageSinking
	voyageReset
)

func (s voyageState) String() string {
	switch s {
	case voyageSailing:
		return "sailing"
	case voyageImpact:
		return "impact"
	case voyageSinking:
		return "sinking"
	default:
		return "reset"
	}
}

const (
	voyageImpactFrames = 40
	voyageShipLength   = 130
)

var (
	voyageSky       = Hex("#050510")
	voyageStar      = RGBA(255, 255, 255, 0.5)
	voyageIce       = Hex("#e0f7fa")
	voyageIceShadow = RGBA(200, 240, 255, 0.1)
	voyageHull      = Hex("#1a1a1a")
	voyageTrim      = Hex("#5e0a0a")
	voyageDeck      = Hex("#f0f0f0")
	voyageFunnel    = Hex("#e6bf00")
	voyageLight     = Hex("#ffeb3b")
	voyageWaveBack  = RGBA(0, 100, 200, 0.6)
	voyageWaveFront = RGBA(0, 80, 180, 0.8)
)

// voyage sails a ship into an iceberg, holds on impact, sinks it with a slow
// roll and then starts over: sailing -> impact -> sinking -> reset.
type voyage struct {
	w, h     float64
	state    voyageState
	shipX    float64
	shipY    float64
	rotation float64
	delay    float64
	wave     float64
	frame    float64
}

func (a *voyage) Init(w, h int, _ *rand.Rand) {
	*a = voyage{shipX: -100}
	a.Resize(w, h)
	a.shipY = a.bob()
}

// Resize keeps the narrative running; only the scenery is re-measured.
func (a *voyage) Resize(w, h int) {
	a.w, a.h = float64(w), float64(h)
}

func (a *voyage) waterLevel() float64 { return a.h * 0.65 }
func (a *voyage) iceX() float64       { return a.w * 0.75 }

func (a *voyage) bob() float64 {
	return a.waterLevel() - 20 + math.Sin(a.shipX*0.02+a.wave)*5
}

func (a *voyage) Advance(dt float64) {
	steps := frames(dt)
	a.frame += steps
	a.wave += 0.05 * steps
	switch a.state {
	case voyageSailing:
		a.shipX += steps
		a.shipY = a.bob()
		if a.shipX+voyageShipLength >= a.iceX() {
			a.state = voyageImpact
		}
	case voyageImpact:
		a.delay += steps
		a.shipY = a.bob()
		if a.delay > voyageImpactFrames {
			a.state = voyageSinking
		}
	case voyageSinking:
		a.shipX += 0.1 * steps
		a.shipY += 0.5 * steps
		a.rotation += 0.008 * steps
		if a.shipY > a.h+100 {
			a.state = voyageReset
		}
	case voyageReset:
		a.shipX = -voyageShipLength
		a.rotation = 0
		a.delay = 0
		a.state = voyageSailing
	}
}

func (a *voyage) Render(s Surface) {
	s.FillRect(0, 0, a.w, a.h, voyageSky)
	for i := 0; i < 10; i++ {
		s.FillRect(float64(i*50+20), float64(20+(i%3)*10), 1, 1, voyageStar)
	}

	water := a.waterLevel()
	ix := a.iceX()
	s.FillPolygon([]Vec2{
		{ix - 50, water + 20},
		{ix - 40, water - 10},
		{ix, water - 120},
		{ix + 20, water - 80},
		{ix + 50, water - 130},
		{ix + 100, water + 20},
	}, voyageIce)
	s.FillPolygon([]Vec2{{ix - 50, water + 20}, {ix + 100, water + 20}, {ix + 20, water + 80}}, voyageIceShadow)

	a.renderShip(s)

	a.renderWaves(s, water, 10, 0.02, 1, 5, voyageWaveBack)
	a.renderWaves(s, water+15, 15, 0.03, 1.5, 8, voyageWaveFront)
}

func (a *voyage) renderShip(s Surface) {
	m := Identity.Translate(a.shipX, a.shipY).Rotate(a.rotation)
	FillTransformed(s, m, []Vec2{{0, 0}, {120, 0}, {110, 30}, {10, 30}}, voyageHull)
	FillTransformed(s, m, RectPoints(10, 25, 100, 5), voyageTrim)
	FillTransformed(s, m, RectPoints(15, -15, 80, 15), voyageDeck)
	FillTransformed(s, m, RectPoints(25, -25, 60, 10), voyageDeck)
	for _, x := range []float64{30, 50, 70} {
		FillTransformed(s, m, RectPoints(x, -50, 10, 25), voyageFunnel)
		FillTransformed(s, m, RectPoints(x, -50, 10, 5), ColorBlack)
	}
	// Portholes flicker on a fixed pattern rather than per-frame noise.
	flicker := int(a.frame / 4)
	for i := 0; i < 8; i++ {
		x := float64(20 + i*10)
		if (i*7+flicker)%10 != 0 {
			FillTransformed(s, m, RectPoints(x, 8, 2, 2), voyageLight)
		}
		if (i*3+flicker)%10 != 0 {
			FillTransformed(s, m, RectPoints(x+5, 18, 2, 2), voyageLight)
		}
	}
}

func (a *voyage) renderWaves(s Surface, level, step, freq, speed, amp float64, c Color) {
	pts := []Vec2{{0, a.h}, {0, level}}
	for x := 0.0; x <= a.w; x += step {
		pts = append(pts, Vec2{x, level + math.Sin(x*freq+a.wave*speed)*amp})
	}
	pts = append(pts, Vec2{a.w, a.h})
	s.FillPolygon(pts, c)
}
