package canvas

import (
	"math"
	"math/rand/v2"
)

var (
	pulseFade = RGBA(0, 0, 0, 0.1)
	pulseDot  = Hex("#ff3333")
)

// pulse traces a heartbeat. Each frame fades what is already on the surface,
// so the dots leave a trail without any stored history.
type pulse struct {
	w, h  float64
	x     float64
	trail []Vec2
}

func (a *pulse) Init(w, h int, _ *rand.Rand) {
	a.x = 0
	a.trail = a.trail[:0]
	a.Resize(w, h)
}

func (a *pulse) Resize(w, h int) { a.w, a.h = float64(w), float64(h) }

// Advance records every whole frame's position so a long dt still draws a
// continuous line.
func (a *pulse) Advance(dt float64) {
	steps := int(math.Round(frames(dt)))
	for i := 0; i < steps; i++ {
		a.x += 3
		if a.x > a.w {
			a.x = 0
		}
		a.trail = append(a.trail, Vec2{a.x, a.beat(a.x)})
	}
	if n := len(a.trail); n > 64 {
		a.trail = append(a.trail[:0], a.trail[n-64:]...)
	}
}

func (a *pulse) beat(x float64) float64 {
	y := a.h / 2
	if p := math.Mod(x, 100); p > 40 && p < 60 {
		y -= math.Sin((p-40)*0.3) * 40
	}
	return y
}

func (a *pulse) Render(s Surface) {
	s.Fill(pulseFade)
	if len(a.trail) == 0 {
		s.FillCircle(a.x, a.beat(a.x), 3, pulseDot)
	}
	for _, p := range a.trail {
		s.FillCircle(p.X, p.Y, 3, pulseDot)
	}
	a.trail = a.trail[:0]
}
