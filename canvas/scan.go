package canvas

import (
	"math"
	"math/rand/v2"
)

const (
	scanParticles = 150
	scanBand      = 20.0
)

var (
	scanActive   = Hex("#00ff88")
	scanInactive = Hex("#333")
	scanLine     = RGBA(0, 255, 136, 0.5)
)

type scanParticle struct {
	x, y float64
}

// scan is an oval particle cloud (a rough brain profile) swept top to bottom
// by a scan line that lights up nearby particles.
type scan struct {
	w, h      float64
	rng       *rand.Rand
	particles []scanParticle
	scanY     float64
}

func (a *scan) Init(w, h int, rng *rand.Rand) {
	a.rng = rng
	a.scanY = 0
	a.build(w, h)
}

func (a *scan) build(w, h int) {
	a.w, a.h = float64(w), float64(h)
	cx, cy := a.w/2, a.h/2
	a.particles = a.particles[:0]
	for i := 0; i < scanParticles; i++ {
		angle := a.rng.Float64() * 2 * math.Pi
		r := a.rng.Float64() * 60
		s, c := math.Sincos(angle)
		a.particles = append(a.particles, scanParticle{
			x: cx + c*r*1.2,
			y: cy + s*r*0.9,
		})
	}
}

func (a *scan) Resize(w, h int) {
	a.build(w, h)
	a.scanY = wrap(a.scanY, a.h)
}

func (a *scan) Advance(dt float64) {
	a.scanY = wrap(a.scanY+2*frames(dt), a.h)
}

func (a *scan) Render(s Surface) {
	s.FillRect(0, 0, a.w, a.h, ColorBlack)
	for _, p := range a.particles {
		if math.Abs(p.y-a.scanY) < scanBand {
			s.FillCircle(p.x, p.y, 3, scanActive)
		} else {
			s.FillCircle(p.x, p.y, 1.5, scanInactive)
		}
	}
	StrokeLine(s, 0, a.scanY, a.w, a.scanY, 2, scanLine)
}
