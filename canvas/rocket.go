package canvas

import (
	"math/rand/v2"
)

const (
	rocketStart = -150.0
	rocketSpeed = 12.0
	rocketPause = 2.5 // seconds parked offscreen before the next pass
)

var (
	rocketHull   = Hex("#e0e0e0")
	rocketShade  = Hex("#2a2a2a")
	rocketWindow = Hex("#646cff")
	rocketFin    = Hex("#1a1a1a")
	rocketNozzle = Hex("#444")
	rocketGlow   = RGBA(79, 172, 254, 0.25)
	rocketSmoke  = RGBA(100, 100, 120, 0.4)
	rocketSpark  = Hex("#ffaa00")
)

// rocket flies across the strip trailing thrust, smoke and sparks, waits
// offscreen and flies again. The surface is cleared, not painted, so the
// page shows through.
type rocket struct {
	w, h      float64
	x         float64
	parked    float64
	rng       *rand.Rand
	particles *particlePool
}

func (a *rocket) Init(w, h int, rng *rand.Rand) {
	a.rng = rng
	a.x = rocketStart
	a.parked = 0
	if a.particles == nil {
		a.particles = newParticlePool(512)
	}
	a.particles.reset()
	a.Resize(w, h)
}

func (a *rocket) Resize(w, h int) { a.w, a.h = float64(w), float64(h) }

func (a *rocket) Advance(dt float64) {
	steps := frames(dt)
	a.particles.update(steps)
	if a.x < a.w+150 {
		a.x += rocketSpeed * steps
		for n := int(steps + 0.5); n > 0; n-- {
			a.exhaust(a.x-55, a.h/2)
		}
		return
	}
	a.parked += steps / frameRate
	if a.parked >= rocketPause {
		a.parked = 0
		a.x = rocketStart
	}
}

func (a *rocket) exhaust(x, y float64) {
	r := a.rng
	for i := 0; i < 5; i++ {
		if p := a.particles.spawn(); p != nil {
			p.x, p.y = x, y+(r.Float64()-0.5)*4
			p.vx, p.vy = (r.Float64()-2)*8-5, (r.Float64()-0.5)*2
			p.decay = 0.08
			p.size = r.Float64()*4 + 2
			p.color = RGBA(100, 200, 255, r.Float64()*0.5+0.5)
		}
	}
	for i := 0; i < 3; i++ {
		if p := a.particles.spawn(); p != nil {
			p.x, p.y = x-20, y+(r.Float64()-0.5)*10
			p.vx, p.vy = (r.Float64()-1)*3-2, (r.Float64()-0.5)*3
			p.decay = 0.015
			p.size = r.Float64()*10 + 5
			p.color = rocketSmoke
		}
	}
	if r.Float64() > 0.5 {
		if p := a.particles.spawn(); p != nil {
			p.x, p.y = x, y
			p.vx, p.vy = (r.Float64()-1)*10-5, (r.Float64()-0.5)*10
			p.decay = 0.03
			p.size = 2
			p.color = rocketSpark
		}
	}
}

func (a *rocket) Render(s Surface) {
	s.Clear()
	a.particles.render(s)

	m := Identity.Translate(a.x, a.h/2)
	FillTransformed(s, m, Ellipse(0, 0, 60, 20), rocketGlow)
	FillTransformed(s, m, Ellipse(0, 0, 50, 12), rocketShade)
	FillTransformed(s, m, Ellipse(0, 0, 40, 8), rocketHull)
	FillTransformed(s, m, Ellipse(20, -5, 12, 6), rocketWindow)
	FillTransformed(s, m, Ellipse(20, -6, 4, 2), ColorWhite)
	FillTransformed(s, m, []Vec2{{-20, -10}, {-45, -25}, {-10, -5}}, rocketFin)
	FillTransformed(s, m, []Vec2{{-20, 10}, {-45, 25}, {-10, 5}}, rocketFin)
	FillTransformed(s, m, []Vec2{{-40, -8}, {-55, -12}, {-55, 12}, {-40, 8}}, rocketNozzle)
}
