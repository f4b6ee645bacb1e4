package canvas

import (
	"math"
	"math/rand/v2"
)

const (
	funnelSpawnChance = 0.05
	funnelChurnRate   = 0.3
	funnelThreshold   = 0.6
)

var (
	funnelRetained = Hex("#00ff88")
	funnelChurned  = Hex("#ff4444")
	funnelLine     = Hex("#444")
)

type funnelUser struct {
	x, y    float64
	speed   float64
	decided bool
	churned bool
}

// funnel streams users left to right; past the threshold about a third of
// them churn and drop out of the flow.
type funnel struct {
	w, h  float64
	rng   *rand.Rand
	users []funnelUser
	accum float64
}

func (a *funnel) Init(w, h int, rng *rand.Rand) {
	a.rng = rng
	a.users = a.users[:0]
	a.accum = 0
	a.Resize(w, h)
}

func (a *funnel) Resize(w, h int) {
	a.w, a.h = float64(w), float64(h)
}

func (a *funnel) Advance(dt float64) {
	steps := frames(dt)
	a.accum += steps
	for a.accum >= 1 {
		a.accum--
		if a.rng.Float64() < funnelSpawnChance {
			a.users = append(a.users, funnelUser{
				y:     20 + a.rng.Float64()*math.Max(a.h-40, 0),
				speed: a.rng.Float64()*2 + 1,
			})
		}
	}

	threshold := a.w * funnelThreshold
	i := 0
	for i < len(a.users) {
		u := &a.users[i]
		u.x += u.speed * steps
		if !u.decided && u.x > threshold {
			u.decided = true
			u.churned = a.rng.Float64() < funnelChurnRate
		}
		if u.churned {
			u.y += steps
		}
		if u.x > a.w || u.y > a.h {
			last := len(a.users) - 1
			a.users[i] = a.users[last]
			a.users = a.users[:last]
			continue
		}
		i++
	}
}

func (a *funnel) Render(s Surface) {
	s.FillRect(0, 0, a.w, a.h, ColorBlack)
	for _, u := range a.users {
		c := funnelRetained
		if u.churned {
			c = funnelChurned
		}
		s.FillCircle(u.x, u.y, 3, c)
	}
	x := a.w * funnelThreshold
	StrokeDashed(s, Vec2{x, 0}, Vec2{x, a.h}, 5, 5, 1, funnelLine)
}
