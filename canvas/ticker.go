package canvas

import (
	"math"
	"math/rand/v2"
	"strconv"
)

var (
	tickerBG     = Hex("#111")
	tickerTicket = Hex("#f4c430")
)

// ticker is a movie ticket whose price drifts between 50 and 120 and bounces
// at either end.
type ticker struct {
	w, h  float64
	price float64
	trend float64
}

func (a *ticker) Init(w, h int, _ *rand.Rand) {
	a.price, a.trend = 50, 0.5
	a.Resize(w, h)
}

func (a *ticker) Resize(w, h int) { a.w, a.h = float64(w), float64(h) }

func (a *ticker) Advance(dt float64) {
	a.price += a.trend * frames(dt)
	if a.price > 120 || a.price < 50 {
		a.trend = -a.trend
		a.price = clamp(a.price, 50, 120)
	}
}

// Price is the displayed whole-dollar amount.
func (a *ticker) Price() int { return int(math.Floor(a.price)) }

func (a *ticker) Render(s Surface) {
	s.FillRect(0, 0, a.w, a.h, tickerBG)
	s.FillPolygon(RoundRect(a.w*0.2, a.h*0.3, a.w*0.6, a.h*0.4, 10), tickerTicket)
	s.DrawText("$"+strconv.Itoa(a.Price()), a.w/2, a.h/2, 30, AlignCenter, ColorBlack)
	s.DrawText("ADMIT ONE", a.w/2, a.h/2-24, 12, AlignCenter, ColorBlack)
}
