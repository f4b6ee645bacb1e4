package canvas

import (
	"math"
	"math/rand/v2"
)

var (
	docBG    = Hex("#0f172a")
	docLine  = Hex("#ccc")
	docBeam  = RGBA(99, 102, 241, 0.5)
	docPulse = Hex("#00ff88")
	docCard  = Hex("#1e293b")
)

var docChoices = [4]string{"A", "B", "C", "D"}

// document scans a page, pulses an indicator above it and periodically
// orbits four answer choices around it.
type document struct {
	w, h  float64
	tick  float64
	scanY float64
}

func (a *document) Init(w, h int, _ *rand.Rand) {
	a.tick, a.scanY = 0, 0
	a.Resize(w, h)
}

func (a *document) Resize(w, h int) { a.w, a.h = float64(w), float64(h) }

func (a *document) Advance(dt float64) {
	steps := frames(dt)
	a.tick += steps
	a.scanY = wrap(a.scanY+2*steps, 100)
}

func (a *document) pulsing() bool   { return math.Mod(a.tick, 60) < 20 }
func (a *document) showCards() bool { return math.Mod(a.tick, 120) > 60 }

func (a *document) Render(s Surface) {
	cx, cy := a.w/2, a.h/2
	s.FillRect(0, 0, a.w, a.h, docBG)
	s.FillPolygon(RoundRect(cx-30, cy-40, 60, 80, 5), ColorWhite)
	s.FillRect(cx-20, cy-30, 40, 5, docLine)
	s.FillRect(cx-20, cy-15, 40, 5, docLine)
	s.FillRect(cx-20, cy, 30, 5, docLine)
	s.FillRect(cx-35, cy-45+a.scanY, 70, 5, docBeam)

	if a.pulsing() {
		s.FillCircle(cx, cy-60, 10+math.Sin(a.tick*0.5)*5, docPulse)
	}
	if !a.showCards() {
		return
	}
	for i, label := range docChoices {
		angle := float64(i)/4*2*math.Pi + a.tick*0.02
		x := cx + math.Cos(angle)*60
		y := cy + math.Sin(angle)*60
		s.FillCircle(x, y, 15, docCard)
		s.DrawText(label, x, y, 12, AlignCenter, ColorWhite)
	}
}
