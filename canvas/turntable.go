package canvas

import (
	"math"
	"math/rand/v2"
)

var (
	deckBG     = Hex("#141414")
	deckPlinth = Hex("#262626")
	deckVinyl  = Hex("#0b0b0b")
	deckGroove = RGBA(255, 255, 255, 0.06)
	deckLabelA = Hex("#646cff")
	deckLabelB = Hex("#ff4444")
	deckArm    = Hex("#bdbdbd")
	meterOff   = Hex("#222")
	meterLow   = Hex("#00ff88")
	meterHigh  = Hex("#ffeb3b")
	meterClip  = Hex("#ff3333")
	meterPeak  = Hex("#ffffff")
)

const (
	meterSegs   = 12
	meterDecay  = 0.01
	meterJitter = 0.15
)

type deck struct {
	rpm   float64
	angle float64
	label Color
	level float64
	peak  float64
	phase float64
}

// spin is the platter's angular speed in radians per frame.
func (d *deck) spin() float64 { return d.rpm * 2 * math.Pi / 60 / frameRate }

// turntable is a DJ booth: two platters spinning at 33 1/3 and 45 rpm with
// tonearms and a VU meter per deck that holds its peak.
type turntable struct {
	w, h  float64
	rng   *rand.Rand
	decks [2]deck
}

func (a *turntable) Init(w, h int, rng *rand.Rand) {
	a.rng = rng
	a.decks = [2]deck{
		{rpm: 100.0 / 3, label: deckLabelA},
		{rpm: 45, label: deckLabelB, phase: math.Pi / 2},
	}
	a.Resize(w, h)
}

func (a *turntable) Resize(w, h int) { a.w, a.h = float64(w), float64(h) }

func (a *turntable) Advance(dt float64) {
	steps := frames(dt)
	for i := range a.decks {
		d := &a.decks[i]
		d.angle = math.Mod(d.angle+d.spin()*steps, 2*math.Pi)
		d.phase += 0.08 * steps
		lvl := 0.55 + 0.3*math.Sin(d.phase) + (a.rng.Float64()-0.5)*meterJitter
		d.level = clamp(lvl, 0, 1)
		d.peak = math.Max(d.peak-meterDecay*steps, d.level)
	}
}

func (a *turntable) Render(s Surface) {
	s.FillRect(0, 0, a.w, a.h, deckBG)
	half := a.w / 2
	for i := range a.decks {
		a.renderDeck(s, &a.decks[i], float64(i)*half, half)
	}
}

func (a *turntable) renderDeck(s Surface, d *deck, x0, w float64) {
	pad := 10.0
	meterW := 14.0
	s.FillPolygon(RoundRect(x0+pad/2, pad, w-pad, a.h-pad*2, 8), deckPlinth)

	r := math.Min(w-meterW-pad*4, a.h-pad*4) / 2
	if r <= 0 {
		return
	}
	cx := x0 + pad + r + pad/2
	cy := a.h / 2
	s.FillCircle(cx, cy, r, deckVinyl)
	for g := 0.5; g < 0.95; g += 0.15 {
		StrokeCircle(s, cx, cy, r*g, 1, deckGroove)
	}
	s.FillCircle(cx, cy, r*0.3, d.label)
	sn, cs := math.Sincos(d.angle)
	StrokeLine(s, cx, cy, cx+cs*r*0.28, cy+sn*r*0.28, 2, ColorWhite)
	s.FillCircle(cx, cy, 2, ColorBlack)

	// Tonearm pivots at the top right of the platter and rests on the groove.
	px, py := cx+r*0.95, cy-r*0.85
	s.FillCircle(px, py, 4, deckArm)
	StrokeLine(s, px, py, cx+r*0.55, cy+r*0.35, 3, deckArm)

	a.renderMeter(s, d, x0+w-pad-meterW, pad*2, meterW, a.h-pad*4)
}

func (a *turntable) renderMeter(s Surface, d *deck, x, y, w, h float64) {
	segH := h / meterSegs
	lit := int(d.level * meterSegs)
	for i := 0; i < meterSegs; i++ {
		sy := y + h - float64(i+1)*segH
		c := meterOff
		if i < lit {
			switch {
			case i >= meterSegs-2:
				c = meterClip
			case i >= meterSegs-5:
				c = meterHigh
			default:
				c = meterLow
			}
		}
		s.FillRect(x, sy+1, w, segH-2, c)
	}
	s.FillRect(x, y+h-d.peak*h, w, 2, meterPeak)
}
