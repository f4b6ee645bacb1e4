package canvas

import (
	"math"
	"math/rand/v2"
)

const spectrumBars = 16

var spectrumBG = Hex("#0a0a0a")

// spectrum is an equalizer of smoothly oscillating bars whose hues rotate
// over time.
type spectrum struct {
	w, h float64
	tick float64
}

func (a *spectrum) Init(w, h int, _ *rand.Rand) {
	a.tick = 0
	a.Resize(w, h)
}

func (a *spectrum) Resize(w, h int) { a.w, a.h = float64(w), float64(h) }

func (a *spectrum) Advance(dt float64) { a.tick += 0.05 * frames(dt) }

// barHeight blends two sine waves so neighbouring bars move together.
func (a *spectrum) barHeight(i int) float64 {
	n := math.Sin(a.tick+float64(i)*0.5)*0.5 + 0.5
	n2 := math.Sin(a.tick*0.5+float64(i)*0.2)*0.5 + 0.5
	return (n*0.7+n2*0.3)*(a.h*0.7) + 10
}

func (a *spectrum) Render(s Surface) {
	s.FillRect(0, 0, a.w, a.h, spectrumBG)
	barW := a.w / spectrumBars
	for i := 0; i < spectrumBars; i++ {
		bh := a.barHeight(i)
		s.FillRect(float64(i)*barW, a.h-bh, barW-2, bh, HSL(float64(i)*20+a.tick*20, 0.7, 0.5))
	}
}
