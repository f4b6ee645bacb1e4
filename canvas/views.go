package canvas

import (
	"math/rand/v2"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	viewsBG   = Hex("#111")
	viewsPlay = Hex("#f00")
)

var viewsPrinter = message.NewPrinter(language.English)

// views is a play button above a view counter that climbs by a random amount
// every frame.
type views struct {
	w, h  float64
	count int
	rng   *rand.Rand
}

func (a *views) Init(w, h int, rng *rand.Rand) {
	a.count = 1500
	a.rng = rng
	a.Resize(w, h)
}

func (a *views) Resize(w, h int) { a.w, a.h = float64(w), float64(h) }

func (a *views) Advance(dt float64) {
	for n := int(frames(dt) + 0.5); n > 0; n-- {
		a.count += a.rng.IntN(50)
	}
}

// Label is the digit-grouped counter text.
func (a *views) Label() string { return viewsPrinter.Sprintf("%d", a.count) }

func (a *views) Render(s Surface) {
	cx, cy := a.w/2, a.h/2
	s.FillRect(0, 0, a.w, a.h, viewsBG)
	s.FillPolygon(RoundRect(cx-25, cy-25, 50, 35, 10), viewsPlay)
	s.FillPolygon([]Vec2{{cx - 5, cy - 15}, {cx + 10, cy - 7}, {cx - 5, cy + 2}}, ColorWhite)
	s.DrawText(a.Label(), cx, cy+33, 20, AlignCenter, ColorWhite)
}
