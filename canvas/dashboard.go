package canvas

import (
	"math"
	"math/rand/v2"
)

type moduleType uint8

const (
	moduleGraph moduleType = iota
	moduleList
	moduleText
	modulePie
)

type dashModule struct {
	x, y, w, h float64
	typ        moduleType
	header     Color
}

var (
	dashBG     = Hex("#1f1f1f")
	dashPanel  = Hex("#2d2d2d")
	dashBlue   = Hex("#0078d4")
	dashRow    = Hex("#555")
	dashPie    = Hex("#e3008c")
	dashYellow = RGBA(242, 200, 17, 1)
)

// dashboard is a rotating dashboard mock: a 2x2 grid of modules with
// animated bars, scrolling rows, a pulsing tile and a spinning pie arc.
type dashboard struct {
	w, h    float64
	modules []dashModule
	tick    float64
}

func (a *dashboard) Init(w, h int, _ *rand.Rand) {
	a.tick = 0
	a.Resize(w, h)
}

func (a *dashboard) Resize(w, h int) {
	a.w, a.h = float64(w), float64(h)
	const pad = 20.0
	mw := (a.w - pad*3) / 2
	mh := (a.h - pad*3) / 2
	a.modules = a.modules[:0]
	if mw <= 0 || mh <= 0 {
		return
	}
	a.modules = append(a.modules,
		dashModule{pad, pad, mw, mh, moduleGraph, dashBlue},
		dashModule{mw + pad*2, pad, mw, mh, moduleList, ColorWhite},
		dashModule{pad, mh + pad*2, mw, mh, moduleText, ColorWhite},
		dashModule{mw + pad*2, mh + pad*2, mw, mh, modulePie, Hex("#f3f2f1")},
	)
}

func (a *dashboard) Advance(dt float64) {
	a.tick += frames(dt)
}

func (a *dashboard) Render(s Surface) {
	s.FillRect(0, 0, a.w, a.h, dashBG)
	for _, m := range a.modules {
		s.FillRect(m.x, m.y, m.w, m.h, dashPanel)
		s.FillRect(m.x, m.y, m.w, 4, m.header)
		switch m.typ {
		case moduleGraph:
			barW := m.w / 5
			for j := 0; j < 4; j++ {
				bh := (math.Sin(a.tick*0.05+float64(j))*0.5 + 0.5) * (m.h * 0.6)
				s.FillRect(m.x+10+float64(j)*(barW+5), m.y+m.h-10-bh, barW, bh, dashBlue)
			}
		case moduleList:
			span := m.h - 20
			for j := 0; j < 5; j++ {
				y := wrap(a.tick*0.5+float64(j)*15, span)
				s.FillRect(m.x+10, m.y+20+y, m.w-20, 8, dashRow)
			}
		case modulePie:
			rot := a.tick * 0.02
			StrokeArc(s, m.x+m.w/2, m.y+m.h/2, m.h*0.3, rot, rot+1.5*math.Pi, 4, dashPie)
		default:
			alpha := math.Sin(a.tick*0.1)*0.5 + 0.5
			s.FillRect(m.x+m.w/2-15, m.y+m.h/2-15, 30, 30, dashYellow.WithAlpha(alpha))
		}
	}
}
