package canvas

import (
	"math"
	"math/rand/v2"
)

const instrumentCount = 70

type instrumentShape uint8

const (
	shapeGuitar instrumentShape = iota
	shapeDrum
	shapeNote
)

// Shapes are outlined in a 24x24 box centered on the origin.
var (
	guitarOutline = []Vec2{
		{-6, -10}, {6, -10}, {6, 5}, {9, 6}, {10, 9}, {8, 11}, {5, 11}, {3, 9},
		{3, -7}, {-3, -7}, {-3, 5}, {-3, 9}, {-5, 11}, {-8, 11}, {-10, 9}, {-9, 6}, {-6, 5},
	}
	drumTop   = Ellipse(0, -5.5, 10, 4.5)
	drumBody  = []Vec2{{-10, -3.5}, {10, -3.5}, {10, 3.5}, {0, 8}, {-10, 3.5}}
	noteStem  = RectPoints(0, -9, 2, 12)
	noteFlag  = RectPoints(0, -9, 6, 3)
	noteHead  = Ellipse(-2, 5, 4, 4)
	stageTop  = Hex("#050505")
	stageBot  = Hex("#110a1a")
	instrBlue = Hex("#646cff")
	instrRed  = Hex("#ff4444")
	instrFill = RGBA(255, 255, 255, 0.25)
)

const stageBands = 12

type instrument struct {
	x, y     float64
	size     float64
	vx, vy   float64
	rotation float64 // degrees
	spin     float64
	shape    instrumentShape
	color    Color
	pulse    float64
}

// instruments is the page background: outlined guitars, drums and notes
// drifting down a dark stage with the occasional sparkle.
type instruments struct {
	w, h    float64
	rng     *rand.Rand
	items   []instrument
	sparkle *Vec2
}

func (a *instruments) Init(w, h int, rng *rand.Rand) {
	a.rng = rng
	a.Resize(w, h)
}

// Resize scatters a fresh field over the new area.
func (a *instruments) Resize(w, h int) {
	a.w, a.h = float64(w), float64(h)
	r := a.rng
	a.items = a.items[:0]
	for i := 0; i < instrumentCount; i++ {
		it := instrument{
			x:        r.Float64() * a.w,
			y:        r.Float64() * a.h,
			size:     r.Float64()*0.9 + 0.6,
			vy:       r.Float64()*0.5 + 0.2,
			vx:       (r.Float64() - 0.5) * 0.5,
			rotation: r.Float64() * 360,
			spin:     (r.Float64() - 0.5) * 1.5,
			color:    instrBlue,
			pulse:    r.Float64() * math.Pi,
		}
		switch {
		case r.Float64() > 0.4:
			it.shape = shapeGuitar
		case r.Float64() > 0.5:
			it.shape = shapeDrum
		default:
			it.shape = shapeNote
		}
		if r.Float64() > 0.5 {
			it.color = instrRed
		}
		a.items = append(a.items, it)
	}
}

func (a *instruments) Advance(dt float64) {
	steps := frames(dt)
	for i := range a.items {
		it := &a.items[i]
		it.y += it.vy * steps
		it.x += it.vx * steps
		it.rotation += it.spin * steps
		it.pulse += 0.05 * steps
		if it.y > a.h+50 {
			it.y = -50
		}
		if it.x > a.w+50 {
			it.x = -50
		}
		if it.x < -50 {
			it.x = a.w + 50
		}
	}
	a.sparkle = nil
	if a.rng.Float64() > 0.95 {
		a.sparkle = &Vec2{a.rng.Float64() * a.w, a.rng.Float64() * a.h}
	}
}

func (a *instruments) Render(s Surface) {
	band := a.h / stageBands
	for i := 0; i < stageBands; i++ {
		s.FillRect(0, float64(i)*band, a.w, band+1, stageTop.Lerp(stageBot, float64(i)/(stageBands-1)))
	}
	for i := range a.items {
		it := &a.items[i]
		scale := it.size + math.Sin(it.pulse)*0.1
		m := Identity.Translate(it.x, it.y).Rotate(it.rotation * math.Pi / 180).Scale(scale, scale)
		switch it.shape {
		case shapeGuitar:
			outline(s, m, guitarOutline, it.color)
		case shapeDrum:
			outline(s, m, drumTop, it.color)
			outline(s, m, drumBody, it.color)
		default:
			c := it.color.WithAlpha(0.4)
			FillTransformed(s, m, noteStem, c)
			FillTransformed(s, m, noteFlag, c)
			FillTransformed(s, m, noteHead, c)
		}
	}
	if a.sparkle != nil {
		s.FillRect(a.sparkle.X, a.sparkle.Y, 2, 2, ColorWhite)
	}
}

func outline(s Surface, m Affine, pts []Vec2, stroke Color) {
	FillTransformed(s, m, pts, instrFill)
	t := m.ApplyAll(pts)
	s.StrokePolyline(append(t, t[0]), m.ScaleFactor(), stroke.WithAlpha(0.25))
}
