package canvas

import "math"

// Align controls horizontal text placement relative to the anchor point.
type Align uint8

const (
	AlignLeft   Align = iota // anchor is the left edge
	AlignCenter              // anchor is the horizontal center
	AlignRight               // anchor is the right edge
)

// Surface is a rectangular raster drawing target. Coordinates are pixels with
// the origin at the top-left. Drawing outside the bounds is clipped, never an
// error. Text is vertically centered on y.
type Surface interface {
	Size() (w, h int)
	// Resize changes the surface dimensions. Contents after a resize are
	// unspecified; animations repaint every tick.
	Resize(w, h int)
	// Clear sets every pixel to transparent.
	Clear()
	// Fill composites c over the whole surface. A translucent c fades the
	// previous frame.
	Fill(c Color)
	FillRect(x, y, w, h float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
	// FillPolygon fills a simple polygon (convex or concave) using the
	// non-zero winding rule.
	FillPolygon(pts []Vec2, c Color)
	StrokePolyline(pts []Vec2, width float64, c Color)
	DrawText(s string, x, y, size float64, align Align, c Color)
}

// StrokeQuads expands a polyline into one quad per segment. Zero-length
// segments are skipped.
func StrokeQuads(pts []Vec2, width float64) [][]Vec2 {
	if len(pts) < 2 || width <= 0 {
		return nil
	}
	hw := width / 2
	quads := make([][]Vec2, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 || math.IsNaN(l) {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		quads = append(quads, []Vec2{
			{a.X + nx, a.Y + ny},
			{b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny},
			{a.X - nx, a.Y - ny},
		})
	}
	return quads
}

// StrokeArc strokes a circular arc.
func StrokeArc(s Surface, cx, cy, r, start, end, width float64, c Color) {
	s.StrokePolyline(Arc(cx, cy, r, start, end), width, c)
}

// StrokeCircle strokes a full circle.
func StrokeCircle(s Surface, cx, cy, r, width float64, c Color) {
	StrokeArc(s, cx, cy, r, 0, 2*math.Pi, width, c)
}

// StrokeLine strokes a single segment.
func StrokeLine(s Surface, x0, y0, x1, y1, width float64, c Color) {
	s.StrokePolyline([]Vec2{{x0, y0}, {x1, y1}}, width, c)
}

// StrokeDashed strokes a dashed segment.
func StrokeDashed(s Surface, a, b Vec2, on, off, width float64, c Color) {
	for _, d := range Dashes(a, b, on, off) {
		s.StrokePolyline(d, width, c)
	}
}

// FillTransformed fills pts after applying m.
func FillTransformed(s Surface, m Affine, pts []Vec2, c Color) {
	s.FillPolygon(m.ApplyAll(pts), c)
}
