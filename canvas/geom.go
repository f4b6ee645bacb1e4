package canvas

import (
	"math"
	"math/rand/v2"
)

// Vec2 is a 2D point or offset. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Affine is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type Affine [6]float64

// Identity is the transform that leaves points unchanged.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Mul returns a*o. Points are transformed by o first, then by a.
func (a Affine) Mul(o Affine) Affine {
	return Affine{
		a[0]*o[0] + a[2]*o[1],
		a[1]*o[0] + a[3]*o[1],
		a[0]*o[2] + a[2]*o[3],
		a[1]*o[2] + a[3]*o[3],
		a[0]*o[4] + a[2]*o[5] + a[4],
		a[1]*o[4] + a[3]*o[5] + a[5],
	}
}

// Translate appends a translation, like CanvasRenderingContext2D.translate.
func (a Affine) Translate(x, y float64) Affine {
	return a.Mul(Affine{1, 0, 0, 1, x, y})
}

// Rotate appends a clockwise rotation in radians.
func (a Affine) Rotate(theta float64) Affine {
	s, c := math.Sincos(theta)
	return a.Mul(Affine{c, s, -s, c, 0, 0})
}

// Scale appends a scale.
func (a Affine) Scale(sx, sy float64) Affine {
	return a.Mul(Affine{sx, 0, 0, sy, 0, 0})
}

// Apply transforms a single point.
func (a Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: a[0]*p.X + a[2]*p.Y + a[4],
		Y: a[1]*p.X + a[3]*p.Y + a[5],
	}
}

// ApplyAll returns the transformed copy of pts; pts is left untouched.
func (a Affine) ApplyAll(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = a.Apply(p)
	}
	return out
}

// ScaleFactor returns the mean axis scale, used to size circles drawn under a
// transform.
func (a Affine) ScaleFactor() float64 {
	sx := math.Hypot(a[0], a[1])
	sy := math.Hypot(a[2], a[3])
	return (sx + sy) / 2
}

// RectPoints returns the corners of an axis-aligned rectangle, clockwise.
func RectPoints(x, y, w, h float64) []Vec2 {
	return []Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// Arc returns points along a circular arc from start to end (radians).
func Arc(cx, cy, r, start, end float64) []Vec2 {
	n := segmentsFor(r, math.Abs(end-start))
	pts := make([]Vec2, n+1)
	for i := 0; i <= n; i++ {
		t := start + (end-start)*float64(i)/float64(n)
		s, c := math.Sincos(t)
		pts[i] = Vec2{cx + c*r, cy + s*r}
	}
	return pts
}

// Ellipse returns a closed outline of an axis-aligned ellipse.
func Ellipse(cx, cy, rx, ry float64) []Vec2 {
	n := segmentsFor(math.Max(rx, ry), 2*math.Pi)
	pts := make([]Vec2, n)
	for i := 0; i < n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = Vec2{cx + c*rx, cy + s*ry}
	}
	return pts
}

// RoundRect returns the outline of a rectangle with rounded corners. The
// radius is clamped to half the shorter side.
func RoundRect(x, y, w, h, r float64) []Vec2 {
	if w <= 0 || h <= 0 {
		return nil
	}
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return RectPoints(x, y, w, h)
	}
	const q = math.Pi / 2
	var pts []Vec2
	pts = append(pts, Arc(x+w-r, y+r, r, -q, 0)...)
	pts = append(pts, Arc(x+w-r, y+h-r, r, 0, q)...)
	pts = append(pts, Arc(x+r, y+h-r, r, q, 2*q)...)
	pts = append(pts, Arc(x+r, y+r, r, 2*q, 3*q)...)
	return pts
}

// Dashes splits the segment a→b into dash segments of length on separated by
// gaps of length off.
func Dashes(a, b Vec2, on, off float64) [][]Vec2 {
	length := math.Hypot(b.X-a.X, b.Y-a.Y)
	if length == 0 || on <= 0 {
		return nil
	}
	if off < 0 {
		off = 0
	}
	dx, dy := (b.X-a.X)/length, (b.Y-a.Y)/length
	var out [][]Vec2
	for d := 0.0; d < length; d += on + off {
		e := math.Min(d+on, length)
		out = append(out, []Vec2{
			{a.X + dx*d, a.Y + dy*d},
			{a.X + dx*e, a.Y + dy*e},
		})
	}
	return out
}

// segmentsFor picks a polygon resolution for a curve of radius r spanning
// sweep radians.
func segmentsFor(r, sweep float64) int {
	n := int(math.Ceil(math.Sqrt(math.Max(r, 1)) * 4 * sweep / (2 * math.Pi)))
	switch {
	case n < 4:
		return 4
	case n > 96:
		return 96
	}
	return n
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// finite reports whether every coordinate of pts is a real number.
func finite(pts []Vec2) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// wrap maps v into [0, m). m <= 0 yields 0.
func wrap(v, m float64) float64 {
	if m <= 0 {
		return 0
	}
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}
