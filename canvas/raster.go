package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Raster is a CPU Surface backed by an *image.RGBA. Polygons are scan
// converted with golang.org/x/image/vector; text uses the fixed 7x13 basic
// font regardless of the requested size.
type Raster struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewRaster creates a raster surface. Negative sizes are treated as zero.
func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

// Image returns the backing image. It is replaced on Resize.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if r.img != nil {
		if b := r.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	if w > 0 && h > 0 {
		r.z = vector.NewRasterizer(w, h)
	} else {
		r.z = nil
	}
}

func (r *Raster) empty() bool {
	return r.z == nil
}

func (r *Raster) Clear() {
	clear(r.img.Pix)
}

func (r *Raster) Fill(c Color) {
	if r.empty() {
		return
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Over)
}

func (r *Raster) FillRect(x, y, w, h float64, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r.FillPolygon(RectPoints(x, y, w, h), c)
}

func (r *Raster) FillCircle(cx, cy, rad float64, c Color) {
	if rad <= 0 {
		return
	}
	r.FillPolygon(Ellipse(cx, cy, rad, rad), c)
}

func (r *Raster) FillPolygon(pts []Vec2, c Color) {
	if r.empty() || len(pts) < 3 || c.A <= 0 || !finite(pts) {
		return
	}
	w, h := r.Size()
	pts = clipPolygon(pts, float64(w), float64(h))
	if len(pts) < 3 {
		return
	}
	box := polygonBounds(pts).Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}
	// Rasterize only the covered box; the mask origin is box.Min.
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	r.z.Reset(box.Dx(), box.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		r.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, box, image.NewUniform(c.NRGBA()), image.Point{})
}

// polygonBounds is the smallest pixel rectangle containing pts.
func polygonBounds(pts []Vec2) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

func (r *Raster) StrokePolyline(pts []Vec2, width float64, c Color) {
	for _, q := range StrokeQuads(pts, width) {
		r.FillPolygon(q, c)
	}
}

func (r *Raster) DrawText(s string, x, y, size float64, align Align, c Color) {
	if r.empty() || s == "" || math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c.NRGBA()),
		Face: basicfont.Face7x13,
	}
	adv := float64(d.MeasureString(s).Round())
	switch align {
	case AlignCenter:
		x -= adv / 2
	case AlignRight:
		x -= adv
	}
	m := basicfont.Face7x13.Metrics()
	baseline := y + float64(m.Ascent.Round()-m.Descent.Round())/2
	d.Dot = fixed.P(int(math.Round(x)), int(math.Round(baseline)))
	d.DrawString(s)
}

// EncodePNG writes the current contents as a PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("canvas: encode png: %w", err)
	}
	return nil
}

// clipPolygon clips pts to the rectangle [0,w]x[0,h] (Sutherland-Hodgman).
func clipPolygon(pts []Vec2, w, h float64) []Vec2 {
	type edge struct {
		inside func(Vec2) bool
		cross  func(a, b Vec2) Vec2
	}
	atX := func(a, b Vec2, x float64) Vec2 {
		t := (x - a.X) / (b.X - a.X)
		return Vec2{x, a.Y + (b.Y-a.Y)*t}
	}
	atY := func(a, b Vec2, y float64) Vec2 {
		t := (y - a.Y) / (b.Y - a.Y)
		return Vec2{a.X + (b.X-a.X)*t, y}
	}
	edges := [4]edge{
		{func(p Vec2) bool { return p.X >= 0 }, func(a, b Vec2) Vec2 { return atX(a, b, 0) }},
		{func(p Vec2) bool { return p.X <= w }, func(a, b Vec2) Vec2 { return atX(a, b, w) }},
		{func(p Vec2) bool { return p.Y >= 0 }, func(a, b Vec2) Vec2 { return atY(a, b, 0) }},
		{func(p Vec2) bool { return p.Y <= h }, func(a, b Vec2) Vec2 { return atY(a, b, h) }},
	}
	out := pts
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]Vec2, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}
