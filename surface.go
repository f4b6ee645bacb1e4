package folio

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/folio/canvas"
)

// PageCanvas is a Surface that can also composite other surfaces and decoded
// images. Pages draw onto it.
type PageCanvas interface {
	canvas.Surface
	// DrawSurface composites src with its top-left at (x, y). Sources of a
	// different implementation are skipped.
	DrawSurface(src canvas.Surface, x, y, alpha float64)
	// DrawImage scales img into the w x h box at (x, y).
	DrawImage(img image.Image, x, y, w, h float64)
}

// whitePixel is the 1x1 source used for solid fills. It is cut from the center
// of a 3x3 image so linear filtering never samples an edge.
var whitePixel *ebiten.Image

func solidSource() *ebiten.Image {
	if whitePixel == nil {
		base := ebiten.NewImage(3, 3)
		base.Fill(color.White)
		whitePixel = base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// ImageSurface draws onto an Ebitengine image. Polygons are fanned into
// triangles and filled with the non-zero rule, so concave outlines work.
type ImageSurface struct {
	img   *ebiten.Image
	w, h  int
	owned bool
	fonts *FontSet

	verts  []ebiten.Vertex
	inds   []uint16
	images map[image.Image]*ebiten.Image
}

// NewImageSurface allocates an offscreen surface. fonts may be nil, in which
// case DrawText is a no-op.
func NewImageSurface(w, h int, fonts *FontSet) *ImageSurface {
	s := &ImageSurface{owned: true, fonts: fonts}
	s.Resize(w, h)
	return s
}

// WrapImage draws onto an image owned by the caller, typically the screen.
func WrapImage(img *ebiten.Image, fonts *FontSet) *ImageSurface {
	s := &ImageSurface{fonts: fonts}
	s.SetTarget(img)
	return s
}

// SetTarget switches a wrapping surface to a new destination image.
func (s *ImageSurface) SetTarget(img *ebiten.Image) {
	s.img = img
	s.w, s.h = 0, 0
	if img != nil {
		b := img.Bounds()
		s.w, s.h = b.Dx(), b.Dy()
	}
}

// Image returns the destination image, nil while the surface is empty.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

func (s *ImageSurface) Size() (int, int) { return s.w, s.h }

// Resize reallocates an owned surface. Wrapped surfaces only track the size.
func (s *ImageSurface) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == s.w && h == s.h && (s.img != nil || w == 0 || h == 0) {
		return
	}
	s.w, s.h = w, h
	if !s.owned {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

func (s *ImageSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *ImageSurface) Fill(c canvas.Color) {
	s.FillRect(0, 0, float64(s.w), float64(s.h), c)
}

func (s *ImageSurface) FillRect(x, y, w, h float64, c canvas.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	s.FillPolygon(canvas.RectPoints(x, y, w, h), c)
}

func (s *ImageSurface) FillCircle(cx, cy, r float64, c canvas.Color) {
	if r <= 0 {
		return
	}
	s.FillPolygon(canvas.Ellipse(cx, cy, r, r), c)
}

func (s *ImageSurface) FillPolygon(pts []canvas.Vec2, c canvas.Color) {
	if s.img == nil || len(pts) < 3 || c.A <= 0 || len(pts) > 1<<15 {
		return
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	cr, cg, cb, ca := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	for _, p := range pts {
		s.verts = append(s.verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	for i := 1; i+1 < len(pts); i++ {
		s.inds = append(s.inds, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleNonZero,
		AntiAlias: true,
	}
	s.img.DrawTriangles(s.verts, s.inds, solidSource(), op)
}

func (s *ImageSurface) StrokePolyline(pts []canvas.Vec2, width float64, c canvas.Color) {
	for _, q := range canvas.StrokeQuads(pts, width) {
		s.FillPolygon(q, c)
	}
}

func (s *ImageSurface) DrawText(str string, x, y, size float64, align canvas.Align, c canvas.Color) {
	if s.img == nil || s.fonts == nil || str == "" || size <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.NRGBA())
	op.SecondaryAlign = text.AlignCenter
	switch align {
	case canvas.AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case canvas.AlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	text.Draw(s.img, str, s.fonts.Face(size), op)
}

func (s *ImageSurface) DrawSurface(src canvas.Surface, x, y, alpha float64) {
	other, ok := src.(*ImageSurface)
	if !ok || s.img == nil || other.img == nil || alpha <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	s.img.DrawImage(other.img, op)
}

// DrawImage uploads img on first use and keeps the texture for later frames.
func (s *ImageSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if s.img == nil || img == nil || w <= 0 || h <= 0 {
		return
	}
	if s.images == nil {
		s.images = make(map[image.Image]*ebiten.Image)
	}
	tex, ok := s.images[img]
	if !ok {
		tex = ebiten.NewImageFromImage(img)
		s.images[img] = tex
	}
	b := tex.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	s.img.DrawImage(tex, op)
}

// ForgetImages drops cached textures, e.g. after a video player rewinds and
// releases its frames.
func (s *ImageSurface) ForgetImages() {
	for k, tex := range s.images {
		tex.Deallocate()
		delete(s.images, k)
	}
}

// RasterCanvas is the headless PageCanvas over a canvas.Raster.
type RasterCanvas struct {
	*canvas.Raster
}

// NewRasterCanvas allocates a w x h headless page canvas.
func NewRasterCanvas(w, h int) *RasterCanvas {
	return &RasterCanvas{canvas.NewRaster(w, h)}
}

func (r *RasterCanvas) DrawSurface(src canvas.Surface, x, y, alpha float64) {
	var img *image.RGBA
	switch v := src.(type) {
	case *canvas.Raster:
		img = v.Image()
	case *RasterCanvas:
		img = v.Image()
	}
	if img == nil || alpha <= 0 {
		return
	}
	dst := r.Image()
	at := image.Pt(int(x), int(y))
	rect := img.Bounds().Add(at)
	if alpha >= 1 {
		draw.Draw(dst, rect, img, image.Point{}, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(alpha * 255)})
	draw.DrawMask(dst, rect, img, image.Point{}, mask, image.Point{}, draw.Over)
}

// DrawImage copies img into the box with nearest-neighbour scaling.
func (r *RasterCanvas) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w < 1 || h < 1 {
		return
	}
	dst := r.Image()
	sb := img.Bounds()
	x0, y0 := int(x), int(y)
	iw, ih := int(w), int(h)
	for dy := 0; dy < ih; dy++ {
		py := y0 + dy
		if py < 0 || py >= dst.Bounds().Dy() {
			continue
		}
		sy := sb.Min.Y + dy*sb.Dy()/ih
		for dx := 0; dx < iw; dx++ {
			px := x0 + dx
			if px < 0 || px >= dst.Bounds().Dx() {
				continue
			}
			dst.Set(px, py, img.At(sb.Min.X+dx*sb.Dx()/iw, sy))
		}
	}
}
