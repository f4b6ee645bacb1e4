package folio

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Measurer measures single-line strings at a pixel size. Layout depends only
// on this interface so pages can be built without a display.
type Measurer interface {
	MeasureString(s string, size float64) (width, height float64)
	LineHeight(size float64) float64
}

// FontSet wraps Ebitengine's text/v2 for one TrueType source and caches a
// face per requested size.
type FontSet struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadFontSet parses raw TTF/OTF data.
func LoadFontSet(ttfData []byte) (*FontSet, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("folio: failed to parse TTF data: %w", err)
	}
	return &FontSet{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// DefaultFontSet loads the bundled Go Regular font.
func DefaultFontSet() (*FontSet, error) {
	return LoadFontSet(goregular.TTF)
}

// Face returns the face for size, creating it on first use.
func (f *FontSet) Face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}

func (f *FontSet) LineHeight(size float64) float64 {
	m := f.Face(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

func (f *FontSet) MeasureString(s string, size float64) (width, height float64) {
	return text.Measure(s, f.Face(size), f.LineHeight(size))
}

// FixedMeasurer approximates a proportional font with a constant advance per
// rune. Headless rendering and tests use it.
type FixedMeasurer struct {
	// Advance is the glyph width as a fraction of the size. Zero means 0.55.
	Advance float64
}

func (m FixedMeasurer) advance() float64 {
	if m.Advance <= 0 {
		return 0.55
	}
	return m.Advance
}

func (m FixedMeasurer) MeasureString(s string, size float64) (width, height float64) {
	return float64(utf8.RuneCountInString(s)) * size * m.advance(), m.LineHeight(size)
}

func (m FixedMeasurer) LineHeight(size float64) float64 { return math.Ceil(size * 1.3) }

// Wrap breaks s into lines no wider than width, splitting on spaces. A single
// word wider than width gets a line of its own. Explicit newlines are kept.
func Wrap(m Measurer, s string, size, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if nw, _ := m.MeasureString(next, size); nw > width {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}
