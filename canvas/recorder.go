package canvas

// OpKind identifies a recorded drawing call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpFill
	OpFillRect
	OpFillCircle
	OpFillPolygon
	OpStroke
	OpText
)

var opNames = [...]string{"clear", "fill", "rect", "circle", "polygon", "stroke", "text"}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "unknown"
}

// Op is one recorded drawing call. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	X, Y   float64
	W, H   float64
	R      float64
	Points []Vec2
	Text   string
	Align  Align
	Color  Color
}

// Recorder is a Surface that records every call instead of drawing. Tests use
// it to count draw calls and inspect geometry.
type Recorder struct {
	w, h    int
	ops     []Op
	resizes int
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: max(w, 0), h: max(h, 0)}
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) Resize(w, h int) {
	r.w, r.h = max(w, 0), max(h, 0)
	r.resizes++
}

func (r *Recorder) Clear() { r.ops = append(r.ops, Op{Kind: OpClear}) }

func (r *Recorder) Fill(c Color) { r.ops = append(r.ops, Op{Kind: OpFill, Color: c}) }

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpFillCircle, X: cx, Y: cy, R: rad, Color: c})
}

func (r *Recorder) FillPolygon(pts []Vec2, c Color) {
	r.ops = append(r.ops, Op{Kind: OpFillPolygon, Points: append([]Vec2(nil), pts...), Color: c})
}

func (r *Recorder) StrokePolyline(pts []Vec2, width float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpStroke, Points: append([]Vec2(nil), pts...), W: width, Color: c})
}

func (r *Recorder) DrawText(s string, x, y, size float64, align Align, c Color) {
	r.ops = append(r.ops, Op{Kind: OpText, Text: s, X: x, Y: y, H: size, Align: align, Color: c})
}

// Ops returns the recorded calls. The slice MUST NOT be mutated.
func (r *Recorder) Ops() []Op { return r.ops }

// Len returns the number of recorded calls.
func (r *Recorder) Len() int { return len(r.ops) }

// Count returns the number of recorded calls of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for i := range r.ops {
		if r.ops[i].Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the strings drawn since the last Reset, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for i := range r.ops {
		if r.ops[i].Kind == OpText {
			out = append(out, r.ops[i].Text)
		}
	}
	return out
}

// Resizes returns how many times Resize was called.
func (r *Recorder) Resizes() int { return r.resizes }

// Reset drops all recorded calls.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }

// Finite reports whether every recorded coordinate is a real number.
func (r *Recorder) Finite() bool {
	for i := range r.ops {
		op := &r.ops[i]
		if !finite([]Vec2{{op.X, op.Y}, {op.W, op.H}, {op.R, 0}}) || !finite(op.Points) {
			return false
		}
	}
	return true
}
