package folio

import (
	"github.com/phanxgames/folio/canvas"
)

// SectionID identifies a page section. Sections always appear in this order.
type SectionID uint8

const (
	SectionHero SectionID = iota
	SectionSkills
	SectionExperience
	SectionProjects
	SectionEducation
	SectionCertifications
	SectionVolunteering
	SectionClosing
	SectionFooter
	sectionCount
)

var sectionNames = [sectionCount]string{
	"hero", "skills", "experience", "projects", "education",
	"certifications", "volunteering", "closing", "footer",
}

var sectionTitles = [sectionCount]string{
	"", "Skills", "Experience", "Projects", "Education",
	"Certifications", "Volunteering", "", "",
}

func (id SectionID) String() string {
	if id < sectionCount {
		return sectionNames[id]
	}
	return "unknown"
}

// Title is the heading drawn above the section's cards, empty for sections
// without one.
func (id SectionID) Title() string {
	if id < sectionCount {
		return sectionTitles[id]
	}
	return ""
}

// Section is one page region and its cards, in content order.
type Section struct {
	ID     SectionID
	Bounds Rect
	Cards  []*Card

	titleY float64
}

// Line is a single run of text positioned relative to its card.
type Line struct {
	Text  string
	X, Y  float64
	Size  float64
	Align canvas.Align
	Color canvas.Color

	dynamic func() string
}

// String returns the current text, re-evaluated for counters and bars.
func (l Line) String() string {
	if l.dynamic != nil {
		return l.dynamic()
	}
	return l.Text
}

// Link is a clickable area relative to its card.
type Link struct {
	Label  string
	URL    string
	Bounds Rect
}

type counterSlot struct {
	counter *Counter
	bounds  Rect
}

type barSlot struct {
	bar    *ImpactBar
	bounds Rect
}

// Card is one content entry rendered as a panel. Every card fades in through
// its own Reveal.
type Card struct {
	Section SectionID
	Index   int
	Bounds  Rect
	Reveal  *Reveal
	Lines   []Line
	Links   []Link
	Media   *Media

	Counters []*Counter
	Bars     []*ImpactBar

	counterSlots []counterSlot
	barSlots     []barSlot
	plain        bool
	compose      func(b *cardBuilder)
}

// CounterBounds returns the page rectangle of the i-th counter.
func (c *Card) CounterBounds(i int) Rect {
	return c.counterSlots[i].bounds.Translate(c.Bounds.X, c.Bounds.Y)
}

// BarBounds returns the page rectangle of the i-th impact bar track.
func (c *Card) BarBounds(i int) Rect {
	return c.barSlots[i].bounds.Translate(c.Bounds.X, c.Bounds.Y)
}

// LinkAt returns the link under the page point (x, y).
func (c *Card) LinkAt(x, y float64) (Link, bool) {
	for _, l := range c.Links {
		if l.Bounds.Translate(c.Bounds.X, c.Bounds.Y).Contains(x, y) {
			return l, true
		}
	}
	return Link{}, false
}

// MediaBounds returns the page rectangle of the card's media area.
func (c *Card) MediaBounds() Rect {
	if c.Media == nil {
		return Rect{}
	}
	return c.Media.Bounds.Translate(c.Bounds.X, c.Bounds.Y)
}

func (c *Card) layout(m Measurer, x, y, width float64) {
	b := &cardBuilder{m: m, width: width, pad: cardPadding}
	if c.plain {
		b.pad = 0
	}
	b.y = b.pad
	c.compose(b)
	c.Lines = b.lines
	c.Links = b.placedLinks
	c.counterSlots = b.counters
	c.barSlots = b.bars
	c.Bounds = Rect{X: x, Y: y, Width: width, Height: b.y + b.pad}
}

// Palette.
var (
	pageBackground = canvas.Hex("#0f0f14")
	cardBackground = canvas.Hex("#1b1b24")
	headingColor   = canvas.Hex("#ffffff")
	bodyColor      = canvas.Hex("#b8b8c8")
	mutedColor     = canvas.Hex("#7a7a8c")
	linkColor      = canvas.Hex("#646cff")
	trackColor     = canvas.Hex("#2c2c3a")
)

// Text sizes.
const (
	sizeName    = 44.0
	sizeHeading = 28.0
	sizeTitle   = 20.0
	sizeBody    = 15.0
	sizeSmall   = 13.0
	sizeCounter = 24.0
)

const (
	cardPadding = 20.0
	lineGap     = 6.0
	barHeight   = 8.0
)

// cardBuilder stacks a card's content top to bottom inside a fixed width.
type cardBuilder struct {
	m     Measurer
	width float64
	pad   float64
	y     float64

	lines       []Line
	placedLinks []Link
	counters    []counterSlot
	bars        []barSlot
}

func (b *cardBuilder) inner() float64 { return max(b.width-2*b.pad, 0) }

func (b *cardBuilder) gap(d float64) { b.y += d }

// text wraps s to the card width and appends one Line per row.
func (b *cardBuilder) text(s string, size float64, c canvas.Color) {
	if s == "" {
		return
	}
	lh := b.m.LineHeight(size)
	for _, row := range Wrap(b.m, s, size, b.inner()) {
		b.lines = append(b.lines, Line{Text: row, X: b.pad, Y: b.y + lh/2, Size: size, Color: c})
		b.y += lh
	}
	b.y += lineGap
}

// centered appends a single unwrapped line centered in the card.
func (b *cardBuilder) centered(s string, size float64, c canvas.Color) {
	lh := b.m.LineHeight(size)
	b.lines = append(b.lines, Line{Text: s, X: b.width / 2, Y: b.y + lh/2, Size: size, Align: canvas.AlignCenter, Color: c})
	b.y += lh + lineGap
}

// links lays labels out left to right, wrapping to a new row when full.
func (b *cardBuilder) links(items []Link, size float64, center bool) {
	if len(items) == 0 {
		return
	}
	lh := b.m.LineHeight(size)
	const spacing = 16.0
	type placed struct {
		l Link
		w float64
	}
	var rows [][]placed
	var row []placed
	rowW := 0.0
	for _, l := range items {
		w, _ := b.m.MeasureString(l.Label, size)
		if len(row) > 0 && rowW+spacing+w > b.inner() {
			rows = append(rows, row)
			row, rowW = nil, 0
		}
		if len(row) > 0 {
			rowW += spacing
		}
		row = append(row, placed{l, w})
		rowW += w
	}
	rows = append(rows, row)
	for _, r := range rows {
		total := 0.0
		for i, p := range r {
			if i > 0 {
				total += spacing
			}
			total += p.w
		}
		x := b.pad
		if center {
			x = (b.width - total) / 2
		}
		for _, p := range r {
			l := p.l
			l.Bounds = Rect{X: x, Y: b.y, Width: p.w, Height: lh}
			b.placedLinks = append(b.placedLinks, l)
			b.lines = append(b.lines, Line{Text: l.Label, X: x, Y: b.y + lh/2, Size: size, Color: linkColor})
			x += p.w + spacing
		}
		b.y += lh
	}
	b.y += lineGap
}

// counters places animated counters in a row of equal columns, each with its
// label underneath.
func (b *cardBuilder) counterRow(cs []*Counter) {
	if len(cs) == 0 {
		return
	}
	col := b.inner() / float64(len(cs))
	vh := b.m.LineHeight(sizeCounter)
	lh := b.m.LineHeight(sizeSmall)
	for i, c := range cs {
		cx := b.pad + col*(float64(i)+0.5)
		b.counters = append(b.counters, counterSlot{
			counter: c,
			bounds:  Rect{X: b.pad + col*float64(i), Y: b.y, Width: col, Height: vh + lh},
		})
		b.lines = append(b.lines,
			Line{X: cx, Y: b.y + vh/2, Size: sizeCounter, Align: canvas.AlignCenter, Color: linkColor, dynamic: c.Text},
			Line{Text: c.Stat().Label, X: cx, Y: b.y + vh + lh/2, Size: sizeSmall, Align: canvas.AlignCenter, Color: mutedColor},
		)
	}
	b.y += vh + lh + lineGap
}

// bar places an impact bar: label and value above a full-width track.
func (b *cardBuilder) bar(bar *ImpactBar) {
	lh := b.m.LineHeight(sizeSmall)
	b.lines = append(b.lines,
		Line{Text: bar.Stat().Label, X: b.pad, Y: b.y + lh/2, Size: sizeSmall, Color: bodyColor},
		Line{X: b.width - b.pad, Y: b.y + lh/2, Size: sizeSmall, Align: canvas.AlignRight, Color: bar.Color(), dynamic: bar.Text},
	)
	b.y += lh + 2
	b.bars = append(b.bars, barSlot{bar: bar, bounds: Rect{X: b.pad, Y: b.y, Width: b.inner(), Height: barHeight}})
	b.y += barHeight + lineGap
}

// media reserves a full-width area for an animation or still image.
func (b *cardBuilder) media(m *Media, height float64) {
	if b.pad > 0 {
		m.Bounds = Rect{X: 0, Y: b.y - b.pad, Width: b.width, Height: height}
		b.y += height
	} else {
		m.Bounds = Rect{X: 0, Y: b.y, Width: b.width, Height: height}
		b.y += height + lineGap
	}
	m.resize(m.Bounds.Width, m.Bounds.Height)
}
