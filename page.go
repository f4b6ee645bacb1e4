package folio

import (
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/phanxgames/folio/canvas"
	"github.com/phanxgames/folio/content"
	"go.uber.org/zap"
)

// Layout defaults.
const (
	DefaultMediaHeight   = 200.0
	DefaultClosingHeight = 120.0
	MaxContentWidth      = 960.0

	pageMargin    = 24.0
	cardGap       = 16.0
	sectionGap    = 56.0
	headingMargin = 16.0
)

// PageOptions configures NewPage. The zero value is usable.
type PageOptions struct {
	// Seed feeds every animation's generator. Equal seeds replay equal pages.
	Seed uint64
	// Logger receives media failures. Nil discards.
	Logger *zap.Logger
	// NewSurface allocates the surface an animation host paints. Nil uses
	// canvas.NewRaster.
	NewSurface func(w, h int) canvas.Surface
	// Assets resolves local video paths. Nil disables video playback.
	Assets fs.FS

	MediaHeight     float64
	ClosingHeight   float64
	CounterDuration time.Duration
	// Year is printed in the footer. Zero means the current year.
	Year int
}

func (o *PageOptions) defaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.NewSurface == nil {
		o.NewSurface = func(w, h int) canvas.Surface { return canvas.NewRaster(w, h) }
	}
	if o.MediaHeight <= 0 {
		o.MediaHeight = DefaultMediaHeight
	}
	if o.ClosingHeight <= 0 {
		o.ClosingHeight = DefaultClosingHeight
	}
	if o.CounterDuration <= 0 {
		o.CounterDuration = DefaultCounterDuration
	}
	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
}

// Page composes the portfolio into a vertically scrolling column of
// sections. It owns the observer, the frame loop and every animation host;
// all of it is driven from Update on a single goroutine.
type Page struct {
	content *content.Portfolio
	m       Measurer
	opts    PageOptions
	log     *zap.Logger

	sections [sectionCount]*Section
	width    float64
	height   float64

	observer  Observer
	loop      canvas.FrameLoop
	media     []*Card
	teardowns []func()
	closed    bool
}

// NewPage builds every section from p and lays the page out for width. p is
// only read.
func NewPage(p *content.Portfolio, m Measurer, width float64, opts PageOptions) (*Page, error) {
	if p == nil {
		return nil, fmt.Errorf("folio: nil portfolio")
	}
	if m == nil {
		m = FixedMeasurer{}
	}
	opts.defaults()
	pg := &Page{content: p, m: m, opts: opts, log: opts.Logger}
	for id := SectionHero; id < sectionCount; id++ {
		pg.sections[id] = &Section{ID: id}
	}
	pg.buildHero()
	pg.buildSkills()
	pg.buildExperience()
	if err := pg.buildProjects(); err != nil {
		return nil, err
	}
	pg.buildEducation()
	pg.buildCertifications()
	pg.buildVolunteering()
	if err := pg.buildClosing(); err != nil {
		return nil, err
	}
	pg.buildFooter()
	pg.watch()
	pg.Relayout(width)
	return pg, nil
}

func (pg *Page) add(id SectionID, compose func(b *cardBuilder)) *Card {
	s := pg.sections[id]
	c := &Card{Section: id, Index: len(s.Cards), Reveal: NewReveal(len(s.Cards)), compose: compose}
	s.Cards = append(s.Cards, c)
	return c
}

func (pg *Page) newMedia(kind canvas.Kind, still, label string) (*Media, error) {
	seed := pg.opts.Seed + uint64(len(pg.media))
	m, err := newMedia(kind, still, label, pg.opts.NewSurface(0, 0), &pg.loop, seed)
	if err != nil {
		return nil, fmt.Errorf("folio: %s: %w", label, err)
	}
	return m, nil
}

func socialLinks(socials []content.Social) []Link {
	links := make([]Link, 0, len(socials))
	for _, s := range socials {
		links = append(links, Link{Label: s.Name, URL: s.URL})
	}
	return links
}

func (pg *Page) buildHero() {
	p := pg.content
	c := pg.add(SectionHero, func(b *cardBuilder) {
		b.gap(32)
		b.text(p.Name, sizeName, headingColor)
		b.text(p.Title, sizeTitle, linkColor)
		b.gap(8)
		b.text(p.Bio, sizeBody, bodyColor)
		if p.Location != "" {
			b.text(p.Location, sizeSmall, mutedColor)
		}
		b.links(append(socialLinks(p.Socials), Link{Label: p.Email, URL: p.MailTo()}), sizeBody, false)
		b.gap(16)
	})
	c.plain = true
}

func (pg *Page) buildSkills() {
	for _, cat := range pg.content.Skills {
		pg.add(SectionSkills, func(b *cardBuilder) {
			b.text(cat.Category, sizeTitle, headingColor)
			b.text(strings.Join(cat.Items, "  ·  "), sizeBody, bodyColor)
		})
	}
}

func (pg *Page) buildExperience() {
	for _, exp := range pg.content.Experience {
		bars := make([]*ImpactBar, len(exp.Stats))
		for i, st := range exp.Stats {
			bars[i] = NewImpactBar(st)
		}
		c := pg.add(SectionExperience, func(b *cardBuilder) {
			b.text(exp.Role, sizeTitle, headingColor)
			b.text(exp.Company+"  ·  "+exp.Period, sizeSmall, mutedColor)
			b.text(exp.Description, sizeBody, bodyColor)
			for _, d := range exp.Details {
				b.text("• "+d, sizeBody, bodyColor)
			}
			for _, bar := range bars {
				b.bar(bar)
			}
		})
		c.Bars = bars
	}
}

func (pg *Page) buildProjects() error {
	for _, proj := range pg.content.Projects {
		media, err := pg.newMedia(proj.Variant(), proj.StillImage(), proj.Title)
		if err != nil {
			return err
		}
		if proj.Video != "" && pg.opts.Assets != nil {
			media.Video = NewVideoPlayback(proj.Video, pg.opts.Assets, pg.log.With(zap.String("project", proj.Title)))
		}
		counters := make([]*Counter, len(proj.Stats))
		for i, st := range proj.Stats {
			counters[i] = NewCounter(st, pg.opts.CounterDuration)
		}
		var links []Link
		if proj.LiveURL != "" {
			links = append(links, Link{Label: "Live Demo", URL: proj.LiveURL})
		}
		if proj.RepoURL != "" {
			links = append(links, Link{Label: "Code", URL: proj.RepoURL})
		}
		height := pg.opts.MediaHeight
		c := pg.add(SectionProjects, func(b *cardBuilder) {
			b.media(media, height)
			b.gap(12)
			b.text(proj.Title, sizeTitle, headingColor)
			b.text(proj.Description, sizeBody, bodyColor)
			b.text(strings.Join(proj.Tech, "  ·  "), sizeSmall, mutedColor)
			b.counterRow(counters)
			b.links(links, sizeBody, false)
		})
		c.Media = media
		c.Counters = counters
		pg.media = append(pg.media, c)
	}
	return nil
}

func (pg *Page) buildEducation() {
	for _, ed := range pg.content.Education {
		pg.add(SectionEducation, func(b *cardBuilder) {
			b.text(ed.Degree, sizeTitle, headingColor)
			b.text(ed.Institution, sizeBody, bodyColor)
			b.text(ed.Period, sizeSmall, mutedColor)
			if ed.Score != "" {
				b.text(ed.Score, sizeSmall, linkColor)
			}
		})
	}
}

func (pg *Page) buildCertifications() {
	for _, cert := range pg.content.Certifications {
		pg.add(SectionCertifications, func(b *cardBuilder) {
			b.links([]Link{{Label: cert.Name, URL: cert.URL}}, sizeBody, false)
		})
	}
}

func (pg *Page) buildVolunteering() {
	for _, v := range pg.content.Volunteering {
		pg.add(SectionVolunteering, func(b *cardBuilder) {
			b.text(v.Role, sizeTitle, headingColor)
			b.text(v.Organization+"  ·  "+v.Period, sizeSmall, mutedColor)
			b.text(v.Description, sizeBody, bodyColor)
			if v.Category != "" {
				b.text(v.Category, sizeSmall, linkColor)
			}
		})
	}
}

func (pg *Page) buildClosing() error {
	media, err := pg.newMedia(canvas.KindRocket, "", "Thank you")
	if err != nil {
		return err
	}
	height := pg.opts.ClosingHeight
	mail := pg.content.MailTo()
	c := pg.add(SectionClosing, func(b *cardBuilder) {
		b.media(media, height)
		b.gap(16)
		b.centered("Let's Connect", sizeHeading, headingColor)
		b.text("Have a project in mind or just want to say hi? My inbox is always open.", sizeBody, bodyColor)
		b.links([]Link{{Label: "Say Hello", URL: mail}}, sizeTitle, true)
	})
	c.Media = media
	pg.media = append(pg.media, c)
	return nil
}

func (pg *Page) buildFooter() {
	p := pg.content
	year := pg.opts.Year
	c := pg.add(SectionFooter, func(b *cardBuilder) {
		b.gap(16)
		b.links(socialLinks(p.Socials), sizeSmall, true)
		b.centered(fmt.Sprintf("© %d %s. All rights reserved.", year, p.Name), sizeSmall, mutedColor)
		b.gap(16)
	})
	c.plain = true
}

// watch registers every reveal, counter and bar with the observer.
func (pg *Page) watch() {
	for _, s := range pg.sections {
		for _, c := range s.Cards {
			pg.teardowns = append(pg.teardowns, pg.observer.Watch(c.Reveal.Trigger(), func() Rect { return c.Bounds }))
			for i, ctr := range c.Counters {
				pg.teardowns = append(pg.teardowns, pg.observer.Watch(ctr.Trigger(), func() Rect { return c.CounterBounds(i) }))
			}
			for i, bar := range c.Bars {
				pg.teardowns = append(pg.teardowns, pg.observer.Watch(bar.Trigger(), func() Rect { return c.BarBounds(i) }))
			}
		}
	}
}

// Relayout measures every card again for a new page width. Media frames
// resize, which resizes any running animation.
func (pg *Page) Relayout(width float64) {
	pg.width = max(width, 0)
	inner := max(min(pg.width-2*pageMargin, MaxContentWidth), 0)
	x := (pg.width - inner) / 2
	y := 0.0
	for _, s := range pg.sections {
		top := y
		if title := s.ID.Title(); title != "" {
			lh := pg.m.LineHeight(sizeHeading)
			s.titleY = y + lh/2
			y += lh + headingMargin
		}
		for i, c := range s.Cards {
			if i > 0 {
				y += cardGap
			}
			c.layout(pg.m, x, y, inner)
			y += c.Bounds.Height
		}
		s.Bounds = Rect{X: x, Y: top, Width: inner, Height: y - top}
		if s.ID != SectionFooter {
			y += sectionGap
		}
	}
	pg.height = y
}

// Width returns the laid out width.
func (pg *Page) Width() float64 { return pg.width }

// Height returns the total page height.
func (pg *Page) Height() float64 { return pg.height }

// Sections returns the sections in page order.
func (pg *Page) Sections() []*Section { return pg.sections[:] }

// Section returns one section.
func (pg *Page) Section(id SectionID) *Section {
	if id >= sectionCount {
		return nil
	}
	return pg.sections[id]
}

// Cards returns every card in page order.
func (pg *Page) Cards() []*Card {
	var cards []*Card
	for _, s := range pg.sections {
		cards = append(cards, s.Cards...)
	}
	return cards
}

// Observer exposes the page's intersection observer.
func (pg *Page) Observer() *Observer { return &pg.observer }

// Loop exposes the frame loop that drives animation hosts.
func (pg *Page) Loop() *canvas.FrameLoop { return &pg.loop }

// Update advances the page by dt with the viewport given in page coordinates:
// visibility checks, reveals, counters, bars, then every attached animation.
// Hosts attach while their card is within one screen of the viewport.
func (pg *Page) Update(dt time.Duration, viewport Rect) {
	if pg.closed {
		return
	}
	pg.observer.Check(viewport)
	for _, s := range pg.sections {
		for _, c := range s.Cards {
			c.Reveal.Update(dt)
			for _, ctr := range c.Counters {
				ctr.Update(dt)
			}
			for _, bar := range c.Bars {
				bar.Update(dt)
			}
		}
	}
	window := Rect{X: viewport.X, Y: viewport.Y - viewport.Height, Width: viewport.Width, Height: viewport.Height * 3}
	for _, c := range pg.media {
		if c.MediaBounds().Intersects(window) {
			c.Media.attach()
		} else {
			c.Media.detach()
		}
	}
	pg.loop.Run(max(dt.Seconds(), 0))
	for _, c := range pg.media {
		if c.Media.Video != nil {
			c.Media.Video.Update(dt)
		}
	}
}

// Hover moves the pointer to the page point (x, y). Entering a project's
// media area plays its video; leaving rewinds it. inside is false when the
// pointer left the window.
func (pg *Page) Hover(x, y float64, inside bool) {
	for _, c := range pg.media {
		c.Media.hover(inside && c.MediaBounds().Contains(x, y))
	}
}

// LinkAt returns the link under the page point (x, y).
func (pg *Page) LinkAt(x, y float64) (Link, bool) {
	for _, s := range pg.sections {
		if !s.Bounds.Contains(x, y) {
			continue
		}
		for _, c := range s.Cards {
			if !c.Bounds.Contains(x, y) {
				continue
			}
			return c.LinkAt(x, y)
		}
	}
	return Link{}, false
}

// Close stops every animation and unobserves every element.
func (pg *Page) Close() {
	if pg.closed {
		return
	}
	pg.closed = true
	for _, c := range pg.media {
		c.Media.detach()
		c.Media.hover(false)
	}
	for _, td := range pg.teardowns {
		td()
	}
	pg.teardowns = nil
}

// Draw paints the part of the page visible at scrollY onto dst, which is
// the size of the viewport.
func (pg *Page) Draw(dst PageCanvas, scrollY float64) {
	w, h := dst.Size()
	screen := Rect{Y: scrollY, Width: float64(w), Height: float64(h)}
	for _, s := range pg.sections {
		if !s.Bounds.Intersects(screen) {
			continue
		}
		if title := s.ID.Title(); title != "" {
			dst.DrawText(title, s.Bounds.X, s.titleY-scrollY, sizeHeading, canvas.AlignLeft, headingColor)
		}
		for _, c := range s.Cards {
			if c.Bounds.Intersects(screen) {
				pg.drawCard(dst, c, scrollY)
			}
		}
	}
}

func (pg *Page) drawCard(dst PageCanvas, c *Card, scrollY float64) {
	alpha := c.Reveal.Alpha()
	if alpha <= 0 {
		return
	}
	x := c.Bounds.X
	y := c.Bounds.Y - scrollY + c.Reveal.Offset()
	if !c.plain {
		dst.FillPolygon(canvas.RoundRect(x, y, c.Bounds.Width, c.Bounds.Height, 12), cardBackground.WithAlpha(alpha))
	}
	if c.Media != nil {
		c.Media.draw(dst, x+c.Media.Bounds.X, y+c.Media.Bounds.Y, alpha)
	}
	for _, slot := range c.barSlots {
		r := slot.bounds
		dst.FillRect(x+r.X, y+r.Y, r.Width, r.Height, trackColor.WithAlpha(alpha))
		if fw := r.Width * slot.bar.Fraction(); fw > 0 {
			dst.FillRect(x+r.X, y+r.Y, fw, r.Height, slot.bar.Color().WithAlpha(alpha))
		}
	}
	for _, l := range c.Lines {
		col := l.Color.WithAlpha(l.Color.A * alpha)
		dst.DrawText(l.String(), x+l.X, y+l.Y, l.Size, l.Align, col)
	}
}
