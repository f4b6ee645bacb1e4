package folio

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Scrolling.
const (
	wheelStep     = 48.0 // pixels per wheel notch
	arrowStep     = 12.0 // pixels per tick while an arrow key is held
	pageFraction  = 0.9  // share of the window moved by PageUp/PageDown
	scrollEasing  = 0.3  // share of the remaining distance covered per tick
	scrollSnapMin = 0.5
)

// pointerInput is one tick's worth of pointer and scroll input in window
// coordinates.
type pointerInput struct {
	x, y    float64
	inside  bool
	pressed bool
	// scroll is a relative scroll in pixels, positive toward the page end.
	scroll float64
	// jump, when set, scrolls to the top (-1) or the end (+1).
	jump int
}

// inputReader polls the device state once per tick.
type inputReader interface {
	read(w, h int) pointerInput
	setCursor(link bool)
}

// ebitenInput reads the mouse, the wheel and the keyboard through Ebitengine.
type ebitenInput struct {
	linkCursor bool
}

func (e *ebitenInput) read(w, h int) pointerInput {
	mx, my := ebiten.CursorPosition()
	in := pointerInput{
		x:       float64(mx),
		y:       float64(my),
		inside:  mx >= 0 && my >= 0 && mx < w && my < h,
		pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	_, wy := ebiten.Wheel()
	in.scroll -= wy * wheelStep
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.scroll += arrowStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.scroll -= arrowStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.scroll += float64(h) * pageFraction
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		in.scroll -= float64(h) * pageFraction
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		in.jump = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		in.jump = 1
	}
	return in
}

func (e *ebitenInput) setCursor(link bool) {
	if link == e.linkCursor {
		return
	}
	e.linkCursor = link
	if link {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// pointerState tracks the pointer between ticks to detect clicks.
type pointerState struct {
	down      bool
	pressLink Link
	pressHit  bool
	lastX     float64
	lastY     float64
	inside    bool
}

// processInput applies one tick of input: scrolling, hover and clicks.
// Injected events take precedence over the device for the tick.
func (a *App) processInput() {
	in, ok := a.popInjected()
	if !ok {
		in = a.input.read(a.width, a.height)
	}
	switch {
	case in.jump < 0:
		a.ScrollTo(0)
	case in.jump > 0:
		a.ScrollTo(a.maxScroll())
	case in.scroll != 0:
		a.ScrollBy(in.scroll)
	}
	a.processPointer(in)
}

func (a *App) processPointer(in pointerInput) {
	p := &a.pointer
	p.lastX, p.lastY, p.inside = in.x, in.y, in.inside
	px, py := in.x, in.y+a.scrollY
	a.page.Hover(px, py, in.inside)

	link, onLink := Link{}, false
	if in.inside {
		link, onLink = a.page.LinkAt(px, py)
	}
	a.input.setCursor(onLink)

	switch {
	case in.pressed && !p.down:
		p.down = true
		p.pressLink, p.pressHit = link, onLink
	case !in.pressed && p.down:
		p.down = false
		if p.pressHit && onLink && link.URL == p.pressLink.URL {
			a.follow(link)
		}
		p.pressHit = false
	}
}

// follow hands a clicked link to the opener. Placeholder links do nothing.
func (a *App) follow(l Link) {
	if err := checkOutbound(l.URL); err != nil {
		a.log.Debug("link ignored", zap.String("label", l.Label), zap.Error(err))
		return
	}
	a.opened = append(a.opened, l.URL)
	if a.opener == nil {
		return
	}
	if err := a.opener.Open(context.Background(), l.URL); err != nil {
		a.log.Warn("open link", zap.String("url", l.URL), zap.Error(err))
	}
}
