package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio/canvas"
	"github.com/phanxgames/folio/content"
	"go.uber.org/zap"
)

// Window defaults.
const (
	DefaultWidth         = 1280
	DefaultHeight        = 800
	DefaultTitle         = "folio"
	DefaultScreenshotDir = "screenshots"

	backgroundAlpha = 0.35
)

// AppOptions configures NewApp. The zero value is usable once Ebitengine
// is running.
type AppOptions struct {
	Width, Height int
	// TPS is the tick rate Update assumes. Zero means ebiten.DefaultTPS.
	TPS    int
	Seed   uint64
	Logger *zap.Logger
	// Opener receives clicked links. Nil records them without opening.
	Opener Opener
	// Fonts renders text. Nil loads the bundled Go Regular font.
	Fonts  *FontSet
	Assets fs.FS
	// NewSurface allocates animation surfaces. Nil uses Ebitengine images.
	NewSurface    func(w, h int) canvas.Surface
	ScreenshotDir string
	Debug         bool
	ShowFPS       bool
	// Background enables the drifting instruments behind the page.
	Background bool
	// ExitWhenDone ends the game loop once an attached test script finishes.
	ExitWhenDone bool
}

// App runs the portfolio page as an Ebitengine game: one scrolling column
// of sections over an optional animated background.
type App struct {
	page   *Page
	fonts  *FontSet
	log    *zap.Logger
	opener Opener
	input  inputReader

	width, height int
	tps           int
	ticks         int

	scrollY      float64
	scrollTarget float64
	pointer      pointerState
	opened       []string

	background      *canvas.Host
	backgroundFrame *canvas.Frame
	screen          *ImageSurface

	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
	screenshotDir   string

	debug        bool
	showFPS      bool
	exitWhenDone bool
	fps          fpsOverlay
	stats        debugStats
}

// NewApp builds the page for p and wires it to Ebitengine input.
func NewApp(p *content.Portfolio, opts AppOptions) (*App, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = DefaultScreenshotDir
	}
	var m Measurer = FixedMeasurer{}
	if opts.Fonts != nil {
		m = opts.Fonts
	} else if opts.NewSurface == nil {
		fonts, err := DefaultFontSet()
		if err != nil {
			return nil, err
		}
		opts.Fonts, m = fonts, fonts
	}
	if opts.NewSurface == nil {
		fonts := opts.Fonts
		opts.NewSurface = func(w, h int) canvas.Surface { return NewImageSurface(w, h, fonts) }
	}

	page, err := NewPage(p, m, float64(opts.Width), PageOptions{
		Seed:       opts.Seed,
		Logger:     opts.Logger,
		NewSurface: opts.NewSurface,
		Assets:     opts.Assets,
	})
	if err != nil {
		return nil, err
	}
	a := &App{
		page:          page,
		fonts:         opts.Fonts,
		log:           opts.Logger,
		opener:        opts.Opener,
		input:         &ebitenInput{},
		width:         opts.Width,
		height:        opts.Height,
		tps:           opts.TPS,
		screenshotDir: opts.ScreenshotDir,
		debug:         opts.Debug,
		showFPS:       opts.ShowFPS,
		exitWhenDone:  opts.ExitWhenDone,
	}
	if opts.Background {
		a.backgroundFrame = canvas.NewFrame(a.width, a.height)
		a.background, err = canvas.NewHost(canvas.KindInstruments, opts.NewSurface(0, 0), page.Loop(), opts.Seed)
		if err != nil {
			return nil, fmt.Errorf("folio: background: %w", err)
		}
		a.background.Start(a.backgroundFrame)
	}
	return a, nil
}

// Page returns the composed page.
func (a *App) Page() *Page { return a.page }

// ScrollY returns the current scroll offset.
func (a *App) ScrollY() float64 { return a.scrollY }

// Opened returns every link followed so far, in click order.
func (a *App) Opened() []string { return a.opened }

// Viewport returns the visible page rectangle.
func (a *App) Viewport() Rect {
	return Rect{Y: a.scrollY, Width: float64(a.width), Height: float64(a.height)}
}

func (a *App) maxScroll() float64 {
	return max(a.page.Height()-float64(a.height), 0)
}

// ScrollBy moves the scroll target by dy pixels.
func (a *App) ScrollBy(dy float64) { a.ScrollTo(a.scrollTarget + dy) }

// ScrollTo sets the scroll target; the view eases toward it.
func (a *App) ScrollTo(y float64) {
	a.scrollTarget = min(max(y, 0), a.maxScroll())
}

func (a *App) easeScroll() {
	d := a.scrollTarget - a.scrollY
	if d > -scrollSnapMin && d < scrollSnapMin {
		a.scrollY = a.scrollTarget
		return
	}
	a.scrollY += d * scrollEasing
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}
	if a.testRunner != nil {
		a.testRunner.step(a)
		if a.exitWhenDone && a.testRunner.Done() && len(a.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	a.processInput()
	a.easeScroll()

	dt := time.Second / time.Duration(a.tps)
	a.page.Update(dt, a.Viewport())
	a.ticks++

	if a.debug {
		a.stats = a.collectStats()
		a.stats.updateTime = time.Since(t0)
		a.debugLog(a.stats)
	}
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}
	screen.Fill(pageBackground.NRGBA())
	if a.screen == nil {
		a.screen = WrapImage(screen, a.fonts)
	} else {
		a.screen.SetTarget(screen)
	}
	if a.background != nil {
		a.screen.DrawSurface(a.background.Surface(), 0, 0, backgroundAlpha)
	}
	a.page.Draw(a.screen, a.scrollY)
	a.drawScrollbar()
	if a.showFPS {
		a.fps.update(1 / float64(a.tps))
		a.fps.draw(screen)
	}
	a.flushScreenshots(screen)
	if a.debug {
		a.stats.drawTime = time.Since(t0)
	}
}

func (a *App) drawScrollbar() {
	total := a.page.Height()
	h := float64(a.height)
	if total <= h {
		return
	}
	thumb := max(h*h/total, 24)
	y := (h - thumb) * a.scrollY / a.maxScroll()
	a.screen.FillRect(float64(a.width)-6, y, 4, thumb, mutedColor.WithAlpha(0.6))
}

// Layout implements ebiten.Game. A new window size relays the page out.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.Resize(outsideWidth, outsideHeight)
	}
	return a.width, a.height
}

// Resize lays the page out for a new window size.
func (a *App) Resize(w, h int) {
	a.width, a.height = max(w, 0), max(h, 0)
	if a.page.Width() != float64(a.width) {
		a.page.Relayout(float64(a.width))
	}
	if a.backgroundFrame != nil {
		a.backgroundFrame.SetSize(a.width, a.height)
	}
	a.ScrollTo(a.scrollTarget)
	a.scrollY = min(a.scrollY, a.maxScroll())
}

// Close stops every animation.
func (a *App) Close() {
	if a.background != nil {
		a.background.Stop()
	}
	a.page.Close()
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	TPS       int
	Resizable bool
}

// Run opens a window and blocks until it is closed or the attached test
// script finishes with ExitWhenDone.
func Run(a *App, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.Width <= 0 {
		cfg.Width = a.width
	}
	if cfg.Height <= 0 {
		cfg.Height = a.height
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
		a.tps = cfg.TPS
	}
	defer a.Close()
	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("folio: run: %w", err)
	}
	return nil
}
