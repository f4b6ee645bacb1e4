package folio

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/folio/canvas"
	"github.com/phanxgames/folio/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInput replays a fixed device state.
type fakeInput struct {
	state      pointerInput
	linkCursor bool
}

func (f *fakeInput) read(w, h int) pointerInput {
	in := f.state
	f.state.scroll = 0
	f.state.jump = 0
	return in
}

func (f *fakeInput) setCursor(link bool) { f.linkCursor = link }

func newTestApp(t *testing.T, p *content.Portfolio, opts AppOptions) (*App, *fakeInput) {
	t.Helper()
	if p == nil {
		var err error
		p, err = content.Default()
		require.NoError(t, err)
	}
	opts.NewSurface = func(w, h int) canvas.Surface { return canvas.NewRecorder(w, h) }
	if opts.Width == 0 {
		opts.Width, opts.Height = 1024, 768
	}
	a, err := NewApp(p, opts)
	require.NoError(t, err)
	in := &fakeInput{state: pointerInput{x: -1, y: -1}}
	a.input = in
	t.Cleanup(a.Close)
	return a, in
}

func settle(t *testing.T, a *App, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, a.Update())
	}
}

func TestAppScroll(t *testing.T) {
	a, in := newTestApp(t, nil, AppOptions{})
	in.state.scroll = 300
	settle(t, a, 60)
	assert.Equal(t, 300.0, a.ScrollY())

	a.ScrollTo(-100)
	settle(t, a, 60)
	assert.Equal(t, 0.0, a.ScrollY())

	in.state.jump = 1
	settle(t, a, 60)
	assert.Equal(t, a.Page().Height()-768, a.ScrollY())
	assert.True(t, a.Page().Section(SectionFooter).Cards[0].Reveal.Trigger().Visible())

	a.ScrollBy(1e9)
	settle(t, a, 5)
	assert.Equal(t, a.maxScroll(), a.ScrollY(), "scroll is clamped to the page")
}

func TestAppInjectScroll(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{})
	a.InjectScroll(200)
	a.InjectScroll(200)
	settle(t, a, 60)
	assert.Equal(t, 400.0, a.ScrollY())
	assert.Empty(t, a.injectQueue)
}

func heroLink(t *testing.T, a *App, url string) (float64, float64) {
	t.Helper()
	hero := a.Page().Section(SectionHero).Cards[0]
	for _, l := range hero.Links {
		if l.URL == url {
			r := l.Bounds.Translate(hero.Bounds.X, hero.Bounds.Y)
			return r.X + r.Width/2, r.Y + r.Height/2
		}
	}
	t.Fatalf("no hero link %s", url)
	return 0, 0
}

func TestAppClickOpensLink(t *testing.T) {
	var opened []string
	opener := OpenerFunc(func(ctx context.Context, link string) error {
		opened = append(opened, link)
		return nil
	})
	a, in := newTestApp(t, nil, AppOptions{Opener: opener})
	mail := a.Page().content.MailTo()
	x, y := heroLink(t, a, mail)

	a.InjectMove(x, y)
	settle(t, a, 1)
	assert.True(t, in.linkCursor, "pointer cursor over links")

	a.InjectClick(x, y)
	settle(t, a, 2)
	assert.Equal(t, []string{mail}, opened)
	assert.Equal(t, []string{mail}, a.Opened())

	a.InjectMove(-5, -5)
	settle(t, a, 1)
	assert.False(t, in.linkCursor)
}

func TestAppClickRequiresPressAndReleaseOnLink(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{})
	x, y := heroLink(t, a, a.Page().content.MailTo())
	a.InjectPress(x, y)
	a.InjectRelease(1000, 700)
	a.InjectPress(1000, 700)
	a.InjectRelease(x, y)
	settle(t, a, 4)
	assert.Empty(t, a.Opened())
}

func TestAppPlaceholderLinksAreIgnored(t *testing.T) {
	p := &content.Portfolio{
		Name: "A", Title: "B", Email: "a@example.com",
		Socials: []content.Social{{Name: "soon", URL: "#"}},
	}
	called := false
	a, _ := newTestApp(t, p, AppOptions{Opener: OpenerFunc(func(context.Context, string) error {
		called = true
		return nil
	})})
	x, y := heroLink(t, a, "#")
	a.InjectClick(x, y)
	settle(t, a, 2)
	assert.False(t, called)
	assert.Empty(t, a.Opened())
}

func TestAppOpenerErrorIsLogged(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{Opener: OpenerFunc(func(context.Context, string) error {
		return errors.New("no browser")
	})})
	x, y := heroLink(t, a, a.Page().content.MailTo())
	a.InjectClick(x, y)
	assert.NotPanics(t, func() { settle(t, a, 2) })
	assert.Len(t, a.Opened(), 1)
}

func TestAppResize(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{})
	w, h := a.Layout(1024, 768)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	a.ScrollTo(1e9)
	settle(t, a, 60)
	tall := a.Page().Height()

	a.Layout(1600, 900)
	assert.Equal(t, 1600.0, a.Page().Width())
	assert.LessOrEqual(t, a.Page().Height(), tall)
	assert.LessOrEqual(t, a.ScrollY(), a.maxScroll())
}

func TestAppBackground(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{Background: true})
	require.NotNil(t, a.background)
	settle(t, a, 3)
	assert.True(t, a.background.Running())
	assert.Equal(t, 3, a.background.Ticks())

	a.Layout(800, 600)
	w, h := a.background.Surface().Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	a.Close()
	assert.False(t, a.background.Running())
}

func TestAppTestRunner(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{ExitWhenDone: true})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "scroll", "dy": 500},
		{"action": "wait", "frames": 30},
		{"action": "scrollTo", "y": 0},
		{"action": "wait", "frames": 30}
	]}`))
	require.NoError(t, err)
	a.SetTestRunner(runner)

	var end error
	for i := 0; i < 200 && end == nil; i++ {
		end = a.Update()
		if i == 20 {
			assert.Greater(t, a.ScrollY(), 0.0)
		}
	}
	assert.True(t, runner.Done())
	assert.ErrorIs(t, end, ebiten.Termination)
	assert.Equal(t, 0.0, a.ScrollY())
}

func TestAppTestRunnerWaitsForScreenshots(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{ExitWhenDone: true})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "top"}]}`))
	require.NoError(t, err)
	a.SetTestRunner(runner)

	require.NoError(t, a.Update())
	assert.Equal(t, []string{"top"}, a.screenshotQueue)
	assert.NoError(t, a.Update(), "queued screenshots hold the loop open until Draw")

	a.screenshotQueue = a.screenshotQueue[:0]
	assert.ErrorIs(t, a.Update(), ebiten.Termination)
}

func TestAppDebugStats(t *testing.T) {
	a, _ := newTestApp(t, nil, AppOptions{Debug: true})
	settle(t, a, 2)
	assert.Positive(t, a.stats.observed)
	assert.Positive(t, a.stats.updateTime)
}
