package folio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/phanxgames/folio/canvas"
	"go.uber.org/zap"
)

// ErrNoVideo is returned by Load for a playback without a source path.
var ErrNoVideo = errors.New("folio: no video source")

// gifDelayUnit is the GIF frame delay resolution.
const gifDelayUnit = 10 * time.Millisecond

// defaultFrameDelay replaces zero delays, matching common browser behavior.
const defaultFrameDelay = 100 * time.Millisecond

// VideoPlayback is a looping, muted clip decoded from an animated GIF. It
// plays while the pointer is over its card and rewinds when the pointer
// leaves. Load failures are logged and leave the clip on its poster.
type VideoPlayback struct {
	src    string
	assets fs.FS
	log    *zap.Logger

	frames []*image.RGBA
	delays []time.Duration
	loaded bool
	failed bool

	playing bool
	index   int
	elapsed time.Duration
}

// NewVideoPlayback prepares playback for the GIF at src inside assets. The
// file is not read until the first Play.
func NewVideoPlayback(src string, assets fs.FS, log *zap.Logger) *VideoPlayback {
	if log == nil {
		log = zap.NewNop()
	}
	return &VideoPlayback{src: src, assets: assets, log: log}
}

// Source returns the clip path.
func (v *VideoPlayback) Source() string { return v.src }

// Load decodes the clip and composes every frame onto a full canvas.
func (v *VideoPlayback) Load() error {
	if v.src == "" {
		return ErrNoVideo
	}
	if v.assets == nil {
		return fmt.Errorf("folio: load %s: no asset filesystem", v.src)
	}
	f, err := v.assets.Open(strings.TrimPrefix(path.Clean(v.src), "/"))
	if err != nil {
		return fmt.Errorf("folio: load %s: %w", v.src, err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		return fmt.Errorf("folio: decode %s: %w", v.src, err)
	}
	if len(g.Image) == 0 {
		return fmt.Errorf("folio: decode %s: no frames", v.src)
	}
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	acc := image.NewRGBA(bounds)
	v.frames = make([]*image.RGBA, len(g.Image))
	v.delays = make([]time.Duration, len(g.Image))
	for i, frame := range g.Image {
		draw.Draw(acc, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		snap := image.NewRGBA(bounds)
		copy(snap.Pix, acc.Pix)
		v.frames[i] = snap
		d := defaultFrameDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			d = time.Duration(g.Delay[i]) * gifDelayUnit
		}
		v.delays[i] = d
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
			draw.Draw(acc, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		}
	}
	v.loaded = true
	return nil
}

// Play starts playback, loading the clip on first use. A clip that cannot be
// loaded is logged once and never plays.
func (v *VideoPlayback) Play() {
	if v.failed {
		return
	}
	if !v.loaded {
		if err := v.Load(); err != nil {
			v.failed = true
			v.log.Warn("video playback failed", zap.String("src", v.src), zap.Error(err))
			return
		}
	}
	v.playing = true
}

// Pause stops playback and rewinds to the first frame.
func (v *VideoPlayback) Pause() {
	v.playing = false
	v.index = 0
	v.elapsed = 0
}

// Playing reports whether the clip is advancing.
func (v *VideoPlayback) Playing() bool { return v.playing }

// Failed reports whether loading the clip failed.
func (v *VideoPlayback) Failed() bool { return v.failed }

// Index returns the current frame number.
func (v *VideoPlayback) Index() int { return v.index }

// Frames returns the number of decoded frames.
func (v *VideoPlayback) Frames() int { return len(v.frames) }

// Update advances a playing clip, looping at the end.
func (v *VideoPlayback) Update(dt time.Duration) {
	if !v.playing || len(v.frames) == 0 || dt <= 0 {
		return
	}
	v.elapsed += dt
	for v.elapsed >= v.delays[v.index] {
		v.elapsed -= v.delays[v.index]
		v.index = (v.index + 1) % len(v.frames)
	}
}

// Current returns the frame to show, nil before the clip is loaded.
func (v *VideoPlayback) Current() image.Image {
	if len(v.frames) == 0 {
		return nil
	}
	return v.frames[v.index]
}

// Indicator is the status label shown over the clip.
func (v *VideoPlayback) Indicator() string {
	if v.playing {
		return "Playing"
	}
	return "Paused"
}

// Media is a project card's visual: one animation host, or the static
// fallback when the project maps to no animation. Bounds are relative to the
// owning card.
type Media struct {
	Kind   canvas.Kind
	Still  string
	Label  string
	Bounds Rect
	Video  *VideoPlayback

	frame    *canvas.Frame
	host     *canvas.Host
	attached bool
	hovered  bool
}

func newMedia(kind canvas.Kind, still, label string, surface canvas.Surface, sched canvas.Scheduler, seed uint64) (*Media, error) {
	m := &Media{Kind: kind, Still: still, Label: label, frame: canvas.NewFrame(0, 0)}
	if kind == canvas.KindNone {
		return m, nil
	}
	host, err := canvas.NewHost(kind, surface, sched, seed)
	if err != nil {
		return nil, err
	}
	m.host = host
	return m, nil
}

// Host returns the animation host, nil for the static fallback.
func (m *Media) Host() *canvas.Host { return m.host }

// Attached reports whether the animation is currently running.
func (m *Media) Attached() bool { return m.attached }

// Hovered reports whether the pointer is over the media area.
func (m *Media) Hovered() bool { return m.hovered }

func (m *Media) resize(w, h float64) {
	m.frame.SetSize(int(w), int(h))
}

func (m *Media) attach() {
	if m.attached || m.host == nil {
		return
	}
	m.attached = true
	m.host.Start(m.frame)
}

func (m *Media) detach() {
	if !m.attached {
		return
	}
	m.attached = false
	m.host.Stop()
}

// hover reports pointer enter and leave transitions to the video.
func (m *Media) hover(inside bool) {
	if inside == m.hovered {
		return
	}
	m.hovered = inside
	if m.Video == nil {
		return
	}
	if inside {
		m.Video.Play()
	} else {
		m.Video.Pause()
	}
}

var placeholderPanel = canvas.Hex("#1a1a2e")

// placeholderText returns the caption for a still image that is not fetched,
// preferring the placeholder service's text parameter.
func placeholderText(still, fallback string) string {
	if u, err := url.Parse(still); err == nil {
		if t := u.Query().Get("text"); t != "" {
			return t
		}
	}
	return fallback
}

func (m *Media) draw(dst PageCanvas, x, y, alpha float64) {
	w, h := m.Bounds.Width, m.Bounds.Height
	if w <= 0 || h <= 0 {
		return
	}
	if m.Video != nil && m.Video.Playing() {
		dst.DrawImage(m.Video.Current(), x, y, w, h)
		dst.DrawText(m.Video.Indicator(), x+w-8, y+14, 12, canvas.AlignRight, canvas.RGBA(255, 255, 255, 0.8))
		return
	}
	if m.host != nil && m.attached {
		dst.DrawSurface(m.host.Surface(), x, y, alpha)
		return
	}
	dst.FillRect(x, y, w, h, placeholderPanel.WithAlpha(alpha))
	dst.DrawText(placeholderText(m.Still, m.Label), x+w/2, y+h/2, 16, canvas.AlignCenter, canvas.RGBA(255, 255, 255, 0.7*alpha))
	if m.Video != nil {
		dst.DrawText(m.Video.Indicator(), x+w-8, y+14, 12, canvas.AlignRight, canvas.RGBA(255, 255, 255, 0.8*alpha))
	}
}
