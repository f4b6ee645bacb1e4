package folio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"testing/fstest"
	"time"

	"github.com/phanxgames/folio/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// clipGIF encodes a 3-frame 4x4 GIF with 50ms frames.
func clipGIF(t *testing.T) []byte {
	t.Helper()
	pal := color.Palette{color.Black, color.White, color.NRGBA{R: 255, A: 255}}
	g := &gif.GIF{}
	for i := 0; i < 3; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
		for p := range frame.Pix {
			frame.Pix[p] = uint8(i)
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 5)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

func TestVideoPlayback(t *testing.T) {
	assets := fstest.MapFS{"media/clip.gif": {Data: clipGIF(t)}}
	v := NewVideoPlayback("/media/clip.gif", assets, nil)
	assert.Nil(t, v.Current())
	assert.Equal(t, "Paused", v.Indicator())

	v.Play()
	require.True(t, v.Playing())
	assert.False(t, v.Failed())
	assert.Equal(t, 3, v.Frames())
	assert.Equal(t, "Playing", v.Indicator())

	v.Update(49 * time.Millisecond)
	assert.Equal(t, 0, v.Index())
	v.Update(time.Millisecond)
	assert.Equal(t, 1, v.Index())
	v.Update(100 * time.Millisecond)
	assert.Equal(t, 0, v.Index(), "playback loops")
	v.Update(60 * time.Millisecond)
	assert.Equal(t, 1, v.Index())

	r, _, _, _ := v.Current().At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r, "second frame is white")

	v.Pause()
	assert.False(t, v.Playing())
	assert.Equal(t, 0, v.Index(), "pausing rewinds")
	v.Update(time.Second)
	assert.Equal(t, 0, v.Index())
}

func TestVideoPlaybackFailuresAreSwallowed(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		assets fstest.MapFS
	}{
		{"missing", "nope.gif", fstest.MapFS{}},
		{"undecodable", "bad.gif", fstest.MapFS{"bad.gif": {Data: []byte("not a gif")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			v := NewVideoPlayback(tt.src, tt.assets, zap.New(core))

			assert.NotPanics(t, v.Play)
			assert.False(t, v.Playing())
			assert.True(t, v.Failed())
			v.Play()
			v.Update(time.Second)

			entries := logs.FilterMessage("video playback failed").All()
			require.Len(t, entries, 1, "failure is logged once")
			assert.Equal(t, tt.src, entries[0].ContextMap()["src"])
		})
	}
}

func TestVideoPlaybackNoSource(t *testing.T) {
	v := NewVideoPlayback("", fstest.MapFS{}, nil)
	assert.True(t, errors.Is(v.Load(), ErrNoVideo))
	assert.Error(t, NewVideoPlayback("a.gif", nil, nil).Load())
}

func TestPageHoverPlaysVideo(t *testing.T) {
	p := &content.Portfolio{
		Name: "A", Title: "B", Email: "a@example.com",
		Projects: []content.Project{
			{Title: "Clip", Video: "clip.gif", Poster: "poster.png"},
			{Title: "Broken", Video: "missing.gif"},
		},
	}
	core, logs := observer.New(zapcore.WarnLevel)
	pg, err := NewPage(p, FixedMeasurer{}, 800, PageOptions{
		Assets: fstest.MapFS{"clip.gif": {Data: clipGIF(t)}},
		Logger: zap.New(core),
	})
	require.NoError(t, err)
	defer pg.Close()

	cards := pg.Section(SectionProjects).Cards
	clip, broken := cards[0].Media, cards[1].Media
	require.NotNil(t, clip.Video)

	r := cards[0].MediaBounds()
	pg.Hover(r.X+10, r.Y+10, true)
	assert.True(t, clip.Hovered())
	assert.True(t, clip.Video.Playing())

	pg.Update(120*time.Millisecond, Rect{Y: r.Y, Width: 800, Height: 600})
	assert.Equal(t, 2, clip.Video.Index())

	rc := newRecordingCanvas(800, 600)
	pg.Draw(rc, r.Y)
	for i := 0; i < 60; i++ {
		pg.Update(tick, Rect{Y: r.Y, Width: 800, Height: 600})
	}
	pg.Draw(rc, r.Y)
	assert.Positive(t, rc.images, "a playing clip draws its frame")
	assert.Contains(t, rc.Texts(), "Playing")

	pg.Hover(r.X+10, r.Y-50, true)
	assert.False(t, clip.Hovered())
	assert.False(t, clip.Video.Playing())
	assert.Equal(t, 0, clip.Video.Index())

	br := cards[1].MediaBounds()
	pg.Hover(br.X+10, br.Y+10, true)
	assert.True(t, broken.Hovered())
	assert.False(t, broken.Video.Playing())
	assert.Equal(t, 1, logs.Len())

	pg.Hover(br.X+10, br.Y+10, false)
	assert.False(t, broken.Hovered(), "leaving the window leaves every card")
}

func TestPageWithoutAssetsHasNoVideo(t *testing.T) {
	p := &content.Portfolio{Name: "A", Title: "B", Email: "a@example.com",
		Projects: []content.Project{{Title: "Clip", Video: "clip.gif"}}}
	pg, err := NewPage(p, FixedMeasurer{}, 800, PageOptions{})
	require.NoError(t, err)
	defer pg.Close()
	assert.Nil(t, pg.Section(SectionProjects).Cards[0].Media.Video)
}
