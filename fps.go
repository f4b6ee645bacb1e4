package folio

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows the current FPS and TPS in the top-left corner. The text
// is refreshed every half second.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
}

func (f *fpsOverlay) update(dt float64) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.lastUpdate = 0.5
	}
	f.lastUpdate += dt
	if f.lastUpdate < 0.5 {
		return
	}
	f.lastUpdate = 0
	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.img != nil {
		screen.DrawImage(f.img, nil)
	}
}
