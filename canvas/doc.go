// Package canvas holds folio's decorative animations and the small amount of
// machinery needed to drive them.
//
// An [Animation] owns its own simulated state (particles, oscillator phase,
// staged narrative) and paints a [Surface] once per tick. A [Host] binds one
// animation to a surface, a [Container] that reports its size, and a
// [Scheduler] that delivers display ticks:
//
//	loop := &canvas.FrameLoop{}
//	frame := canvas.NewFrame(600, 200)
//	host, err := canvas.NewHost(canvas.KindScan, canvas.NewRaster(0, 0), loop, 1)
//	if err != nil {
//		return err
//	}
//	host.Start(frame)
//	defer host.Stop()
//	for i := 0; i < 60; i++ {
//		loop.Run(1.0 / 60)
//	}
//
// Three surfaces exist: the Ebitengine-backed ImageSurface in the root folio
// package, [Raster] for headless PNG output, and [Recorder], which records
// every drawing call for tests.
//
// Variants are selected with an explicit [Kind]. [KindForTitle] keeps the
// keyword table used by older content files that have no visual tag.
package canvas
