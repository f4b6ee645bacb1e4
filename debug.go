package folio

import (
	"time"

	"go.uber.org/zap"
)

// debugEvery is how many ticks pass between debug stat lines.
const debugEvery = 120

// debugStats holds per-tick timing and page counters. Only collected when
// debug mode is on.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	observed   int
	attached   int
	pending    int
}

func (a *App) collectStats() debugStats {
	s := debugStats{
		observed: a.page.Observer().Len(),
		pending:  a.page.Loop().Pending(),
	}
	for _, c := range a.page.media {
		if c.Media.Attached() {
			s.attached++
		}
	}
	return s
}

// debugLog writes the stats at debug level every debugEvery ticks.
func (a *App) debugLog(stats debugStats) {
	if !a.debug || a.ticks%debugEvery != 0 {
		return
	}
	a.log.Debug("frame",
		zap.Duration("update", stats.updateTime),
		zap.Duration("draw", stats.drawTime),
		zap.Int("observed", stats.observed),
		zap.Int("attached", stats.attached),
		zap.Int("pending", stats.pending),
		zap.Float64("scroll", a.scrollY),
	)
}
