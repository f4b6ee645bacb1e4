package canvas

// particle holds per-particle simulation state. Velocities are in pixels per
// frame; life runs from 1 down to 0 at decay per frame.
type particle struct {
	x, y   float64
	vx, vy float64
	life   float64
	decay  float64
	size   float64
	color  Color
}

// particlePool is a fixed-capacity particle set. Dead particles are removed by
// swapping with the last alive one, so iteration order is not stable.
type particlePool struct {
	items   []particle
	alive   int
	gravity float64
}

func newParticlePool(max int) *particlePool {
	if max <= 0 {
		max = 128
	}
	return &particlePool{items: make([]particle, max)}
}

// spawn returns the next free slot, or nil when the pool is full. New
// particles are silently dropped when full.
func (p *particlePool) spawn() *particle {
	if p.alive >= len(p.items) {
		return nil
	}
	pt := &p.items[p.alive]
	*pt = particle{life: 1}
	p.alive++
	return pt
}

// update advances every particle by steps frames.
func (p *particlePool) update(steps float64) {
	i := 0
	for i < p.alive {
		pt := &p.items[i]
		pt.life -= pt.decay * steps
		if pt.life <= 0 {
			p.alive--
			p.items[i] = p.items[p.alive]
			continue
		}
		pt.vy += p.gravity * steps
		pt.x += pt.vx * steps
		pt.y += pt.vy * steps
		i++
	}
}

func (p *particlePool) reset() {
	p.alive = 0
}

func (p *particlePool) render(s Surface) {
	for i := 0; i < p.alive; i++ {
		pt := &p.items[i]
		s.FillCircle(pt.x, pt.y, pt.size, pt.color.WithAlpha(pt.color.A*pt.life))
	}
}
