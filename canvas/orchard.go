package canvas

import (
	"math"
	"math/rand/v2"
)

// orchardStage is one step of the harvest story.
type orchardStage uint8

const (
	stageGrowing orchardStage = iota
	stageBlooming
	stageShaking
	stageFalling
	stageCollecting
	stageReset
)

var orchardStageNames = [...]string{"growing", "blooming", "shaking", "falling", "collecting", "reset"}

func (s orchardStage) String() string {
	if int(s) < len(orchardStageNames) {
		return orchardStageNames[s]
	}
	return "unknown"
}

// Frame budgets for the timed stages.
const (
	growFrames    = 90
	bloomFrames   = 60
	shakeFrames   = 40
	collectFrames = 60
	fruitCount    = 7
	fruitGravity  = 0.3
	restitution   = 0.4
	restSpeed     = 0.5
)

var (
	orchardSky    = Hex("#0d1b2a")
	orchardGround = Hex("#2e4a1f")
	orchardTrunk  = Hex("#5d4037")
	orchardLeaves = Hex("#2e7d32")
	orchardFruit  = Hex("#e53935")
	orchardPetal  = RGBA(255, 182, 193, 0.9)
	orchardBasket = Hex("#a1887f")
)

type fruit struct {
	hx, hy float64 // hanging position relative to the canopy center
	x, y   float64
	vy     float64
	rested bool
}

// orchard grows a tree, blossoms, shakes the fruit loose, lets it fall and
// bounce under gravity, gathers it into a basket and starts over.
type orchard struct {
	w, h    float64
	rng     *rand.Rand
	stage   orchardStage
	clock   float64 // frames spent in the current stage
	growth  float64 // 0..1 canopy scale
	shake   float64
	fruits  []fruit
	petals  *particlePool
	harvest int
}

func (a *orchard) Init(w, h int, rng *rand.Rand) {
	a.rng = rng
	if a.petals == nil {
		a.petals = newParticlePool(96)
	}
	a.petals.gravity = 0.02
	a.harvest = 0
	a.Resize(w, h)
	a.restart()
}

// Resize re-measures the scene; the story keeps its stage and timing.
func (a *orchard) Resize(w, h int) { a.w, a.h = float64(w), float64(h) }

func (a *orchard) restart() {
	a.stage = stageGrowing
	a.clock = 0
	a.growth = 0
	a.shake = 0
	a.petals.reset()
	a.fruits = a.fruits[:0]
	for i := 0; i < fruitCount; i++ {
		ang := a.rng.Float64() * 2 * math.Pi
		d := math.Sqrt(a.rng.Float64()) * 0.8
		a.fruits = append(a.fruits, fruit{hx: math.Cos(ang) * d, hy: math.Sin(ang) * d * 0.7})
	}
}

func (a *orchard) ground() float64 { return a.h * 0.85 }

func (a *orchard) canopy() (cx, cy, r float64) {
	r = math.Min(a.w, a.h) * 0.25 * a.growth
	return a.w/2 + a.shake, a.ground() - a.h*0.45, r
}

func (a *orchard) basket() (x, y, w float64) {
	return a.w*0.8 - 20, a.ground() - 18, 40
}

func (a *orchard) Advance(dt float64) {
	steps := frames(dt)
	a.clock += steps
	a.petals.update(steps)
	switch a.stage {
	case stageGrowing:
		a.growth = clamp(a.clock/growFrames, 0, 1)
		if a.clock >= growFrames {
			a.next(stageBlooming)
		}
	case stageBlooming:
		a.bloom(steps)
		if a.clock >= bloomFrames {
			a.next(stageShaking)
		}
	case stageShaking:
		a.shake = math.Sin(a.clock*0.8) * 6
		if a.clock >= shakeFrames {
			a.shake = 0
			a.drop()
			a.next(stageFalling)
		}
	case stageFalling:
		if a.fall(steps) {
			a.next(stageCollecting)
		}
	case stageCollecting:
		t := clamp(a.clock/collectFrames, 0, 1)
		bx, by, bw := a.basket()
		for i := range a.fruits {
			f := &a.fruits[i]
			f.x = lerp(f.x, bx+bw/2, t)
			f.y = lerp(f.y, by, t)
		}
		if a.clock >= collectFrames {
			a.harvest += len(a.fruits)
			a.next(stageReset)
		}
	case stageReset:
		a.restart()
	}
}

func (a *orchard) next(s orchardStage) {
	a.stage = s
	a.clock = 0
}

func (a *orchard) bloom(steps float64) {
	cx, cy, r := a.canopy()
	for n := int(steps + 0.5); n > 0; n-- {
		if a.rng.Float64() > 0.6 {
			continue
		}
		if p := a.petals.spawn(); p != nil {
			ang := a.rng.Float64() * 2 * math.Pi
			p.x, p.y = cx+math.Cos(ang)*r, cy+math.Sin(ang)*r*0.7
			p.vx, p.vy = (a.rng.Float64()-0.5)*0.6, a.rng.Float64()*0.3
			p.decay = 0.01
			p.size = 2
			p.color = orchardPetal
		}
	}
}

// drop releases every fruit from where it hangs.
func (a *orchard) drop() {
	cx, cy, r := a.canopy()
	for i := range a.fruits {
		f := &a.fruits[i]
		f.x, f.y = cx+f.hx*r, cy+f.hy*r
		f.vy = 0
		f.rested = false
	}
}

// fall integrates gravity with a damped bounce on the ground and reports
// whether every fruit has come to rest.
func (a *orchard) fall(steps float64) bool {
	floor := a.ground() - 5
	done := true
	for i := range a.fruits {
		f := &a.fruits[i]
		if f.rested {
			continue
		}
		f.vy += fruitGravity * steps
		f.y += f.vy * steps
		if f.y >= floor {
			f.y = floor
			f.vy = -f.vy * restitution
			if math.Abs(f.vy) < restSpeed {
				f.vy = 0
				f.rested = true
			}
		}
		if !f.rested {
			done = false
		}
	}
	return done
}

func (a *orchard) Render(s Surface) {
	s.FillRect(0, 0, a.w, a.h, orchardSky)
	g := a.ground()
	s.FillRect(0, g, a.w, a.h-g, orchardGround)

	cx, cy, r := a.canopy()
	s.FillRect(a.w/2-6, cy, 12, g-cy, orchardTrunk)
	if r > 0 {
		s.FillPolygon(Ellipse(cx, cy, r, r*0.7), orchardLeaves)
	}
	a.petals.render(s)

	switch a.stage {
	case stageGrowing, stageBlooming, stageShaking:
		if a.stage != stageGrowing {
			for _, f := range a.fruits {
				s.FillCircle(cx+f.hx*r, cy+f.hy*r, 5, orchardFruit)
			}
		}
	default:
		for _, f := range a.fruits {
			s.FillCircle(f.x, f.y, 5, orchardFruit)
		}
	}

	bx, by, bw := a.basket()
	s.FillPolygon([]Vec2{{bx, by}, {bx + bw, by}, {bx + bw - 6, by + 18}, {bx + 6, by + 18}}, orchardBasket)
}
