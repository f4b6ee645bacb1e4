package canvas

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"
)

// frameRate is the display rate the per-frame constants below were tuned at.
// Advance receives seconds and scales them to frames.
const frameRate = 60.0

// ErrUnknownKind is returned when a Kind has no registered animation.
var ErrUnknownKind = errors.New("canvas: unknown animation kind")

// Animation is one decorative draw loop. Implementations own all of their
// state; nothing is shared between instances.
type Animation interface {
	// Init (re)builds internal state for a w x h surface. All randomness is
	// drawn from rng.
	Init(w, h int, rng *rand.Rand)
	// Resize reacts to new container dimensions. Particle fields rebuild;
	// physics and narrative scenes keep their state.
	Resize(w, h int)
	// Advance moves the simulation forward by dt seconds.
	Advance(dt float64)
	// Render paints the current state.
	Render(s Surface)
}

// Kind selects an animation variant.
type Kind uint8

const (
	KindNone        Kind = iota // no animation; show the static image
	KindScan                    // particle cloud swept by a scan line
	KindFunnel                  // users flowing past a churn threshold
	KindDashboard               // 2x2 grid of animated dashboard modules
	KindVoyage                  // ship, iceberg and a four-state sinking sequence
	KindTicker                  // oscillating ticket price
	KindSpectrum                // bar spectrum visualizer
	KindPulse                   // heartbeat-style moving point
	KindViews                   // play button with a climbing view counter
	KindDocument                // scanned document emitting answer tokens
	KindTurntable               // two decks with VU meters
	KindOrchard                 // staged tree narrative with falling fruit
	KindRocket                  // closing flyby with exhaust particles
	KindInstruments             // drifting instrument silhouettes (page background)
	kindCount
)

var kindNames = [kindCount]string{
	"none", "scan", "funnel", "dashboard", "voyage", "ticker", "spectrum",
	"pulse", "views", "document", "turntable", "orchard", "rocket", "instruments",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns every animated kind (KindNone excluded) in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindScan; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a kind name. The empty string maps to KindNone.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindNone, nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// UnmarshalYAML accepts a kind name scalar.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a name", ErrUnknownKind, node.Line)
	}
	return k.UnmarshalText([]byte(node.Value))
}

// MarshalYAML emits the kind name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// keywords is the ordered title keyword table. The first case-sensitive
// substring match wins.
var keywords = []struct {
	word string
	kind Kind
}{
	{"Alzheimer", KindScan},
	{"Churn", KindFunnel},
	{"SharePoint", KindDashboard},
	{"Titanic", KindVoyage},
	{"Movie", KindTicker},
	{"Music", KindSpectrum},
	{"Diabetes", KindPulse},
	{"YouTube", KindViews},
	{"MCQ", KindDocument},
}

// KindForTitle selects a variant by keyword. A title matching no keyword
// yields KindNone. Turntable, orchard, rocket and instruments have no
// keyword and are reached only through an explicit tag.
func KindForTitle(title string) Kind {
	for _, kw := range keywords {
		if strings.Contains(title, kw.word) {
			return kw.kind
		}
	}
	return KindNone
}

// New returns a fresh, uninitialized animation of the given kind.
func New(k Kind) (Animation, error) {
	switch k {
	case KindScan:
		return &scan{}, nil
	case KindFunnel:
		return &funnel{}, nil
	case KindDashboard:
		return &dashboard{}, nil
	case KindVoyage:
		return &voyage{}, nil
	case KindTicker:
		return &ticker{}, nil
	case KindSpectrum:
		return &spectrum{}, nil
	case KindPulse:
		return &pulse{}, nil
	case KindViews:
		return &views{}, nil
	case KindDocument:
		return &document{}, nil
	case KindTurntable:
		return &turntable{}, nil
	case KindOrchard:
		return &orchard{}, nil
	case KindRocket:
		return &rocket{}, nil
	case KindInstruments:
		return &instruments{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
}

// NewRand returns the deterministic generator used for a kind under seed.
func NewRand(seed uint64, k Kind) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15^uint64(k)))
}

// frames converts seconds to display frames, ignoring negative input.
func frames(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return dt * frameRate
}
