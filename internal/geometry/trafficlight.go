package geometry

import "github.com/rook-computer/cover/internal/config"

// Housing recipe, in poster units before scale.
const (
	housingWidth  = 10
	housingHeight = 20
	housingRadius = 1.8
	poleWidth     = 1.8
	lensRadius    = 2.3
	glowFactor    = 1.9
	visorWidth    = 5.8
	visorHeight   = 0.7
	visorGap      = 0.75
	visorRadius   = 0.35
)

// lensOffsets are the lens centers below the housing top, red to green.
var lensOffsets = [3]float64{4.6, 10, 15.4}

// LensLayout is one resolved lens.
type LensLayout struct {
	Lens   config.Lens
	Center Point
	Radius float64
	// On is true for exactly the lens matching the active state.
	On bool
	// GlowRadius is the extent of the blurred halo drawn behind a lit lens.
	GlowRadius float64
	Visor      Path
	Highlight  Path
	// Check is empty unless the hint is enabled and the lens is lit.
	Check Path
}

// TrafficLight is the resolved icon: housing, pole and three lenses.
type TrafficLight struct {
	Housing Rect
	Pole    Rect
	Lenses  [3]LensLayout
}

// LayoutTrafficLight places the housing with its top-center at (X, Y).
func LayoutTrafficLight(c config.TrafficLightConfig) TrafficLight {
	s := c.Scale
	top := Point{c.X, c.Y}

	tl := TrafficLight{
		Housing: Rect{
			X: c.X - housingWidth/2*s,
			Y: c.Y,
			W: housingWidth * s,
			H: housingHeight * s,
			R: housingRadius * s,
		},
		Pole: Rect{
			X: c.X - poleWidth/2*s,
			Y: c.Y + housingHeight*s,
			W: poleWidth * s,
			H: c.PoleHeight * s,
		},
	}

	for i, lens := range config.Lenses() {
		center := top.Add(0, lensOffsets[i]*s)
		r := lensRadius * s
		on := lens == c.Active
		l := LensLayout{
			Lens:       lens,
			Center:     center,
			Radius:     r,
			On:         on,
			GlowRadius: r * glowFactor,
			Visor: HoodRect(
				center.X-visorWidth/2*s,
				center.Y-r-visorGap*s,
				visorWidth*s,
				visorHeight*s,
				visorRadius*s,
			),
			Highlight: highlightArc(center, s),
		}
		if c.CIHint && on {
			l.Check = checkMark(center, s)
		}
		tl.Lenses[i] = l
	}
	return tl
}

// Lit returns the lit lens, if any.
func (t TrafficLight) Lit() (LensLayout, bool) {
	for _, l := range t.Lenses {
		if l.On {
			return l, true
		}
	}
	return LensLayout{}, false
}

func highlightArc(c Point, s float64) Path {
	var p Path
	p.MoveTo(c.Add(-1.3*s, -0.6*s)).
		QuadTo(c.Add(-1.1*s, -1.6*s), c.Add(-0.2*s, -1.7*s))
	return p
}

func checkMark(c Point, s float64) Path {
	var p Path
	p.MoveTo(c.Add(-1.1*s, 0.1*s)).
		LineTo(c.Add(-0.35*s, 0.85*s)).
		LineTo(c.Add(1.15*s, -0.75*s))
	return p
}
