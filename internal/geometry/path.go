// Package geometry turns poster-space parameters into points and paths.
//
// Poster space is a fixed 0..100 square with y growing downward. Every
// function here is pure: the same input always yields the same output, and
// nothing is clamped, so out-of-range knobs simply extrapolate.
package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Point is a poster-space coordinate.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Lerp returns the point at t along p→q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Op is a path drawing command.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpQuad
	OpCube
	OpClose
)

// Segment is one path command. Pts holds the command's points in order,
// the last one being the new pen position; Close carries none.
type Segment struct {
	Op  Op
	Pts []Point
}

// Path is an ordered list of drawing commands using the SVG model.
type Path struct {
	segs []Segment
}

func (p *Path) MoveTo(pt Point) *Path {
	p.segs = append(p.segs, Segment{Op: OpMove, Pts: []Point{pt}})
	return p
}

func (p *Path) LineTo(pt Point) *Path {
	p.segs = append(p.segs, Segment{Op: OpLine, Pts: []Point{pt}})
	return p
}

func (p *Path) QuadTo(ctrl, pt Point) *Path {
	p.segs = append(p.segs, Segment{Op: OpQuad, Pts: []Point{ctrl, pt}})
	return p
}

func (p *Path) CubeTo(c1, c2, pt Point) *Path {
	p.segs = append(p.segs, Segment{Op: OpCube, Pts: []Point{c1, c2, pt}})
	return p
}

func (p *Path) Close() *Path {
	p.segs = append(p.segs, Segment{Op: OpClose})
	return p
}

// Segments returns the commands. The slice must not be modified.
func (p Path) Segments() []Segment { return p.segs }

// Empty reports whether the path has no commands.
func (p Path) Empty() bool { return len(p.segs) == 0 }

// Start is the first pen position, or the zero point for an empty path.
func (p Path) Start() Point {
	for _, s := range p.segs {
		if len(s.Pts) > 0 {
			return s.Pts[len(s.Pts)-1]
		}
	}
	return Point{}
}

// End is the last explicit pen position.
func (p Path) End() Point {
	for i := len(p.segs) - 1; i >= 0; i-- {
		if pts := p.segs[i].Pts; len(pts) > 0 {
			return pts[len(pts)-1]
		}
	}
	return Point{}
}

// Points returns every point of the path, control points included.
func (p Path) Points() []Point {
	var out []Point
	for _, s := range p.segs {
		out = append(out, s.Pts...)
	}
	return out
}

var opLetters = [...]string{OpMove: "M", OpLine: "L", OpQuad: "Q", OpCube: "C", OpClose: "Z"}

// String renders SVG path data with absolute commands.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p.segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(opLetters[s.Op])
		for j, pt := range s.Pts {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(Num(pt.X))
			b.WriteByte(' ')
			b.WriteString(Num(pt.Y))
		}
	}
	return b.String()
}

// Num formats a coordinate with at most three decimals. Negative zero is
// written as 0 so mirrored geometry prints identically.
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
