package render

import (
	"math"

	"golang.org/x/image/vector"

	"github.com/rook-computer/cover/internal/geometry"
)

// The stroker covers each segment with a quad and each vertex with a disk.
// All shapes share one winding so overlaps saturate instead of cancelling
// in the rasterizer's signed-area accumulation.

const maxDiskSteps = 48

type strokeOpts struct {
	width    float64
	roundCap bool
	dash     []float64
}

// strokePolylines adds the outline of lines (pixel space) to z.
func strokePolylines(z *vector.Rasterizer, lines []geometry.Polyline, o strokeOpts) {
	hw := o.width / 2
	if hw <= 0 {
		return
	}
	for _, pl := range lines {
		for _, run := range dashRuns(pl, o.dash) {
			strokeRun(z, run, hw, o.roundCap)
		}
	}
}

func strokeRun(z *vector.Rasterizer, pts []geometry.Point, hw float64, roundCap bool) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		if roundCap {
			addDisk(z, pts[0], hw)
		}
		return
	}
	for i := 1; i < len(pts); i++ {
		addSegment(z, pts[i-1], pts[i], hw)
	}
	for i := 1; i < len(pts)-1; i++ {
		addDisk(z, pts[i], hw)
	}
	first, last := pts[0], pts[len(pts)-1]
	if first == last {
		addDisk(z, first, hw)
		return
	}
	if roundCap {
		addDisk(z, first, hw)
		addDisk(z, last, hw)
	}
}

func addSegment(z *vector.Rasterizer, a, b geometry.Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(f32(a.X+nx), f32(a.Y+ny))
	z.LineTo(f32(b.X+nx), f32(b.Y+ny))
	z.LineTo(f32(b.X-nx), f32(b.Y-ny))
	z.LineTo(f32(a.X-nx), f32(a.Y-ny))
	z.ClosePath()
}

// addDisk walks the circle in the same rotational sense as addSegment's quads.
func addDisk(z *vector.Rasterizer, c geometry.Point, r float64) {
	n := int(math.Ceil(2 * math.Pi * r))
	if n < 8 {
		n = 8
	}
	if n > maxDiskSteps {
		n = maxDiskSteps
	}
	z.MoveTo(f32(c.X+r), f32(c.Y))
	for i := 1; i < n; i++ {
		a := -2 * math.Pi * float64(i) / float64(n)
		z.LineTo(f32(c.X+r*math.Cos(a)), f32(c.Y+r*math.Sin(a)))
	}
	z.ClosePath()
}

// Patterns finer than minDashPeriod pixels, or producing more than
// maxDashes runs on one polyline, are stroked solid.
const (
	minDashPeriod = 0.1
	maxDashes     = 4096
)

// dashRuns splits a polyline into the visible runs of a dash pattern. An
// odd pattern is repeated once, as SVG does. Closed polylines are walked
// through their closing edge.
func dashRuns(pl geometry.Polyline, dash []float64) [][]geometry.Point {
	pts := pl.Points
	if pl.Closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
		pts = append(append([]geometry.Point(nil), pts...), pts[0])
	}

	var total float64
	for _, d := range dash {
		if d < 0 {
			return [][]geometry.Point{pts}
		}
		total += d
	}
	if len(dash) == 0 || total < minDashPeriod {
		return [][]geometry.Point{pts}
	}
	if polylineLength(pts)/total*float64(len(dash)) > maxDashes {
		return [][]geometry.Point{pts}
	}
	if len(dash)%2 == 1 {
		dash = append(append([]float64(nil), dash...), dash...)
	}

	var (
		runs   [][]geometry.Point
		cur    []geometry.Point
		idx    int
		remain = dash[0]
		on     = true
	)
	if len(pts) > 0 {
		cur = append(cur, pts[0])
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.0
		for segLen-pos > remain {
			pos += remain
			p := a.Lerp(b, pos/segLen)
			if on {
				cur = append(cur, p)
				runs = append(runs, cur)
				cur = nil
			} else {
				cur = []geometry.Point{p}
			}
			on = !on
			idx = (idx + 1) % len(dash)
			remain = dash[idx]
		}
		remain -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}

func polylineLength(pts []geometry.Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return l
}

func f32(v float64) float32 { return float32(v) }
