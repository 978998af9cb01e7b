package geometry

import "math"

// Polyline is a flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

const maxCurveSteps = 64

// Flatten approximates p with straight segments no longer than tolerance
// along each curve's control polygon. Subpaths are returned in order.
func Flatten(p Path, tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = 0.25
	}
	var (
		out     []Polyline
		cur     Polyline
		pen     Point
		started bool
	)
	flush := func() {
		if len(cur.Points) > 0 {
			out = append(out, cur)
		}
		cur = Polyline{}
	}

	for _, s := range p.segs {
		switch s.Op {
		case OpMove:
			flush()
			pen = s.Pts[0]
			cur.Points = append(cur.Points, pen)
			started = true
		case OpLine:
			if !started {
				cur.Points = append(cur.Points, pen)
				started = true
			}
			pen = s.Pts[0]
			cur.Points = append(cur.Points, pen)
		case OpQuad:
			ctrl, end := s.Pts[0], s.Pts[1]
			n := steps(tolerance, pen, ctrl, end)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				cur.Points = append(cur.Points, quadAt(pen, ctrl, end, t))
			}
			pen = end
		case OpCube:
			c1, c2, end := s.Pts[0], s.Pts[1], s.Pts[2]
			n := steps(tolerance, pen, c1, c2, end)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				cur.Points = append(cur.Points, cubeAt(pen, c1, c2, end, t))
			}
			pen = end
		case OpClose:
			cur.Closed = true
			if len(cur.Points) > 0 {
				pen = cur.Points[0]
			}
			flush()
			started = false
		}
	}
	flush()
	return out
}

func steps(tolerance float64, pts ...Point) int {
	var length float64
	for i := 1; i < len(pts); i++ {
		length += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	n := int(math.Ceil(length / tolerance))
	if n < 1 || math.IsNaN(length) {
		return 1
	}
	if n > maxCurveSteps {
		return maxCurveSteps
	}
	return n
}

func quadAt(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
		Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
	}
}

func cubeAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
