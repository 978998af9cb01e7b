package geometry

import "math"

// kappa places cubic control points so a quarter curve approximates a
// circular arc.
const kappa = 0.5522847498

// Rect is an axis-aligned box with a uniform corner radius.
type Rect struct {
	X, Y, W, H, R float64
}

// Path returns the rect outline as a rounded path.
func (r Rect) Path() Path { return RoundedRect(r.X, r.Y, r.W, r.H, r.R) }

// RoundedRect builds a closed outline of the box at (x, y) sized w×h with
// every corner rounded by r. The radius is limited to half the shorter side.
func RoundedRect(x, y, w, h, r float64) Path {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	k := r * kappa

	var p Path
	p.MoveTo(Point{x + r, y})
	p.LineTo(Point{x + w - r, y})
	p.CubeTo(Point{x + w - r + k, y}, Point{x + w, y + r - k}, Point{x + w, y + r})
	p.LineTo(Point{x + w, y + h - r})
	p.CubeTo(Point{x + w, y + h - r + k}, Point{x + w - r + k, y + h}, Point{x + w - r, y + h})
	p.LineTo(Point{x + r, y + h})
	p.CubeTo(Point{x + r - k, y + h}, Point{x, y + h - r + k}, Point{x, y + h - r})
	p.LineTo(Point{x, y + r})
	p.CubeTo(Point{x, y + r - k}, Point{x + r - k, y}, Point{x + r, y})
	p.Close()
	return p
}

// HoodRect is RoundedRect with the bottom corners left square.
func HoodRect(x, y, w, h, r float64) Path {
	r = math.Max(0, math.Min(r, math.Min(w/2, h)))
	k := r * kappa

	var p Path
	p.MoveTo(Point{x + r, y})
	p.LineTo(Point{x + w - r, y})
	p.CubeTo(Point{x + w - r + k, y}, Point{x + w, y + r - k}, Point{x + w, y + r})
	p.LineTo(Point{x + w, y + h})
	p.LineTo(Point{x, y + h})
	p.LineTo(Point{x, y + r})
	p.CubeTo(Point{x, y + r - k}, Point{x + r - k, y}, Point{x + r, y})
	p.Close()
	return p
}

// Circle approximates a circle with four cubic quarters.
func Circle(c Point, r float64) Path {
	k := r * kappa
	var p Path
	p.MoveTo(Point{c.X + r, c.Y})
	p.CubeTo(Point{c.X + r, c.Y + k}, Point{c.X + k, c.Y + r}, Point{c.X, c.Y + r})
	p.CubeTo(Point{c.X - k, c.Y + r}, Point{c.X - r, c.Y + k}, Point{c.X - r, c.Y})
	p.CubeTo(Point{c.X - r, c.Y - k}, Point{c.X - k, c.Y - r}, Point{c.X, c.Y - r})
	p.CubeTo(Point{c.X + k, c.Y - r}, Point{c.X + r, c.Y - k}, Point{c.X + r, c.Y})
	p.Close()
	return p
}
