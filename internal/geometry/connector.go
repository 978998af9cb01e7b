package geometry

import "math"

const (
	connectorSpread = 7
	connectorLift   = 9
)

// Connector bows a cubic curve upward between a and b. The control points
// sit 7 units either side of the midpoint and 9 units above the higher
// endpoint, so the bow points up whichever way the endpoints are ordered.
func Connector(a, b Point) Path {
	midX := (a.X + b.X) / 2
	top := math.Min(a.Y, b.Y) - connectorLift

	var p Path
	p.MoveTo(a).CubeTo(
		Point{midX - connectorSpread, top},
		Point{midX + connectorSpread, top},
		b,
	)
	return p
}
