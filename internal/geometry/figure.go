package geometry

import "github.com/rook-computer/cover/internal/config"

// Pose recipe constants, in poster units before scale.
const (
	headLift      = 2.2  // head center sits this many head radii above the shoulders
	armReachBase  = 8    // arm length beyond 0.95 shoulder widths
	armWidthRatio = 0.95
	elbowAlong    = 0.55 // elbow position along the reaching offset
	handDrop      = 1.8  // reaching hand hangs this far below the shoulder
	stanceBase    = 2.4
	stanceRange   = 6.0
	kneeAt        = 0.55 // knee height as a fraction of leg length
	kneeSpread    = 0.6  // knee offset as a fraction of the foot offset
	torsoBulge    = 0.7
)

// Figure is the resolved silhouette of one FigureConfig.
type Figure struct {
	Side       config.Side
	Head       Point
	HeadRadius float64
	Neck       Point

	LeftShoulder, RightShoulder Point
	LeftHip, RightHip           Point

	// NearShoulder faces the poster center and carries the reaching arm.
	NearShoulder, FarShoulder Point

	ReachElbow, ReachHand Point
	RestElbow, RestHand   Point

	LeftKnee, RightKnee Point
	LeftFoot, RightFoot Point

	Torso Path
}

// ArmLength is the full reach of a figure's arm in poster units.
func ArmLength(f config.FigureConfig) float64 {
	return (f.ShoulderWidth*armWidthRatio + armReachBase) * f.Scale
}

// shoulders returns (left, right, near, far).
func shoulders(f config.FigureConfig) (Point, Point, Point, Point) {
	half := f.ShoulderWidth / 2 * f.Scale
	top := f.Y - f.TorsoHeight*f.Scale
	left := Point{f.X - half, top}
	right := Point{f.X + half, top}
	if f.Side == config.SideRight {
		return left, right, left, right
	}
	return left, right, right, left
}

// reachingArm computes the elbow and hand of the near arm.
func reachingArm(f config.FigureConfig) (elbow, hand Point) {
	_, _, near, _ := shoulders(f)
	dx := ArmLength(f) * f.Reach * f.Side.Dir()
	elbowDrop := (3 + 2*(1-f.Reach)) * f.Scale
	elbow = near.Add(dx*elbowAlong, elbowDrop)
	hand = near.Add(dx, handDrop*f.Scale)
	return elbow, hand
}

// HandAnchor returns the reaching hand of f; the connector curve hangs
// from it. LayoutFigure uses the same computation.
func HandAnchor(f config.FigureConfig) Point {
	_, hand := reachingArm(f)
	return hand
}

// LayoutFigure resolves every joint of the figure and its torso outline.
func LayoutFigure(f config.FigureConfig) Figure {
	s := f.Scale
	dir := f.Side.Dir()
	anchor := Point{f.X, f.Y}

	left, right, near, far := shoulders(f)
	fig := Figure{
		Side:          f.Side,
		HeadRadius:    f.HeadRadius * s,
		Head:          anchor.Add(0, -(f.TorsoHeight+headLift*f.HeadRadius)*s),
		Neck:          anchor.Add(0, -f.TorsoHeight*s),
		LeftShoulder:  left,
		RightShoulder: right,
		NearShoulder:  near,
		FarShoulder:   far,
		LeftHip:       anchor.Add(-f.HipWidth/2*s, 0),
		RightHip:      anchor.Add(f.HipWidth/2*s, 0),
	}
	fig.ReachElbow, fig.ReachHand = reachingArm(f)

	out := -dir
	fig.RestElbow = far.Add(out*1.4*s, 4.6*s)
	fig.RestHand = far.Add(out*0.8*s, 8.8*s)

	spread := (stanceBase + stanceRange*f.Stance) * s
	kneeY := f.Y + f.LegLength*kneeAt*s
	footY := f.Y + f.LegLength*s
	fig.LeftKnee = Point{f.X - spread*kneeSpread, kneeY}
	fig.RightKnee = Point{f.X + spread*kneeSpread, kneeY}
	fig.LeftFoot = Point{f.X - spread, footY}
	fig.RightFoot = Point{f.X + spread, footY}

	leftCtrl := fig.LeftShoulder.Lerp(fig.LeftHip, 0.5).Add(-torsoBulge*s, 0)
	rightCtrl := fig.RightShoulder.Lerp(fig.RightHip, 0.5).Add(torsoBulge*s, 0)
	fig.Torso.MoveTo(fig.LeftShoulder).
		QuadTo(leftCtrl, fig.LeftHip).
		LineTo(fig.RightHip).
		QuadTo(rightCtrl, fig.RightShoulder).
		Close()
	return fig
}

// ReachArm is the near arm stroke: shoulder, bent through the elbow, to the hand.
func (f Figure) ReachArm() Path {
	var p Path
	p.MoveTo(f.NearShoulder).QuadTo(f.ReachElbow, f.ReachHand)
	return p
}

// RestArm is the far arm hanging at the side.
func (f Figure) RestArm() Path {
	var p Path
	p.MoveTo(f.FarShoulder).QuadTo(f.RestElbow, f.RestHand)
	return p
}

// Legs returns the left and right leg strokes, hip to knee to foot.
func (f Figure) Legs() [2]Path {
	var l, r Path
	l.MoveTo(f.LeftHip).LineTo(f.LeftKnee).LineTo(f.LeftFoot)
	r.MoveTo(f.RightHip).LineTo(f.RightKnee).LineTo(f.RightFoot)
	return [2]Path{l, r}
}
