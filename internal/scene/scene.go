// Package scene describes a cover as an ordered list of primitive shapes in
// poster space. Backends in internal/render turn a Scene into bytes.
package scene

import "github.com/rook-computer/cover/internal/geometry"

// Size is the edge length of poster space. Every coordinate in a Scene is
// authored against a Size×Size box.
const Size = 100

// Scene is a composed cover, back to front.
type Scene struct {
	// Label is the accessible name of the image.
	Label string
	// Width, Height and Class are handed to the output document verbatim.
	Width, Height, Class string

	Defs     Defs
	Elements []Element
}

// Find returns the first element called name, searching groups depth-first.
func (s *Scene) Find(name string) (Element, bool) {
	return find(s.Elements, name)
}

// Names lists the top-level element names in draw order.
func (s *Scene) Names() []string {
	out := make([]string, 0, len(s.Elements))
	for _, e := range s.Elements {
		out = append(out, e.ElementName())
	}
	return out
}

func find(elems []Element, name string) (Element, bool) {
	for _, e := range elems {
		if e.ElementName() == name {
			return e, true
		}
		if g, ok := e.(Group); ok {
			if found, ok := find(g.Children, name); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// Element is one of Rect, Circle, Path, Text or Group.
type Element interface {
	ElementName() string
	element()
}

// Style carries paint attributes. Fill and Stroke hold a CSS color, a
// "url(#id)" reference into Defs, or "" for none. Opacity applies to the
// whole element, so the zero Style paints nothing.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	// Filter references a filter in Defs, e.g. "url(#glow)".
	Filter   string
	LineCap  string
	LineJoin string
	Dash     []float64
}

type Rect struct {
	Name  string
	Box   geometry.Rect
	Style Style
}

type Circle struct {
	Name   string
	Center geometry.Point
	R      float64
	Style  Style
}

type Path struct {
	Name  string
	D     geometry.Path
	Style Style
}

// Text is a single line anchored at its baseline. Font metrics belong to
// the backend.
type Text struct {
	Name    string
	At      geometry.Point
	Content string
	Size    float64
	// Anchor is "start", "middle" or "end".
	Anchor        string
	Weight        string
	LetterSpacing float64
	Style         Style
}

type Group struct {
	Name     string
	Style    Style
	Children []Element
}

func (e Rect) ElementName() string   { return e.Name }
func (e Circle) ElementName() string { return e.Name }
func (e Path) ElementName() string   { return e.Name }
func (e Text) ElementName() string   { return e.Name }
func (e Group) ElementName() string  { return e.Name }

func (Rect) element()   {}
func (Circle) element() {}
func (Path) element()   {}
func (Text) element()   {}
func (Group) element()  {}

// Stop is a gradient color stop. Offset runs 0..1.
type Stop struct {
	Offset  float64
	Color   string
	Opacity float64
}

// LinearGradient runs from (X1,Y1) to (X2,Y2) in the painted element's
// bounding box, 0..1 on each axis.
type LinearGradient struct {
	ID             string
	X1, Y1, X2, Y2 float64
	Stops          []Stop
}

// RadialGradient is centered at (CX,CY) with radius R, in bounding box units.
type RadialGradient struct {
	ID     string
	CX, CY float64
	R      float64
	Stops  []Stop
}

// BlurFilter is a gaussian blur with the given deviation in poster units.
type BlurFilter struct {
	ID           string
	StdDeviation float64
}

// Defs are the shared paint servers of a scene.
type Defs struct {
	Background LinearGradient
	Vignette   RadialGradient
	Glow       BlurFilter
}

// Ref formats a url(#id) reference.
func Ref(id string) string { return "url(#" + id + ")" }

// RefID extracts id from a url(#id) reference.
func RefID(ref string) (string, bool) {
	const prefix, suffix = "url(#", ")"
	if len(ref) <= len(prefix)+len(suffix) || ref[:len(prefix)] != prefix || ref[len(ref)-1:] != suffix {
		return "", false
	}
	return ref[len(prefix) : len(ref)-1], true
}
