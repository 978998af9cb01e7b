package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/rook-computer/cover/internal/geometry"
	"github.com/rook-computer/cover/internal/scene"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// fontStack is the family list handed to the SVG viewer; text metrics are
// the viewer's business.
const fontStack = "'Helvetica Neue', Helvetica, Arial, sans-serif"

// SVGRenderer writes a scene as a standalone SVG document.
type SVGRenderer struct {
	// Indent is the number of spaces per nesting level; 0 writes one line.
	Indent int
}

func NewSVGRenderer() *SVGRenderer { return &SVGRenderer{Indent: 2} }

func (r *SVGRenderer) ContentType() string { return "image/svg+xml" }

func (r *SVGRenderer) Render(w io.Writer, s *scene.Scene) error {
	doc := r.Document(s)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// Document builds the element tree for s.
func (r *SVGRenderer) Document(s *scene.Scene) *etree.Document {
	doc := etree.NewDocument()
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNamespace)
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", scene.Size, scene.Size))
	root.CreateAttr("role", "img")
	root.CreateAttr("aria-label", s.Label)
	setIf(root, "width", s.Width)
	setIf(root, "height", s.Height)
	setIf(root, "class", s.Class)

	root.CreateElement("title").SetText(s.Label)
	writeDefs(root.CreateElement("defs"), s.Defs)

	for _, e := range s.Elements {
		writeElement(root, e)
	}

	if r.Indent > 0 {
		doc.Indent(r.Indent)
	}
	return doc
}

func writeDefs(defs *etree.Element, d scene.Defs) {
	lg := defs.CreateElement("linearGradient")
	lg.CreateAttr("id", d.Background.ID)
	lg.CreateAttr("x1", geometry.Num(d.Background.X1))
	lg.CreateAttr("y1", geometry.Num(d.Background.Y1))
	lg.CreateAttr("x2", geometry.Num(d.Background.X2))
	lg.CreateAttr("y2", geometry.Num(d.Background.Y2))
	writeStops(lg, d.Background.Stops)

	rg := defs.CreateElement("radialGradient")
	rg.CreateAttr("id", d.Vignette.ID)
	rg.CreateAttr("cx", geometry.Num(d.Vignette.CX))
	rg.CreateAttr("cy", geometry.Num(d.Vignette.CY))
	rg.CreateAttr("r", geometry.Num(d.Vignette.R))
	writeStops(rg, d.Vignette.Stops)

	f := defs.CreateElement("filter")
	f.CreateAttr("id", d.Glow.ID)
	f.CreateAttr("x", "-50%")
	f.CreateAttr("y", "-50%")
	f.CreateAttr("width", "200%")
	f.CreateAttr("height", "200%")
	blur := f.CreateElement("feGaussianBlur")
	blur.CreateAttr("stdDeviation", geometry.Num(d.Glow.StdDeviation))
}

func writeStops(parent *etree.Element, stops []scene.Stop) {
	for _, st := range stops {
		el := parent.CreateElement("stop")
		el.CreateAttr("offset", geometry.Num(st.Offset))
		el.CreateAttr("stop-color", st.Color)
		if st.Opacity != 1 {
			el.CreateAttr("stop-opacity", geometry.Num(st.Opacity))
		}
	}
}

func writeElement(parent *etree.Element, e scene.Element) {
	var el *etree.Element
	switch e := e.(type) {
	case scene.Rect:
		el = parent.CreateElement("rect")
		el.CreateAttr("id", e.Name)
		el.CreateAttr("x", geometry.Num(e.Box.X))
		el.CreateAttr("y", geometry.Num(e.Box.Y))
		el.CreateAttr("width", geometry.Num(e.Box.W))
		el.CreateAttr("height", geometry.Num(e.Box.H))
		if e.Box.R > 0 {
			el.CreateAttr("rx", geometry.Num(e.Box.R))
		}
		writeStyle(el, e.Style)
	case scene.Circle:
		el = parent.CreateElement("circle")
		el.CreateAttr("id", e.Name)
		el.CreateAttr("cx", geometry.Num(e.Center.X))
		el.CreateAttr("cy", geometry.Num(e.Center.Y))
		el.CreateAttr("r", geometry.Num(e.R))
		writeStyle(el, e.Style)
	case scene.Path:
		el = parent.CreateElement("path")
		el.CreateAttr("id", e.Name)
		el.CreateAttr("d", e.D.String())
		writeStyle(el, e.Style)
	case scene.Text:
		el = parent.CreateElement("text")
		el.CreateAttr("id", e.Name)
		el.CreateAttr("x", geometry.Num(e.At.X))
		el.CreateAttr("y", geometry.Num(e.At.Y))
		el.CreateAttr("font-family", fontStack)
		el.CreateAttr("font-size", geometry.Num(e.Size))
		setIf(el, "font-weight", e.Weight)
		setIf(el, "text-anchor", e.Anchor)
		if e.LetterSpacing != 0 {
			el.CreateAttr("letter-spacing", geometry.Num(e.LetterSpacing))
		}
		writeStyle(el, e.Style)
		el.SetText(e.Content)
	case scene.Group:
		el = parent.CreateElement("g")
		el.CreateAttr("id", e.Name)
		writeStyle(el, e.Style)
		for _, c := range e.Children {
			writeElement(el, c)
		}
	}
}

// writeStyle emits presentation attributes. Groups leave fill unset so
// children decide; every other element gets an explicit fill.
func writeStyle(el *etree.Element, st scene.Style) {
	if el.Tag != "g" {
		fill := st.Fill
		if fill == "" {
			fill = "none"
		}
		el.CreateAttr("fill", fill)
	}
	if st.Stroke != "" {
		el.CreateAttr("stroke", st.Stroke)
		el.CreateAttr("stroke-width", geometry.Num(st.StrokeWidth))
		setIf(el, "stroke-linecap", st.LineCap)
		setIf(el, "stroke-linejoin", st.LineJoin)
		if len(st.Dash) > 0 {
			parts := make([]string, len(st.Dash))
			for i, d := range st.Dash {
				parts[i] = geometry.Num(d)
			}
			el.CreateAttr("stroke-dasharray", strings.Join(parts, " "))
		}
	}
	if st.Opacity != 1 {
		el.CreateAttr("opacity", geometry.Num(st.Opacity))
	}
	setIf(el, "filter", st.Filter)
}

func setIf(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}
