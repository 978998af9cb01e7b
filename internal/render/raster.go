package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/rook-computer/cover/internal/geometry"
	"github.com/rook-computer/cover/internal/scene"
)

// flattenPx is the curve flattening tolerance for strokes, in pixels.
const flattenPx = 0.35

// RasterRenderer draws a scene into a square PNG.
type RasterRenderer struct {
	// Size is the edge length in pixels.
	Size int
}

func NewRasterRenderer(size int) *RasterRenderer {
	return &RasterRenderer{Size: ClampSize(size)}
}

func (r *RasterRenderer) ContentType() string { return "image/png" }

func (r *RasterRenderer) Render(w io.Writer, s *scene.Scene) error {
	img, err := r.Rasterize(s)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Rasterize draws s into a new image. Text falls back to basicfont when
// the embedded font cannot be parsed.
func (r *RasterRenderer) Rasterize(s *scene.Scene) (*image.RGBA, error) {
	size := ClampSize(r.Size)
	fs, _ := loadFonts()

	p := &painter{
		dst:   image.NewRGBA(image.Rect(0, 0, size, size)),
		k:     float64(size) / scene.Size,
		defs:  s.Defs,
		z:     vector.NewRasterizer(size, size),
		faces: newFaceCache(fs, float64(size)),
	}
	for _, e := range s.Elements {
		if err := p.draw(e, 1); err != nil {
			return nil, fmt.Errorf("rasterize %s: %w", e.ElementName(), err)
		}
	}
	return p.dst, nil
}

type painter struct {
	dst   *image.RGBA
	k     float64
	defs  scene.Defs
	z     *vector.Rasterizer
	faces *faceCache
}

func (p *painter) draw(e scene.Element, opacity float64) error {
	switch e := e.(type) {
	case scene.Rect:
		return p.shape(e.Box.Path(), e.Style, opacity)
	case scene.Circle:
		if e.Style.Filter != "" {
			return p.glow(e, opacity*e.Style.Opacity)
		}
		return p.shape(geometry.Circle(e.Center, e.R), e.Style, opacity)
	case scene.Path:
		return p.shape(e.D, e.Style, opacity)
	case scene.Text:
		a := opacity * e.Style.Opacity
		if a <= 0 || e.Style.Fill == "" {
			return nil
		}
		c, err := parseColor(e.Style.Fill)
		if err != nil {
			return err
		}
		drawText(p.dst, p.faces, e, image.NewUniform(withAlpha(c, a)), p.k)
	case scene.Group:
		a := opacity * e.Style.Opacity
		for _, c := range e.Children {
			if err := p.draw(c, a); err != nil {
				return fmt.Errorf("%s: %w", c.ElementName(), err)
			}
		}
	}
	return nil
}

// shape fills then strokes d.
func (p *painter) shape(d geometry.Path, st scene.Style, opacity float64) error {
	a := opacity * st.Opacity
	if a <= 0 || d.Empty() {
		return nil
	}
	if st.Fill != "" && st.Fill != "none" {
		src, err := p.paint(st.Fill, a, d)
		if err != nil {
			return err
		}
		p.z.Reset(p.dst.Bounds().Dx(), p.dst.Bounds().Dy())
		p.addPath(d)
		p.z.Draw(p.dst, p.dst.Bounds(), src, image.Point{})
	}
	if st.Stroke != "" && st.Stroke != "none" && st.StrokeWidth > 0 {
		src, err := p.paint(st.Stroke, a, d)
		if err != nil {
			return err
		}
		dash := make([]float64, len(st.Dash))
		for i, v := range st.Dash {
			dash[i] = v * p.k
		}
		p.z.Reset(p.dst.Bounds().Dx(), p.dst.Bounds().Dy())
		strokePolylines(p.z, geometry.Flatten(p.scaled(d), flattenPx), strokeOpts{
			width:    st.StrokeWidth * p.k,
			roundCap: st.LineCap == "round",
			dash:     dash,
		})
		p.z.Draw(p.dst, p.dst.Bounds(), src, image.Point{})
	}
	return nil
}

// glow approximates a blurred disk with a soft radial falloff.
func (p *painter) glow(c scene.Circle, a float64) error {
	if a <= 0 || c.R <= 0 {
		return nil
	}
	col, err := parseColor(c.Style.Fill)
	if err != nil {
		return err
	}
	d := geometry.Circle(c.Center, c.R)
	bb := p.bounds(d)
	src := radialImage(p.dst.Bounds(), bb, 0.5, 0.5, 0.5, glowStops(col), a)

	p.z.Reset(p.dst.Bounds().Dx(), p.dst.Bounds().Dy())
	p.addPath(d)
	p.z.Draw(p.dst, p.dst.Bounds(), src, image.Point{})
	return nil
}

// paint resolves a fill or stroke into a source image aligned with dst.
func (p *painter) paint(ref string, a float64, d geometry.Path) (image.Image, error) {
	id, isRef := scene.RefID(ref)
	if !isRef {
		c, err := parseColor(ref)
		if err != nil {
			return nil, err
		}
		return image.NewUniform(withAlpha(c, a)), nil
	}

	bb := p.bounds(d)
	switch id {
	case p.defs.Background.ID:
		return linearImage(p.dst.Bounds(), bb, p.defs.Background, a)
	case p.defs.Vignette.ID:
		g := p.defs.Vignette
		stops, err := parseStops(g.Stops)
		if err != nil {
			return nil, err
		}
		return radialImage(p.dst.Bounds(), bb, g.CX, g.CY, g.R, stops, a), nil
	}
	return nil, fmt.Errorf("%w: no def %q", ErrBadPaint, id)
}

func (p *painter) addPath(d geometry.Path) {
	k := p.k
	for _, s := range d.Segments() {
		switch s.Op {
		case geometry.OpMove:
			p.z.MoveTo(f32(s.Pts[0].X*k), f32(s.Pts[0].Y*k))
		case geometry.OpLine:
			p.z.LineTo(f32(s.Pts[0].X*k), f32(s.Pts[0].Y*k))
		case geometry.OpQuad:
			p.z.QuadTo(
				f32(s.Pts[0].X*k), f32(s.Pts[0].Y*k),
				f32(s.Pts[1].X*k), f32(s.Pts[1].Y*k),
			)
		case geometry.OpCube:
			p.z.CubeTo(
				f32(s.Pts[0].X*k), f32(s.Pts[0].Y*k),
				f32(s.Pts[1].X*k), f32(s.Pts[1].Y*k),
				f32(s.Pts[2].X*k), f32(s.Pts[2].Y*k),
			)
		case geometry.OpClose:
			p.z.ClosePath()
		}
	}
	p.z.ClosePath()
}

// scaled maps d into pixel space.
func (p *painter) scaled(d geometry.Path) geometry.Path {
	var out geometry.Path
	sc := func(pt geometry.Point) geometry.Point { return geometry.Point{X: pt.X * p.k, Y: pt.Y * p.k} }
	for _, s := range d.Segments() {
		switch s.Op {
		case geometry.OpMove:
			out.MoveTo(sc(s.Pts[0]))
		case geometry.OpLine:
			out.LineTo(sc(s.Pts[0]))
		case geometry.OpQuad:
			out.QuadTo(sc(s.Pts[0]), sc(s.Pts[1]))
		case geometry.OpCube:
			out.CubeTo(sc(s.Pts[0]), sc(s.Pts[1]), sc(s.Pts[2]))
		case geometry.OpClose:
			out.Close()
		}
	}
	return out
}

// bounds is the pixel bounding box of d's points, controls included.
func (p *painter) bounds(d geometry.Path) rectF {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range d.Points() {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	if math.IsInf(minX, 0) {
		return rectF{}
	}
	return rectF{x: minX * p.k, y: minY * p.k, w: (maxX - minX) * p.k, h: (maxY - minY) * p.k}
}
