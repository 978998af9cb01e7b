package scene

import (
	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/geometry"
)

// Element names. They double as SVG ids.
const (
	NameBackground   = "background"
	NameGround       = "ground"
	NameTrafficLight = "traffic-light"
	NameConnector    = "connector"
	NameFigureLeft   = "figure-left"
	NameFigureRight  = "figure-right"
	NameText         = "text"
	NameTitle        = "title"
	NameSubtitle     = "subtitle"
	NameBadge        = "badge"
	NameVignette     = "vignette"
	NameBorder       = "border"
)

const (
	gradientBackground = "bg"
	gradientVignette   = "vignette-fill"
	filterGlow         = "glow"
)

// Text block placement.
const (
	titleTop       = 6
	titleBiasRange = 16
	subtitleGap    = 6.8
)

const (
	lensOffOpacity = 0.35
	glowOpacity    = 0.8
	glowDeviation  = 1.2
	limbWeight     = 1.8
)

// Compose lays out cfg as a scene. The text overrides are applied on top of
// cfg; the display attributes are copied onto the scene.
func Compose(cfg config.Config, o config.Overrides) *Scene {
	cfg = o.Apply(cfg)
	p := cfg.Palette

	s := &Scene{
		Label:  config.Label(cfg),
		Width:  o.Width,
		Height: o.Height,
		Class:  o.Class,
		Defs:   defs(cfg),
	}

	s.Elements = append(s.Elements,
		Rect{
			Name:  NameBackground,
			Box:   geometry.Rect{W: Size, H: Size},
			Style: Style{Fill: Ref(gradientBackground), Opacity: 1},
		},
		ground(cfg.Ground, p),
		trafficLight(cfg.TrafficLight, p),
	)
	if cfg.Connection.Enabled {
		s.Elements = append(s.Elements, connector(cfg))
	}
	s.Elements = append(s.Elements,
		figure(NameFigureLeft, cfg.Figures.Left),
		figure(NameFigureRight, cfg.Figures.Right),
		textBlock(cfg.Text, p),
	)
	if b, ok := badge(cfg.Badge, p); ok {
		s.Elements = append(s.Elements, b)
	}
	s.Elements = append(s.Elements,
		Rect{
			Name:  NameVignette,
			Box:   geometry.Rect{W: Size, H: Size},
			Style: Style{Fill: Ref(gradientVignette), Opacity: 1},
		},
		border(cfg.Frame, p),
	)
	return s
}

func defs(cfg config.Config) Defs {
	p := cfg.Palette
	return Defs{
		Background: LinearGradient{
			ID: gradientBackground,
			X2: 0, Y2: 1,
			Stops: []Stop{
				{Offset: 0, Color: p.BackgroundTop, Opacity: 1},
				{Offset: 1, Color: p.BackgroundBottom, Opacity: 1},
			},
		},
		Vignette: RadialGradient{
			ID: gradientVignette,
			CX: 0.5, CY: 0.45, R: 0.75,
			Stops: []Stop{
				{Offset: 0.55, Color: p.Vignette, Opacity: 0},
				{Offset: 1, Color: p.Vignette, Opacity: cfg.Vignette.Strength},
			},
		},
		Glow: BlurFilter{ID: filterGlow, StdDeviation: glowDeviation},
	}
}

// groundPath is a gentle crest at the horizon filled down to the bottom edge.
func groundPath(g config.GroundConfig) geometry.Path {
	var d geometry.Path
	d.MoveTo(geometry.Point{X: 0, Y: g.Horizon}).
		CubeTo(
			geometry.Point{X: 25, Y: g.Horizon - g.Sway},
			geometry.Point{X: 75, Y: g.Horizon + g.Sway},
			geometry.Point{X: Size, Y: g.Horizon},
		).
		LineTo(geometry.Point{X: Size, Y: Size}).
		LineTo(geometry.Point{X: 0, Y: Size}).
		Close()
	return d
}

func ground(g config.GroundConfig, p config.Palette) Element {
	return Path{
		Name: NameGround,
		D:    groundPath(g),
		Style: Style{
			Fill:        p.Ground,
			Stroke:      p.GroundEdge,
			StrokeWidth: 0.4,
			Opacity:     1,
		},
	}
}

func trafficLight(c config.TrafficLightConfig, p config.Palette) Element {
	tl := geometry.LayoutTrafficLight(c)
	g := Group{
		Name:  NameTrafficLight,
		Style: Style{Opacity: 1},
		Children: []Element{
			Rect{Name: "pole", Box: tl.Pole, Style: Style{Fill: p.Pole, Opacity: 1}},
			Rect{Name: "housing", Box: tl.Housing, Style: Style{Fill: p.Housing, Opacity: 1}},
		},
	}
	for _, l := range tl.Lenses {
		g.Children = append(g.Children, lens(l, c.Scale, p))
	}
	return g
}

func lens(l geometry.LensLayout, scale float64, p config.Palette) Element {
	name := "lens-" + string(l.Lens)
	g := Group{Name: name, Style: Style{Opacity: 1}}

	face := Style{Fill: p.LensOff, Opacity: lensOffOpacity}
	if l.On {
		color := p.LensColor(l.Lens)
		face = Style{Fill: color, Opacity: 1}
		g.Children = append(g.Children, Circle{
			Name:   name + "-glow",
			Center: l.Center,
			R:      l.GlowRadius,
			Style:  Style{Fill: color, Opacity: glowOpacity, Filter: Ref(filterGlow)},
		})
	}
	g.Children = append(g.Children,
		Circle{Name: name + "-face", Center: l.Center, R: l.Radius, Style: face},
		Path{Name: name + "-visor", D: l.Visor, Style: Style{Fill: p.Visor, Opacity: 1}},
		Path{
			Name: name + "-highlight",
			D:    l.Highlight,
			Style: Style{
				Stroke:      p.Highlight,
				StrokeWidth: 0.35 * scale,
				Opacity:     0.55,
				LineCap:     "round",
			},
		},
	)
	if !l.Check.Empty() {
		g.Children = append(g.Children, Path{
			Name: name + "-check",
			D:    l.Check,
			Style: Style{
				Stroke:      p.Check,
				StrokeWidth: 0.6 * scale,
				Opacity:     1,
				LineCap:     "round",
				LineJoin:    "round",
			},
		})
	}
	return g
}

func connector(cfg config.Config) Element {
	c := cfg.Connection
	color := c.Color
	if color == "" {
		color = cfg.Palette.Connector
	}
	a := geometry.HandAnchor(cfg.Figures.Left)
	b := geometry.HandAnchor(cfg.Figures.Right)
	return Path{
		Name: NameConnector,
		D:    geometry.Connector(a, b),
		Style: Style{
			Stroke:      color,
			StrokeWidth: c.Width,
			Opacity:     c.Opacity,
			LineCap:     "round",
			Dash:        append([]float64(nil), c.Dash...),
		},
	}
}

func figure(name string, f config.FigureConfig) Element {
	fig := geometry.LayoutFigure(f)
	limb := Style{
		Stroke:      f.Stroke,
		StrokeWidth: f.StrokeWidth * limbWeight,
		Opacity:     1,
		LineCap:     "round",
		LineJoin:    "round",
	}
	legs := fig.Legs()
	return Group{
		Name:  name,
		Style: Style{Opacity: 1},
		Children: []Element{
			Path{Name: name + "-leg-left", D: legs[0], Style: limb},
			Path{Name: name + "-leg-right", D: legs[1], Style: limb},
			Path{
				Name: name + "-torso",
				D:    fig.Torso,
				Style: Style{
					Fill:        f.Fill,
					Stroke:      f.Stroke,
					StrokeWidth: f.StrokeWidth,
					Opacity:     1,
					LineJoin:    "round",
				},
			},
			Path{Name: name + "-arm-rest", D: fig.RestArm(), Style: limb},
			Path{Name: name + "-arm-reach", D: fig.ReachArm(), Style: limb},
			Circle{
				Name:   name + "-head",
				Center: fig.Head,
				R:      fig.HeadRadius,
				Style:  Style{Fill: f.Fill, Stroke: f.Stroke, StrokeWidth: f.StrokeWidth, Opacity: 1},
			},
		},
	}
}

func textBlock(t config.TextConfig, p config.Palette) Element {
	titleY := titleTop + t.TopBias*titleBiasRange
	return Group{
		Name:  NameText,
		Style: Style{Opacity: 1},
		Children: []Element{
			Text{
				Name:          NameTitle,
				At:            geometry.Point{X: Size / 2, Y: titleY},
				Content:       t.Title,
				Size:          t.TitleSize,
				Anchor:        "middle",
				Weight:        "700",
				LetterSpacing: t.LetterSpacing,
				Style:         Style{Fill: p.Title, Opacity: 1},
			},
			Text{
				Name:          NameSubtitle,
				At:            geometry.Point{X: Size / 2, Y: titleY + subtitleGap},
				Content:       t.Subtitle,
				Size:          t.SubtitleSize,
				Anchor:        "middle",
				Weight:        "400",
				LetterSpacing: t.LetterSpacing / 2,
				Style:         Style{Fill: p.Subtitle, Opacity: 1},
			},
		},
	}
}

func border(f config.FrameConfig, p config.Palette) Element {
	return Rect{
		Name: NameBorder,
		Box: geometry.Rect{
			X: f.Inset,
			Y: f.Inset,
			W: Size - 2*f.Inset,
			H: Size - 2*f.Inset,
			R: 1,
		},
		Style: Style{
			Stroke:      p.Border,
			StrokeWidth: f.Width,
			Opacity:     f.Opacity,
		},
	}
}
