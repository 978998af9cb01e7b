package config

// Patch is a deeply partial Config. A nil pointer or nil slice means the
// field is absent and the base value is kept.
type Patch struct {
	Palette      *PalettePatch      `mapstructure:"palette" json:"palette,omitempty"`
	Text         *TextPatch         `mapstructure:"text" json:"text,omitempty"`
	Ground       *GroundPatch       `mapstructure:"ground" json:"ground,omitempty"`
	TrafficLight *TrafficLightPatch `mapstructure:"trafficLight" json:"trafficLight,omitempty"`
	Figures      *FiguresPatch      `mapstructure:"figures" json:"figures,omitempty"`
	Connection   *ConnectionPatch   `mapstructure:"connection" json:"connection,omitempty"`
	Badge        *BadgePatch        `mapstructure:"badge" json:"badge,omitempty"`
	Vignette     *VignettePatch     `mapstructure:"vignette" json:"vignette,omitempty"`
	Frame        *FramePatch        `mapstructure:"frame" json:"frame,omitempty"`
}

type PalettePatch struct {
	BackgroundTop    *string `mapstructure:"backgroundTop" json:"backgroundTop,omitempty"`
	BackgroundBottom *string `mapstructure:"backgroundBottom" json:"backgroundBottom,omitempty"`
	Ground           *string `mapstructure:"ground" json:"ground,omitempty"`
	GroundEdge       *string `mapstructure:"groundEdge" json:"groundEdge,omitempty"`
	Housing          *string `mapstructure:"housing" json:"housing,omitempty"`
	Pole             *string `mapstructure:"pole" json:"pole,omitempty"`
	LensOff          *string `mapstructure:"lensOff" json:"lensOff,omitempty"`
	Red              *string `mapstructure:"red" json:"red,omitempty"`
	Amber            *string `mapstructure:"amber" json:"amber,omitempty"`
	Green            *string `mapstructure:"green" json:"green,omitempty"`
	Visor            *string `mapstructure:"visor" json:"visor,omitempty"`
	Highlight        *string `mapstructure:"highlight" json:"highlight,omitempty"`
	Check            *string `mapstructure:"check" json:"check,omitempty"`
	Connector        *string `mapstructure:"connector" json:"connector,omitempty"`
	Title            *string `mapstructure:"title" json:"title,omitempty"`
	Subtitle         *string `mapstructure:"subtitle" json:"subtitle,omitempty"`
	Vignette         *string `mapstructure:"vignette" json:"vignette,omitempty"`
	Border           *string `mapstructure:"border" json:"border,omitempty"`
}

type TextPatch struct {
	Title         *string  `mapstructure:"title" json:"title,omitempty"`
	Subtitle      *string  `mapstructure:"subtitle" json:"subtitle,omitempty"`
	TopBias       *float64 `mapstructure:"topBias" json:"topBias,omitempty"`
	TitleSize     *float64 `mapstructure:"titleSize" json:"titleSize,omitempty"`
	SubtitleSize  *float64 `mapstructure:"subtitleSize" json:"subtitleSize,omitempty"`
	LetterSpacing *float64 `mapstructure:"letterSpacing" json:"letterSpacing,omitempty"`
}

type GroundPatch struct {
	Horizon *float64 `mapstructure:"horizon" json:"horizon,omitempty"`
	Sway    *float64 `mapstructure:"sway" json:"sway,omitempty"`
}

type TrafficLightPatch struct {
	X          *float64 `mapstructure:"x" json:"x,omitempty"`
	Y          *float64 `mapstructure:"y" json:"y,omitempty"`
	Scale      *float64 `mapstructure:"scale" json:"scale,omitempty"`
	Active     *Lens    `mapstructure:"active" json:"active,omitempty"`
	CIHint     *bool    `mapstructure:"ciHint" json:"ciHint,omitempty"`
	PoleHeight *float64 `mapstructure:"poleHeight" json:"poleHeight,omitempty"`
}

type FiguresPatch struct {
	Left  *FigurePatch `mapstructure:"left" json:"left,omitempty"`
	Right *FigurePatch `mapstructure:"right" json:"right,omitempty"`
}

type FigurePatch struct {
	Side          *Side    `mapstructure:"side" json:"side,omitempty"`
	X             *float64 `mapstructure:"x" json:"x,omitempty"`
	Y             *float64 `mapstructure:"y" json:"y,omitempty"`
	Scale         *float64 `mapstructure:"scale" json:"scale,omitempty"`
	Stroke        *string  `mapstructure:"stroke" json:"stroke,omitempty"`
	Fill          *string  `mapstructure:"fill" json:"fill,omitempty"`
	StrokeWidth   *float64 `mapstructure:"strokeWidth" json:"strokeWidth,omitempty"`
	HeadRadius    *float64 `mapstructure:"headRadius" json:"headRadius,omitempty"`
	ShoulderWidth *float64 `mapstructure:"shoulderWidth" json:"shoulderWidth,omitempty"`
	TorsoHeight   *float64 `mapstructure:"torsoHeight" json:"torsoHeight,omitempty"`
	HipWidth      *float64 `mapstructure:"hipWidth" json:"hipWidth,omitempty"`
	LegLength     *float64 `mapstructure:"legLength" json:"legLength,omitempty"`
	Reach         *float64 `mapstructure:"reach" json:"reach,omitempty"`
	Stance        *float64 `mapstructure:"stance" json:"stance,omitempty"`
}

type ConnectionPatch struct {
	Enabled *bool     `mapstructure:"enabled" json:"enabled,omitempty"`
	Color   *string   `mapstructure:"color" json:"color,omitempty"`
	Width   *float64  `mapstructure:"width" json:"width,omitempty"`
	Opacity *float64  `mapstructure:"opacity" json:"opacity,omitempty"`
	Dash    []float64 `mapstructure:"dash" json:"dash,omitempty"`
}

type BadgePatch struct {
	Enabled *bool    `mapstructure:"enabled" json:"enabled,omitempty"`
	Payload *string  `mapstructure:"payload" json:"payload,omitempty"`
	X       *float64 `mapstructure:"x" json:"x,omitempty"`
	Y       *float64 `mapstructure:"y" json:"y,omitempty"`
	Size    *float64 `mapstructure:"size" json:"size,omitempty"`
	Color   *string  `mapstructure:"color" json:"color,omitempty"`
}

type VignettePatch struct {
	Strength *float64 `mapstructure:"strength" json:"strength,omitempty"`
}

type FramePatch struct {
	Inset   *float64 `mapstructure:"inset" json:"inset,omitempty"`
	Width   *float64 `mapstructure:"width" json:"width,omitempty"`
	Opacity *float64 `mapstructure:"opacity" json:"opacity,omitempty"`
}

// Ptr returns a pointer to v; handy when building patches in code.
func Ptr[T any](v T) *T { return &v }
