package config

// Side tags a figure with the half of the poster it stands on.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Dir is the horizontal sign pointing from the figure toward the poster
// center: +1 for the left figure, -1 for the right one. Unknown sides
// behave like left.
func (s Side) Dir() float64 {
	if s == SideRight {
		return -1
	}
	return 1
}

// Lens names one of the three traffic-light faces.
type Lens string

const (
	LensRed   Lens = "red"
	LensAmber Lens = "amber"
	LensGreen Lens = "green"
)

// Lenses returns the lenses in top-to-bottom housing order.
func Lenses() []Lens { return []Lens{LensRed, LensAmber, LensGreen} }

// Config is the fully populated cover description. Every field is defined
// once it comes out of Default or Merge.
type Config struct {
	Palette      Palette            `mapstructure:"palette" json:"palette"`
	Text         TextConfig         `mapstructure:"text" json:"text"`
	Ground       GroundConfig       `mapstructure:"ground" json:"ground"`
	TrafficLight TrafficLightConfig `mapstructure:"trafficLight" json:"trafficLight"`
	Figures      Figures            `mapstructure:"figures" json:"figures"`
	Connection   ConnectionConfig   `mapstructure:"connection" json:"connection"`
	Badge        BadgeConfig        `mapstructure:"badge" json:"badge"`
	Vignette     VignetteConfig     `mapstructure:"vignette" json:"vignette"`
	Frame        FrameConfig        `mapstructure:"frame" json:"frame"`
}

// Palette maps color roles to CSS hex colors.
type Palette struct {
	BackgroundTop    string `mapstructure:"backgroundTop" json:"backgroundTop"`
	BackgroundBottom string `mapstructure:"backgroundBottom" json:"backgroundBottom"`
	Ground           string `mapstructure:"ground" json:"ground"`
	GroundEdge       string `mapstructure:"groundEdge" json:"groundEdge"`
	Housing          string `mapstructure:"housing" json:"housing"`
	Pole             string `mapstructure:"pole" json:"pole"`
	LensOff          string `mapstructure:"lensOff" json:"lensOff"`
	Red              string `mapstructure:"red" json:"red"`
	Amber            string `mapstructure:"amber" json:"amber"`
	Green            string `mapstructure:"green" json:"green"`
	Visor            string `mapstructure:"visor" json:"visor"`
	Highlight        string `mapstructure:"highlight" json:"highlight"`
	Check            string `mapstructure:"check" json:"check"`
	Connector        string `mapstructure:"connector" json:"connector"`
	Title            string `mapstructure:"title" json:"title"`
	Subtitle         string `mapstructure:"subtitle" json:"subtitle"`
	Vignette         string `mapstructure:"vignette" json:"vignette"`
	Border           string `mapstructure:"border" json:"border"`
}

// LensColor returns the lit color of a lens.
func (p Palette) LensColor(l Lens) string {
	switch l {
	case LensRed:
		return p.Red
	case LensAmber:
		return p.Amber
	case LensGreen:
		return p.Green
	}
	return p.LensOff
}

type TextConfig struct {
	Title    string `mapstructure:"title" json:"title"`
	Subtitle string `mapstructure:"subtitle" json:"subtitle"`
	// TopBias moves the text block down from the top edge, 0..1.
	TopBias       float64 `mapstructure:"topBias" json:"topBias"`
	TitleSize     float64 `mapstructure:"titleSize" json:"titleSize"`
	SubtitleSize  float64 `mapstructure:"subtitleSize" json:"subtitleSize"`
	LetterSpacing float64 `mapstructure:"letterSpacing" json:"letterSpacing"`
}

type GroundConfig struct {
	Horizon float64 `mapstructure:"horizon" json:"horizon"`
	Sway    float64 `mapstructure:"sway" json:"sway"`
}

// TrafficLightConfig anchors the housing by its top-center point.
type TrafficLightConfig struct {
	X          float64 `mapstructure:"x" json:"x"`
	Y          float64 `mapstructure:"y" json:"y"`
	Scale      float64 `mapstructure:"scale" json:"scale"`
	Active     Lens    `mapstructure:"active" json:"active"`
	CIHint     bool    `mapstructure:"ciHint" json:"ciHint"`
	PoleHeight float64 `mapstructure:"poleHeight" json:"poleHeight"`
}

type Figures struct {
	Left  FigureConfig `mapstructure:"left" json:"left"`
	Right FigureConfig `mapstructure:"right" json:"right"`
}

// FigureConfig holds one silhouette's pose. X/Y anchor the center of the
// hip line; body proportions are in poster units before Scale.
type FigureConfig struct {
	Side          Side    `mapstructure:"side" json:"side"`
	X             float64 `mapstructure:"x" json:"x"`
	Y             float64 `mapstructure:"y" json:"y"`
	Scale         float64 `mapstructure:"scale" json:"scale"`
	Stroke        string  `mapstructure:"stroke" json:"stroke"`
	Fill          string  `mapstructure:"fill" json:"fill"`
	StrokeWidth   float64 `mapstructure:"strokeWidth" json:"strokeWidth"`
	HeadRadius    float64 `mapstructure:"headRadius" json:"headRadius"`
	ShoulderWidth float64 `mapstructure:"shoulderWidth" json:"shoulderWidth"`
	TorsoHeight   float64 `mapstructure:"torsoHeight" json:"torsoHeight"`
	HipWidth      float64 `mapstructure:"hipWidth" json:"hipWidth"`
	LegLength     float64 `mapstructure:"legLength" json:"legLength"`
	// Reach is how far the near hand extends toward the other figure, 0..1.
	Reach float64 `mapstructure:"reach" json:"reach"`
	// Stance is the leg spread, 0..1.
	Stance float64 `mapstructure:"stance" json:"stance"`
}

type ConnectionConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Color falls back to Palette.Connector when empty.
	Color   string    `mapstructure:"color" json:"color"`
	Width   float64   `mapstructure:"width" json:"width"`
	Opacity float64   `mapstructure:"opacity" json:"opacity"`
	Dash    []float64 `mapstructure:"dash" json:"dash"`
}

// BadgeConfig places an optional QR code in poster space.
type BadgeConfig struct {
	Enabled bool    `mapstructure:"enabled" json:"enabled"`
	Payload string  `mapstructure:"payload" json:"payload"`
	X       float64 `mapstructure:"x" json:"x"`
	Y       float64 `mapstructure:"y" json:"y"`
	Size    float64 `mapstructure:"size" json:"size"`
	Color   string  `mapstructure:"color" json:"color"`
}

type VignetteConfig struct {
	Strength float64 `mapstructure:"strength" json:"strength"`
}

type FrameConfig struct {
	Inset   float64 `mapstructure:"inset" json:"inset"`
	Width   float64 `mapstructure:"width" json:"width"`
	Opacity float64 `mapstructure:"opacity" json:"opacity"`
}

// Default returns a freshly allocated default cover. Callers own the
// result and may modify it freely.
func Default() Config {
	return Config{
		Palette: Palette{
			BackgroundTop:    "#141b3a",
			BackgroundBottom: "#e9707a",
			Ground:           "#10142b",
			GroundEdge:       "#2a3260",
			Housing:          "#1c1f26",
			Pole:             "#2b2f38",
			LensOff:          "#3a3f4b",
			Red:              "#ff4d4d",
			Amber:            "#ffb340",
			Green:            "#3ddc84",
			Visor:            "#0f1116",
			Highlight:        "#ffffff",
			Check:            "#0d2b1a",
			Connector:        "#ffd6e0",
			Title:            "#fdf6ec",
			Subtitle:         "#f3c6cf",
			Vignette:         "#05060d",
			Border:           "#fdf6ec",
		},
		Text: TextConfig{
			Title:         "COMMIT TO YOU",
			Subtitle:      "songs for the green light",
			TopBias:       0.25,
			TitleSize:     7.2,
			SubtitleSize:  3.2,
			LetterSpacing: 0.6,
		},
		Ground: GroundConfig{
			Horizon: 80,
			Sway:    2.5,
		},
		TrafficLight: TrafficLightConfig{
			X:          50,
			Y:          34,
			Scale:      1.1,
			Active:     LensGreen,
			CIHint:     true,
			PoleHeight: 26,
		},
		Figures: Figures{
			Left: FigureConfig{
				Side:          SideLeft,
				X:             18,
				Y:             68,
				Scale:         1,
				Stroke:        "#0b0d1c",
				Fill:          "#0b0d1c",
				StrokeWidth:   0.9,
				HeadRadius:    2.6,
				ShoulderWidth: 7.2,
				TorsoHeight:   11,
				HipWidth:      5.2,
				LegLength:     12,
				Reach:         0.85,
				Stance:        0.35,
			},
			Right: FigureConfig{
				Side:          SideRight,
				X:             82,
				Y:             68,
				Scale:         1,
				Stroke:        "#0b0d1c",
				Fill:          "#0b0d1c",
				StrokeWidth:   0.9,
				HeadRadius:    2.5,
				ShoulderWidth: 6.8,
				TorsoHeight:   10.6,
				HipWidth:      5,
				LegLength:     11.6,
				Reach:         0.85,
				Stance:        0.3,
			},
		},
		Connection: ConnectionConfig{
			Enabled: true,
			Width:   0.5,
			Opacity: 0.85,
			Dash:    []float64{1.2, 1.1},
		},
		Badge: BadgeConfig{
			Enabled: false,
			Payload: "",
			X:       86,
			Y:       86,
			Size:    9,
			Color:   "#fdf6ec",
		},
		Vignette: VignetteConfig{Strength: 0.55},
		Frame: FrameConfig{
			Inset:   2.5,
			Width:   0.35,
			Opacity: 0.6,
		},
	}
}
