package config

import "strings"

// Overrides are flat render-time settings. Title and Subtitle win over the
// configured text when non-empty; Width, Height and Class are passed to the
// output document untouched.
type Overrides struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Width    string `json:"width,omitempty"`
	Height   string `json:"height,omitempty"`
	Class    string `json:"class,omitempty"`
}

// Resolve builds the effective configuration for one render:
// defaults, then patch, then the text overrides.
func Resolve(patch *Patch, o Overrides) Config {
	return o.Apply(Merge(Default(), patch))
}

// Apply returns cfg with the non-empty text overrides written over it.
// Applying the same overrides twice changes nothing.
func (o Overrides) Apply(cfg Config) Config {
	if o.Title != "" {
		cfg.Text.Title = o.Title
	}
	if o.Subtitle != "" {
		cfg.Text.Subtitle = o.Subtitle
	}
	return cfg
}

// Label is the accessible name of the rendered cover.
func Label(cfg Config) string {
	if t := strings.TrimSpace(cfg.Text.Title); t != "" {
		return t
	}
	if s := strings.TrimSpace(cfg.Text.Subtitle); s != "" {
		return s
	}
	return "cover"
}
