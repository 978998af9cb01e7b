package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rook-computer/cover/internal/app"
	"github.com/rook-computer/cover/internal/config"
)

// coverFlags are the per-invocation cover settings shared by render,
// serve and display.
type coverFlags struct {
	title, subtitle      string
	width, height, class string
	patch                string
}

func (f *coverFlags) register(cmd *cobra.Command, svgAttrs bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "title text, replaces the configured title")
	fs.StringVar(&f.subtitle, "subtitle", "", "subtitle text, replaces the configured subtitle")
	fs.StringVar(&f.patch, "patch", "", "cover patch as inline JSON, or @file to read it from a file")
	if svgAttrs {
		fs.StringVar(&f.width, "width", "", "width attribute of the SVG root")
		fs.StringVar(&f.height, "height", "", "height attribute of the SVG root")
		fs.StringVar(&f.class, "class", "", "class attribute of the SVG root")
	}
}

func (f *coverFlags) overrides() config.Overrides {
	return config.Overrides{
		Title:    f.title,
		Subtitle: f.subtitle,
		Width:    f.width,
		Height:   f.height,
		Class:    f.class,
	}
}

// flagPatch decodes --patch.
func (f *coverFlags) flagPatch() (*config.Patch, error) {
	data := []byte(f.patch)
	if name, ok := strings.CutPrefix(f.patch, "@"); ok {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read patch file: %w", err)
		}
		data = b
	}
	return config.ParsePatchJSON(data)
}

// request layers the configured cover and --patch under the flag overrides.
func (f *coverFlags) request(opts *rootOptions) (app.Request, error) {
	p, err := f.flagPatch()
	if err != nil {
		return app.Request{}, err
	}
	return app.Request{
		Patches:   []*config.Patch{opts.cover, p},
		Overrides: f.overrides(),
	}, nil
}

// textPatch carries --title and --subtitle as a patch, for the server
// where per-request overrides come from the query string.
func (f *coverFlags) textPatch() *config.Patch {
	if f.title == "" && f.subtitle == "" {
		return nil
	}
	var t config.TextPatch
	if f.title != "" {
		t.Title = config.Ptr(f.title)
	}
	if f.subtitle != "" {
		t.Subtitle = config.Ptr(f.subtitle)
	}
	return &config.Patch{Text: &t}
}
