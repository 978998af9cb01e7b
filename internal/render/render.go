package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rook-computer/cover/internal/scene"
)

var (
	// ErrUnsupportedFormat is returned for output formats other than svg and png.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrNoFramebuffer is returned when no framebuffer device can be opened.
	ErrNoFramebuffer = errors.New("framebuffer not available")
)

// Renderer turns a composed scene into an output document.
type Renderer interface {
	Render(w io.Writer, s *scene.Scene) error
	ContentType() string
}

// Display shows a scene on a screen until stopped.
type Display interface {
	Start(ctx context.Context) error
	Stop() error
	Show(s *scene.Scene) error
	// RunLoop keeps the shown scene on screen until ctx is done.
	RunLoop(ctx context.Context)
}

// Format names an output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts a format name or a file extension, case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")); f {
	case FormatSVG, FormatPNG:
		return f, nil
	case "":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// New returns the renderer for format. size is the PNG edge length and is
// ignored for SVG.
func New(format Format, size int) (Renderer, error) {
	switch format {
	case FormatSVG:
		return NewSVGRenderer(), nil
	case FormatPNG:
		return NewRasterRenderer(size), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
}

// Logger is the logging shape the framebuffer display reports through.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}
