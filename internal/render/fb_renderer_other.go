//go:build !linux

package render

import (
	"context"

	"github.com/rook-computer/cover/internal/scene"
)

const DefaultFBDevice = "/dev/fb0"

// FBRenderer is unavailable off Linux; Start always fails.
type FBRenderer struct {
	Device     string
	RenderSize int
	Margin     int
	Logger     Logger
}

func NewFBRenderer() *FBRenderer {
	return &FBRenderer{Device: DefaultFBDevice, RenderSize: DefaultSize}
}

func (r *FBRenderer) Start(ctx context.Context) error { return ErrNoFramebuffer }
func (r *FBRenderer) Stop() error                     { return nil }
func (r *FBRenderer) Show(s *scene.Scene) error       { return ErrNoFramebuffer }
func (r *FBRenderer) RunLoop(ctx context.Context)     { <-ctx.Done() }
