//go:build linux

package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/cover/internal/render/layout"
	"github.com/rook-computer/cover/internal/scene"
)

// DefaultFBDevice is the framebuffer opened when FBRenderer.Device is empty.
const DefaultFBDevice = "/dev/fb0"

// FBRenderer shows a scene letterboxed on the Linux framebuffer. The cover
// is rasterized once at RenderSize and scaled to the largest centered
// square the screen allows.
type FBRenderer struct {
	Device     string
	RenderSize int
	// Margin keeps this many pixels free on every side of the cover.
	Margin int
	Logger Logger

	mu      sync.Mutex
	dev     *fb.Device
	frame   *image.RGBA
	running atomic.Bool
}

func NewFBRenderer() *FBRenderer {
	return &FBRenderer{Device: DefaultFBDevice, RenderSize: DefaultSize, Logger: nopLogger{}}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	path := r.Device
	if path == "" {
		path = DefaultFBDevice
	}
	dev, err := fb.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNoFramebuffer, path, err)
	}
	r.mu.Lock()
	r.dev = dev
	r.mu.Unlock()

	bounds := dev.Bounds()
	r.logger().Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev != nil {
		r.dev.Close()
		r.dev = nil
	}
	return nil
}

// Show rasterizes s and blits it.
func (r *FBRenderer) Show(s *scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running.Load() || r.dev == nil {
		return ErrNoFramebuffer
	}

	cover, err := NewRasterRenderer(r.RenderSize).Rasterize(s)
	if err != nil {
		return err
	}

	bounds := r.dev.Bounds()
	frame := image.NewRGBA(bounds)
	draw.Draw(frame, bounds, &image.Uniform{C: Letterbox}, image.Point{}, draw.Src)
	square := layout.Letterbox(bounds, r.Margin)
	xdraw.CatmullRom.Scale(frame, square, cover, cover.Bounds(), xdraw.Over, nil)

	r.frame = frame
	blitToFB(r.dev, frame)
	r.logger().Infof("fb", "cover shown at %dx%d", square.Dx(), square.Dy())
	return nil
}

// RunLoop re-blits the last frame once a second until ctx is done, so
// console output cannot linger over the cover.
func (r *FBRenderer) RunLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.running.Load() && r.dev != nil && r.frame != nil {
				blitToFB(r.dev, r.frame)
			}
			r.mu.Unlock()
		}
	}
}

func (r *FBRenderer) logger() Logger {
	if r.Logger == nil {
		return nopLogger{}
	}
	return r.Logger
}

// blitToFB copies frame onto the device pixel by pixel with opaque alpha.
func blitToFB(dev *fb.Device, frame *image.RGBA) {
	bounds := dev.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := frame.RGBAAt(x, y)
			dev.Set(x, y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
