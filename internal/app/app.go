package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/render"
	"github.com/rook-computer/cover/internal/scene"
	"github.com/rook-computer/cover/internal/state"
	"github.com/rook-computer/cover/internal/system"
)

// Request describes one cover. Patches are merged over the defaults in
// order, then the overrides are applied.
type Request struct {
	Patches   []*config.Patch
	Overrides config.Overrides
	Format    render.Format
	// Size is the PNG edge length; zero means render.DefaultSize.
	Size int
}

// Config returns the effective configuration of the request.
func (req Request) Config() config.Config {
	cfg := config.Default()
	for _, p := range req.Patches {
		cfg = config.Merge(cfg, p)
	}
	return req.Overrides.Apply(cfg)
}

type App struct {
	Cache  *state.Store
	Screen render.Display
	Logger Logger

	// ExitKey stops Display when pressed on a local keyboard. Zero disables
	// the watcher.
	ExitKey uint16
	// Console prepares the virtual console for Display and returns its undo.
	Console func(system.Logger) (restore func())

	exitOnce atomic.Bool
	exitCh   chan error

	fallbackOnce  sync.Once
	fallbackCache *state.Store
}

func New(cache *state.Store, screen render.Display) *App {
	return &App{
		Cache:   cache,
		Screen:  screen,
		Logger:  NoopLogger{},
		ExitKey: system.KeyF4,
		Console: system.EnterGraphics,
		exitCh:  make(chan error, 1),
	}
}

// Render resolves, composes and encodes a cover, serving repeats from the
// cache. It returns the document and its content type.
func (app *App) Render(ctx context.Context, req Request) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	format, err := render.ParseFormat(string(req.Format))
	if err != nil {
		return nil, "", err
	}
	size := 0
	if format == render.FormatPNG {
		size = render.ClampSize(req.Size)
	}

	cfg := req.Config()
	fp, err := state.Fingerprint(cfg, req.Overrides)
	if err != nil {
		return nil, "", err
	}
	key := state.Key{Format: string(format), Size: size, Fingerprint: fp}

	start := time.Now()
	entry, hit, err := app.cache().GetOrRender(key, func() (state.Entry, error) {
		r, err := render.New(format, size)
		if err != nil {
			return state.Entry{}, err
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, scene.Compose(cfg, req.Overrides)); err != nil {
			return state.Entry{}, fmt.Errorf("render %s: %w", format, err)
		}
		return state.Entry{Body: buf.Bytes(), ContentType: r.ContentType()}, nil
	})
	if err != nil {
		app.logger().Errorf("render", "%s: %v", key, err)
		return nil, "", err
	}
	app.logger().Infof("render", "%s %d bytes hit=%t in %s", format, len(entry.Body), hit, time.Since(start))
	return entry.Body, entry.ContentType, nil
}

// Exit requests Display to return err. Only the first request counts.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Display shows the cover on the screen until ctx is done, the exit key is
// pressed or Exit is called. Cancelling ctx is a normal stop.
func (app *App) Display(ctx context.Context, req Request) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)

	screen := app.Screen
	if screen == nil {
		fb := render.NewFBRenderer()
		fb.Logger = app.logger()
		screen = fb
	}
	if err := screen.Start(ctx); err != nil {
		app.logger().Errorf("app", "display start error: %v", err)
		return err
	}
	defer screen.Stop()

	if app.Console != nil {
		restore := app.Console(app.logger())
		defer restore()
	}

	s := scene.Compose(req.Config(), req.Overrides)
	if err := screen.Show(s); err != nil {
		return fmt.Errorf("show %q: %w", s.Label, err)
	}
	app.logger().Infof("app", "showing %q", s.Label)

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		screen.RunLoop(loopCtx)
	}()
	if app.ExitKey != 0 {
		system.WatchExitKey(loopCtx, app.logger(), app.ExitKey, func() { app.Exit(nil) })
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *App) cache() *state.Store {
	if app.Cache != nil {
		return app.Cache
	}
	app.fallbackOnce.Do(func() { app.fallbackCache = state.NewStore(0) })
	return app.fallbackCache
}

func (app *App) logger() Logger {
	if app.Logger == nil {
		return NoopLogger{}
	}
	return app.Logger
}
