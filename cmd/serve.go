package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/rook-computer/cover/internal/app"
	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/state"
	"github.com/rook-computer/cover/internal/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var cf coverFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cover API and the preview page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagPatch, err := cf.flagPatch()
			if err != nil {
				return err
			}
			sc := web.NewServerConfig(opts.cfg.Server)
			logger := opts.logger()

			a := app.New(state.NewStore(sc.CacheEntries), nil)
			a.Logger = logger

			var handler http.Handler = web.NewDefaultMux(sc.StaticDir, web.APIV1{
				Render: a.Render,
				Base:   []*config.Patch{opts.cover, flagPatch, cf.textPatch()},
				Cache:  a.Cache,
				Logger: logger,
			})
			if sc.DevMode {
				handler = web.WithDevCORS(handler)
				logger.Infof("web", "dev mode: CORS enabled")
			}

			ctx := cmd.Context()
			srv := web.NewHTTPServer(sc.ListenAddr, handler)
			srv.Logger = logger
			if err := srv.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			return srv.Stop()
		},
	}
	cf.register(cmd, false)

	fs := cmd.Flags()
	fs.String("listen", web.DefaultListenAddr, "listen address")
	fs.Bool("dev", false, "enable permissive CORS for local UI development")
	fs.String("static", "", "serve this directory at / instead of the embedded preview page")
	fs.Int("cache", 64, "rendered covers kept in memory; 0 disables the cache")
	bindFlag(fs, "listen", "server.listen")
	bindFlag(fs, "dev", "server.dev")
	bindFlag(fs, "static", "server.static")
	bindFlag(fs, "cache", "server.cacheEntries")
	return cmd
}
