package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rook-computer/cover/internal/app"
	"github.com/rook-computer/cover/internal/render"
	"github.com/rook-computer/cover/internal/state"
	"github.com/rook-computer/cover/internal/system"
)

func newDisplayCmd(opts *rootOptions) *cobra.Command {
	var (
		cf      coverFlags
		device  string
		margin  int
		exitKey string
	)
	cmd := &cobra.Command{
		Use:   "display",
		Short: "Show the cover full-screen on the Linux framebuffer",
		Long: `Display letterboxes the cover onto the framebuffer and keeps it there until
interrupted or until the exit key is pressed on a local keyboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := cf.request(opts)
			if err != nil {
				return err
			}
			var key uint16
			if exitKey != "none" {
				k, ok := system.ParseKey(exitKey)
				if !ok {
					return fmt.Errorf("unknown exit key %q", exitKey)
				}
				key = k
			}
			logger := opts.logger()

			fb := render.NewFBRenderer()
			fb.Device = device
			fb.Margin = margin
			fb.RenderSize = render.ClampSize(opts.cfg.Output.Size)
			fb.Logger = logger

			a := app.New(state.NewStore(0), fb)
			a.Logger = logger
			a.ExitKey = key
			return a.Display(cmd.Context(), req)
		},
	}
	cf.register(cmd, false)

	fs := cmd.Flags()
	fs.StringVar(&device, "device", render.DefaultFBDevice, "framebuffer device")
	fs.IntVar(&margin, "margin", 0, "margin around the cover in screen pixels")
	fs.StringVar(&exitKey, "exit-key", "f4", "key that stops the display: f4, esc, q or none")
	fs.Int("size", render.DefaultSize, "edge length the cover is rasterized at before scaling")
	bindFlag(fs, "size", "output.size")
	return cmd
}
