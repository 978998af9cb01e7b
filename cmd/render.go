package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rook-computer/cover/internal/app"
	"github.com/rook-computer/cover/internal/render"
	"github.com/rook-computer/cover/internal/state"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var cf coverFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the cover as SVG or PNG",
		Long: `Render composes the cover from the defaults, the "cover" section of the
config file and --patch, then writes it to --out or stdout.

The format comes from --format, else from the extension of --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := cf.request(opts)
			if err != nil {
				return err
			}
			out := opts.cfg.Output
			format, err := outputFormat(out.Format, out.Path)
			if err != nil {
				return err
			}
			req.Format = format
			req.Size = out.Size

			a := app.New(state.NewStore(0), nil)
			a.Logger = opts.logger()
			body, _, err := a.Render(cmd.Context(), req)
			if err != nil {
				return err
			}

			if out.Path == "" || out.Path == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(out.Path, body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out.Path, err)
			}
			a.Logger.Infof("render", "wrote %s", out.Path)
			return nil
		},
	}
	cf.register(cmd, true)

	fs := cmd.Flags()
	fs.String("format", "", "output format: svg or png (default from the --out extension, else svg)")
	fs.Int("size", render.DefaultSize, "PNG edge length in pixels")
	fs.StringP("out", "o", "", "output file (default stdout)")
	bindFlag(fs, "format", "output.format")
	bindFlag(fs, "size", "output.size")
	bindFlag(fs, "out", "output.path")
	return cmd
}

// outputFormat returns format when set, else the format named by the
// extension of path, else svg.
func outputFormat(format, path string) (render.Format, error) {
	if format == "" {
		if ext := filepath.Ext(path); ext != "" {
			if f, err := render.ParseFormat(ext); err == nil {
				return f, nil
			}
		}
	}
	return render.ParseFormat(format)
}
