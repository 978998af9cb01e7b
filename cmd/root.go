package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rook-computer/cover/internal/app"
	"github.com/rook-computer/cover/internal/config"
	"github.com/rook-computer/cover/internal/observability"
)

// rootOptions is shared by every subcommand. cfg is filled in by the root
// PersistentPreRunE before any RunE runs.
type rootOptions struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.AppConfig
	cover   *config.Patch
}

func (o *rootOptions) logger() app.Logger {
	return app.NewZapLogger(observability.GetLogger())
}

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	opts := &rootOptions{v: v}

	root := &cobra.Command{
		Use:           "cover",
		Short:         "Render the COMMIT TO YOU cover poster.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindAnnotated(v, cmd.Flags()); err != nil {
				return err
			}
			if err := initializeConfig(v, opts.cfgFile); err != nil {
				return err
			}
			if err := redirectStdIO(v.GetString("stdioLog")); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "stdio log redirect error:", err)
			}

			cfg, err := config.LoadApp(v)
			if err != nil {
				observability.Initialize(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "cover"}, stderrSyncer(cmd))
				return err
			}
			observability.Initialize(cfg.Logger, stderrSyncer(cmd))
			opts.cfg = cfg

			cover, err := config.LoadPatch(v, "cover")
			if err != nil {
				return err
			}
			opts.cover = cover

			observability.GetLogger().Debug("configuration loaded",
				zap.String("version", Version),
				zap.String("config", v.ConfigFileUsed()))
			return nil
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./cover.yaml)")
	pf.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	bindFlag(pf, "stdio-log", "stdioLog")
	bindFlag(pf, "log-level", "logger.level")

	root.AddCommand(newRenderCmd(opts), newServeCmd(opts), newDisplayCmd(opts))
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	defer observability.Sync()
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	observability.GetLogger().Error("command failed", zap.Error(err))
	fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	return 1
}

// initializeConfig reads the config file and COVER_* environment variables.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cover")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("COVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("stdioLog", "COVER_STDIO_LOG"); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func stderrSyncer(cmd *cobra.Command) zapcore.WriteSyncer {
	if w := cmd.ErrOrStderr(); w != os.Stderr {
		return zapcore.AddSync(w)
	}
	return zapcore.Lock(os.Stderr)
}

const viperKeyAnnotation = "cover/viper-key"

// bindFlag marks a flag as the command-line source of a config key. Marks
// are bound when the command runs, so subcommands can share keys.
func bindFlag(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, viperKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

func bindAnnotated(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		keys := f.Annotations[viperKeyAnnotation]
		if len(keys) == 0 || err != nil {
			return
		}
		err = v.BindPFlag(keys[0], f)
	})
	return err
}
