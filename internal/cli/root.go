// Package cli is the modelctl command tree. Every subcommand loads the
// configuration first, so a missing token fails before any network call.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"model-registry-ops/internal/app"
	"model-registry-ops/internal/config"
)

// Options swaps out the configuration loader and app constructor, mostly
// for tests. Zero values use config.Load, app.New and os.Stdout.
type Options struct {
	LoadConfig func() (*config.Config, error)
	NewApp     func(ctx context.Context, cfg *config.Config) (*app.App, error)
	Out        io.Writer
}

type state struct {
	opts      Options
	app       *app.App
	modelName string
	logLevel  string
}

// Execute runs modelctl with args and closes the app afterwards, whether
// or not the command succeeded.
func Execute(ctx context.Context, opts Options, args []string) error {
	root, rt := newRootCmd(opts)
	return rt.execute(ctx, root, args)
}

func NewRootCmd(opts Options) *cobra.Command {
	root, _ := newRootCmd(opts)
	return root
}

func newRootCmd(opts Options) (*cobra.Command, *state) {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.NewApp == nil {
		opts.NewApp = app.New
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	rt := &state{opts: opts}

	root := &cobra.Command{
		Use:           "modelctl",
		Short:         "Promote, register and evaluate models in an MLflow model registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&rt.modelName, "model", "m", "", "Registered model name (defaults to MODEL_NAME or my_model)")
	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults to LOGGER_LEVEL)")

	root.AddCommand(
		newPromoteCmd(rt),
		newRegisterCmd(rt),
		newEvaluateCmd(rt),
		newResolveCmd(rt),
		newHistoryCmd(rt),
	)
	return root, rt
}

func (rt *state) execute(ctx context.Context, root *cobra.Command, args []string) error {
	defer rt.close()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (rt *state) close() {
	if rt.app != nil {
		rt.app.Close()
		rt.app = nil
	}
}

func (rt *state) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := rt.opts.LoadConfig()
	if err != nil {
		return err
	}
	if rt.modelName != "" {
		cfg.Registry.ModelName = rt.modelName
	}
	if rt.logLevel != "" {
		cfg.Logger.Level = rt.logLevel
	}
	app.InitLogger(cfg)

	a, err := rt.opts.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	rt.app = a
	return nil
}

func (rt *state) model() string {
	return rt.app.Config.Registry.ModelName
}

func (rt *state) printf(format string, args ...interface{}) {
	fmt.Fprintf(rt.opts.Out, format, args...)
}
