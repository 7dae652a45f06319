package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fasthttp/pathrouter/radix"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	static    bool
	separator string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "routecheck",
		Short: "Check, match and dump route tables",
		Long: `routecheck compiles a route table file the way the router does at
startup, so conflicts and pattern errors show up before deploying.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.static, "static", false, "Fold literal-only routes into the static lookup table")
	flags.StringVar(&opts.separator, "separator", string(radix.DefaultSeparator), "Byte a variable never crosses")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log the compilation summary to stderr")

	rootCmd.AddCommand(
		checkCmd(opts),
		matchCmd(opts),
		dumpCmd(opts),
	)

	return rootCmd
}

// routerOptions turns the global flags into compile options.
func (o *globalOptions) routerOptions(stderr io.Writer) ([]radix.Option, error) {
	if len(o.separator) != 1 {
		return nil, fmt.Errorf("separator must be a single byte, got %q", o.separator)
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return []radix.Option{
		radix.WithSeparator(o.separator[0]),
		radix.WithStaticFastPath(o.static),
		radix.WithLogger(logger),
	}, nil
}

func (o *globalOptions) load(cmd *cobra.Command, file string) (*radix.Router[string], error) {
	opts, err := o.routerOptions(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return loadRoutes(file, opts...)
}
