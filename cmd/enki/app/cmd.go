// Package app implements the enki command line.
package app

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Options are shared by every subcommand.
type Options struct {
	config  string
	verbose bool
	quiet   bool
}

// Logger returns a text logger writing to w at the level selected by the
// verbosity flags.
func (o *Options) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case o.verbose:
		level = slog.LevelDebug
	case o.quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// New returns the root command.
func New() *cobra.Command {
	opts := &Options{}

	maincmd := &cobra.Command{
		Use:   "enki <options> <cmd> <args>",
		Short: "generate Hibernate mappings from MOF metamodels",
		Long: `
enki translates a MOF metamodel into a Hibernate mapping document, the
index and view DDL for every supported database and the properties
file consumed by the repository runtime.
`,
		SilenceUsage:     true,
		SilenceErrors:    true,
		TraverseChildren: true,
	}

	flags := maincmd.PersistentFlags()
	flags.StringVarP(&opts.config, "config", "c", "", "YAML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log generation phases")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "log warnings and errors only")
	maincmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	maincmd.AddCommand(NewGenerate(opts))
	maincmd.AddCommand(NewSnapshot(opts))
	maincmd.AddCommand(NewApply(opts))
	return maincmd
}
