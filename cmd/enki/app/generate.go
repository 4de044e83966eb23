package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/enkigen/enki/compiler/gen"
	"github.com/enkigen/enki/compiler/load"
)

type Generate struct {
	cmd *cobra.Command

	mainopts *Options
	flags    FileConfig
	watch    bool
	debounce time.Duration
}

func NewGenerate(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <options> [model]",
		Short: "generate the mapping artifacts of a model",
		Long: `
Generate reads a model document (YAML, JSON or msgpack snapshot) and
writes mapping.hbm.xml, indexes.hbm.xml and enki.properties into the
target directory. Flags override the configuration file.
`,
		Args:             cobra.MaximumNArgs(1),
		TraverseChildren: true,
	}

	c := &Generate{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(cmd.Context(), args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.flags.Target, "target", "o", "", "output directory")
	flags.StringVarP(&c.flags.TablePrefix, "table-prefix", "p", "", "prefix of every table, index and view name")
	flags.BoolVar(&c.flags.Plugin, "plugin", false, "generate a plugin extending another metamodel")
	flags.BoolVar(&c.flags.Views, "views", false, "generate class and type views")
	flags.StringSliceVarP(&c.flags.Dialects, "dialect", "d", nil, "dialects receiving index and view DDL")
	flags.StringVar(&c.flags.IncludedPackages, "include", "", "comma separated package paths to generate")
	flags.StringVar(&c.flags.ExtentName, "extent", "", "extent name recorded in the properties file")
	flags.StringVar(&c.flags.Initializer, "initializer", "", "initializer class name")
	flags.StringVar(&c.flags.Catalog, "catalog", "", "also write a Go catalog in this package")
	flags.BoolVarP(&c.watch, "watch", "w", false, "regenerate when the model or configuration changes")
	flags.DurationVar(&c.debounce, "debounce", DefaultDebounce, "quiet period before regenerating in watch mode")
	return cmd
}

// config reads the configuration file and applies the flags set on the
// command line.
func (c *Generate) config(args []string) (*FileConfig, error) {
	fc, err := ReadConfig(c.mainopts.config)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		fc.Model = args[0]
	}
	flags := c.cmd.Flags()
	if flags.Changed("target") {
		fc.Target = c.flags.Target
	}
	if flags.Changed("table-prefix") {
		fc.TablePrefix = c.flags.TablePrefix
	}
	if flags.Changed("plugin") {
		fc.Plugin = c.flags.Plugin
	}
	if flags.Changed("views") {
		fc.Views = c.flags.Views
	}
	if flags.Changed("dialect") {
		fc.Dialects = c.flags.Dialects
	}
	if flags.Changed("include") {
		fc.IncludedPackages = c.flags.IncludedPackages
	}
	if flags.Changed("extent") {
		fc.ExtentName = c.flags.ExtentName
	}
	if flags.Changed("initializer") {
		fc.Initializer = c.flags.Initializer
	}
	if flags.Changed("catalog") {
		fc.Catalog = c.flags.Catalog
	}
	if fc.Model == "" {
		return nil, fmt.Errorf("no model given")
	}
	return fc, nil
}

func (c *Generate) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := c.mainopts.Logger(c.cmd.ErrOrStderr())
	fc, err := c.config(args)
	if err != nil {
		return err
	}
	if err := c.generate(ctx, fc, log); err != nil {
		return err
	}
	if !c.watch {
		return nil
	}

	files := []string{fc.Model}
	if c.mainopts.config != "" {
		files = append(files, c.mainopts.config)
	}
	w, err := NewWatcher(files, c.debounce, log)
	if err != nil {
		return err
	}
	log.Info("watching for changes", "files", files)
	return w.Run(ctx, func() {
		// The configuration may have changed as well.
		fc, err := c.config(args)
		if err == nil {
			err = c.generate(ctx, fc, log)
		}
		if err != nil {
			log.Error("regeneration failed", "error", err)
		}
	})
}

func (c *Generate) generate(ctx context.Context, fc *FileConfig, log *slog.Logger) error {
	model, err := load.LoadFile(fc.Model)
	if err != nil {
		return err
	}
	cfg, err := gen.NewConfig(fc.Options(log)...)
	if err != nil {
		return err
	}
	arts, err := gen.Generate(ctx, model, cfg)
	if err != nil {
		return err
	}
	for _, f := range arts.Files() {
		fmt.Fprintf(c.cmd.OutOrStdout(), "%s\n", f)
	}
	return nil
}
