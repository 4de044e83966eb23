package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	// Drivers of the dialects that have one.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/enkigen/enki/compiler/gen"
	"github.com/enkigen/enki/dialect"
	"github.com/enkigen/enki/dialect/hbm"
	"github.com/enkigen/enki/dialect/sql"
)

type Apply struct {
	cmd *cobra.Command

	mainopts *Options
	dialect  string
	dsn      string
	drop     bool
	tx       bool
}

func NewApply(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <options> [indexes.hbm.xml]",
		Short: "apply generated indexes and views to a database",
		Long: `
Apply executes the create statements of the database objects in a
generated indexes file against a live database. Only objects scoped to
the selected dialect run. Without an argument the indexes file of the
configured target directory is used.
`,
		Args:             cobra.MaximumNArgs(1),
		TraverseChildren: true,
	}

	c := &Apply{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(cmd.Context(), args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.dialect, "dialect", "d", "", "database dialect (mysql, postgres or sqlite)")
	flags.StringVar(&c.dsn, "dsn", os.Getenv("ENKI_DSN"), "data source name")
	flags.BoolVar(&c.drop, "drop", false, "run the drop statements instead")
	flags.BoolVar(&c.tx, "tx", false, "run all statements in one transaction")
	return cmd
}

func (c *Apply) file(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	fc, err := ReadConfig(c.mainopts.config)
	if err != nil {
		return "", err
	}
	if fc.Target == "" {
		return "", fmt.Errorf("no indexes file given and no target configured")
	}
	return filepath.Join(fc.Target, gen.IndexesFile), nil
}

func (c *Apply) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := dialect.Parse(c.dialect)
	if err != nil {
		return err
	}
	if c.dsn == "" {
		return fmt.Errorf("no data source name given")
	}
	path, err := c.file(args)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read indexes: %w", err)
	}
	defer f.Close()
	objects, err := hbm.ReadDatabaseObjects(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	drv, err := sql.Open(d, c.dsn)
	if err != nil {
		return err
	}
	defer drv.Close()

	opts := []sql.Option{sql.WithLogger(c.mainopts.Logger(c.cmd.ErrOrStderr()))}
	if c.tx {
		opts = append(opts, sql.WithTx())
	}
	run := sql.Apply
	if c.drop {
		run = sql.Drop
	}
	stats, err := run(ctx, drv, objects, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.cmd.OutOrStdout(), "%s: %s\n", d, stats)
	return nil
}
