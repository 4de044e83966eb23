package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/enkigen/enki/compiler/load"
)

type Snapshot struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

func NewSnapshot(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <options> <model>",
		Short: "convert a model document to a msgpack snapshot",
		Long: `
Snapshot validates a YAML or JSON model document and writes it as a
msgpack snapshot, which loads faster and is accepted everywhere a model
document is.
`,
		Args:             cobra.ExactArgs(1),
		TraverseChildren: true,
	}

	c := &Snapshot{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "snapshot file (default: model file with .mpk extension)")
	return cmd
}

func (c *Snapshot) Run(args []string) error {
	in := args[0]
	doc, err := load.ReadFile(in)
	if err != nil {
		return err
	}
	if _, err := load.Build(doc); err != nil {
		return fmt.Errorf("invalid model %q: %w", in, err)
	}
	data, err := load.MarshalSnapshot(doc)
	if err != nil {
		return err
	}
	out := c.output
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".mpk"
	}
	if out == in {
		return fmt.Errorf("snapshot would overwrite %q", in)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	fmt.Fprintf(c.cmd.OutOrStdout(), "%s: %d bytes\n", out, len(data))
	return nil
}
