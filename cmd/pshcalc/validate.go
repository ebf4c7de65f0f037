package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pshcalc/pshcalc/internal/cat"
	"github.com/pshcalc/pshcalc/internal/config"
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
	"github.com/pshcalc/pshcalc/internal/psh"
)

// validateOptions holds the tables given to the validate command.
type validateOptions struct {
	objects     int
	source      string
	target      string
	composition string
	pi          string
	action      string
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check one category, and optionally one presheaf over it, against the laws",
		Long: `validate checks a single composition table, and when --pi is given a
single action table, and reports the first violated law with its witness.

Tables list the entries for the non-identity morphisms only. Entry g∘f of
the composition table sits at (f-n) + (g-n)·k; entry s·f of the action
table at s + (f-n)·S.`,
		Example: `  pshcalc validate --objects 1 --source 0,0 --target 0,0 --composition 2,0,0,1
  pshcalc validate --objects 1 --source 0 --target 0 --composition 0 --pi 0,0 --action 1,0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.objects, "objects", 1, "Number of objects")
	f.StringVar(&opts.source, "source", "", "Comma-separated sources of the non-identity arrows")
	f.StringVar(&opts.target, "target", "", "Comma-separated targets of the non-identity arrows")
	f.StringVar(&opts.composition, "composition", "", "Comma-separated composition table")
	f.StringVar(&opts.pi, "pi", "", "Comma-separated object of every section")
	f.StringVar(&opts.action, "action", "", "Comma-separated action table")
	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	lists := make(map[string][]int)
	for name, raw := range map[string]string{
		"source":      opts.source,
		"target":      opts.target,
		"composition": opts.composition,
		"pi":          opts.pi,
		"action":      opts.action,
	} {
		ns, err := config.ParseInts(raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		lists[name] = ns
	}

	var c *cat.Category
	if err := malformed(func() {
		c = cat.New(opts.objects, lists["source"], lists["target"], lists["composition"])
	}); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "category ok: %d objects, %d morphisms\n", c.Objects(), c.Morphisms())

	if !cmd.Flags().Changed("pi") {
		return nil
	}
	var p *psh.Presheaf
	if err := malformed(func() {
		p = psh.New(c, lists["pi"], lists["action"])
	}); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "presheaf ok: %d sections\n", p.Sections())
	return nil
}

// malformed runs build and reports a constructor panic on malformed tables
// as a configuration error.
func malformed(build func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = lawerrors.NewConfigError(fmt.Sprint(p))
		}
	}()
	build()
	return nil
}
