package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pshcalc/pshcalc/internal/config"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile  string
	logLevel    string
	logFormat   string
	metricsAddr string
	progress    time.Duration
	list        bool
	limit       int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "pshcalc",
		Short: "Count finite algebraic structures by exhaustive enumeration",
		Long: `pshcalc walks every candidate table of a finite structure and keeps the
ones that satisfy its laws: associative operations, monoids, categories on
a fixed skeleton, and presheaves (monoid acts) over them.

Configuration is read from defaults, then --config, then PSHCALC_*
environment variables, then flags.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Path to configuration file (YAML or JSON)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the job runs")
	pf.DurationVar(&opts.progress, "progress", 0, "Minimum interval between progress log lines (0 disables)")
	pf.BoolVar(&opts.list, "list", false, "List the structures found")
	pf.IntVar(&opts.limit, "limit", 0, "Maximum number of listed structures (0 = no limit)")

	root.AddCommand(
		newSemigroupsCmd(opts),
		newMonoidsCmd(opts),
		newCategoriesCmd(opts),
		newActsCmd(opts),
		newTriplesCmd(opts),
		newValidateCmd(),
	)
	return root
}

func newSemigroupsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "semigroups [n]",
		Short: "Count associative binary operations on n elements",
		Args:  cobra.MaximumNArgs(1),
		Example: `  pshcalc semigroups 3
  pshcalc semigroups 3 --list --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, config.JobSemigroups, func(j *config.JobConfig) error {
				return intArg(args, 0, "n", &j.Size)
			})
		},
	}
}

func newMonoidsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "monoids [n]",
		Short: "Count monoids on n elements with identity 0",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, config.JobMonoids, func(j *config.JobConfig) error {
				return intArg(args, 0, "n", &j.Size)
			})
		},
	}
}

func newActsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "acts [n] [m]",
		Short: "Count the acts on m points of every monoid on n elements",
		Args:  cobra.MaximumNArgs(2),
		Example: `  pshcalc acts 3 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, config.JobActs, func(j *config.JobConfig) error {
				if err := intArg(args, 0, "n", &j.Size); err != nil {
					return err
				}
				return intArg(args, 1, "m", &j.Sections)
			})
		},
	}
}

func newTriplesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "triples [m] [o]",
		Short: "Average the composable triples over all pairs of maps M → O",
		Args:  cobra.MaximumNArgs(2),
		Example: `  pshcalc triples 4 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, config.JobTriples, func(j *config.JobConfig) error {
				if err := intArg(args, 0, "m", &j.Size); err != nil {
					return err
				}
				return intArg(args, 1, "o", &j.Objects)
			})
		},
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	var (
		objects int
		source  string
		target  string
		fibers  string
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Count categories on a fixed skeleton of objects and arrows",
		Args:  cobra.NoArgs,
		Example: `  pshcalc categories --objects 2 --source 0 --target 1
  pshcalc categories --objects 1 --source 0,0 --target 0,0 --fibers 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, config.JobCategories, func(j *config.JobConfig) error {
				flags := cmd.Flags()
				if flags.Changed("objects") {
					j.Objects = objects
				}
				for _, f := range []struct {
					name string
					raw  string
					dst  *[]int
				}{
					{"source", source, &j.Source},
					{"target", target, &j.Target},
					{"fibers", fibers, &j.Fibers},
				} {
					if !flags.Changed(f.name) {
						continue
					}
					ns, err := config.ParseInts(f.raw)
					if err != nil {
						return fmt.Errorf("--%s: %w", f.name, err)
					}
					*f.dst = ns
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&objects, "objects", 0, "Number of objects")
	cmd.Flags().StringVar(&source, "source", "", "Comma-separated sources of the non-identity arrows")
	cmd.Flags().StringVar(&target, "target", "", "Comma-separated targets of the non-identity arrows")
	cmd.Flags().StringVar(&fibers, "fibers", "", "Also count presheaves with these fiber sizes, one per object")
	return cmd
}

// intArg parses args[i] into dst when present.
func intArg(args []string, i int, name string, dst *int) error {
	if i >= len(args) {
		return nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, args[i], err)
	}
	*dst = n
	return nil
}
