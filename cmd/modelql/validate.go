package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/modelql/compiler/gen"
	"github.com/syssam/modelql/compiler/load"
)

func (a *app) newValidateCmd() *cobra.Command {
	var flags projectFlags
	cmd := &cobra.Command{
		Use:   "validate [model files...]",
		Short: "Check model files without writing anything",
		Long: `Validate loads the given model files, or the models of the project when
none are given, and compiles them in memory. Structural errors are listed
one per line.

Examples:
  modelql validate
  modelql validate models/library.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if len(patterns) == 0 {
				p, err := a.project(cmd, &flags)
				if err != nil {
					return err
				}
				patterns = p.Models
			}
			return a.validate(cmd.OutOrStdout(), patterns)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) validate(w io.Writer, patterns []string) error {
	models, err := load.Files(patterns...)
	if err != nil {
		var verr *load.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Fields {
				fmt.Fprintf(w, "  %s\n", fe)
			}
		}
		return err
	}
	// Resolver sources are built in memory too, which checks the validator
	// parameters.
	g, err := gen.NewGraph(gen.MustNewConfig(), models...)
	if err != nil {
		return err
	}
	var queries, mutations int
	if q := g.Schema.Schema.Query; q != nil {
		queries = len(q.Fields)
	}
	if m := g.Schema.Schema.Mutation; m != nil {
		mutations = len(m.Fields)
	}
	fmt.Fprintf(w, "%d models, %d queries, %d mutations\n", len(g.Models), queries, mutations)
	a.logger.Debug().Int("models", len(g.Models)).Msg("validated")
	return nil
}
