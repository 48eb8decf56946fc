package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/modelql/compiler/gen"
	"github.com/syssam/modelql/compiler/load"
)

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		flags projectFlags
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the schema, document, models and resolvers",
		Long: `Generate loads the model files of the project, compiles them and writes
the outputs to the target directory. Nothing is written when any model
fails to compile.

Examples:
  modelql generate
  modelql generate --models 'models/*.yml' --target graph --package example.com/app/graph
  modelql generate --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.project(cmd, &flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.generate(ctx, p); err != nil {
				if !watch {
					return err
				}
				a.logger.Error().Err(err).Msg("generate failed")
			}
			if !watch {
				return nil
			}
			return watchModels(ctx, p.Models, defaultDebounce, a.logger, func(ctx context.Context) error {
				return a.generate(ctx, p)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when a model file changes")
	return cmd
}

// generate runs one load, compile and write cycle.
func (a *app) generate(ctx context.Context, p *Project) error {
	start := time.Now()
	models, err := load.Files(p.Models...)
	if err != nil {
		return err
	}
	opts, err := p.Options()
	if err != nil {
		return err
	}
	opts = append(opts, gen.WithHooks(logHook(a.logger)))
	g, err := gen.Generate(ctx, models, opts...)
	if err != nil {
		return err
	}
	a.logger.Info().
		Int("models", len(g.Models)).
		Str("path", g.Target).
		Dur("elapsed", time.Since(start)).
		Msg("generated")
	return nil
}

// logHook logs the models of a graph before it is written and the outcome
// of the write.
func logHook(logger zerolog.Logger) gen.Hook {
	return func(next gen.Generator) gen.Generator {
		return gen.GenerateFunc(func(ctx context.Context, g *gen.Graph) error {
			for _, m := range g.Models {
				logger.Debug().Str("model", m.Name).Int("operations", len(m.Operations)).Msg("compiled")
			}
			if err := next.Generate(ctx, g); err != nil {
				return err
			}
			files := 1 + len(g.Resolvers)
			if g.FeatureEnabled(gen.FeatureDocument.Name) {
				files++
			}
			if g.FeatureEnabled(gen.FeatureModels.Name) {
				files++
			}
			logger.Debug().Int("files", files).Str("path", g.Target).Msg("written")
			return nil
		})
	}
}
