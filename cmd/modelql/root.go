package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	configPath string
	logLevel   string
	logger     zerolog.Logger
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}
	cmd := &cobra.Command{
		Use:   "modelql",
		Short: "Compile model definitions into a GraphQL schema and Go resolvers",
		Long: `modelql compiles declarative model files into a GraphQL schema, an
example operations document, Go models and one resolver per model.

Examples:
  modelql generate                      # uses ./modelql.yml
  modelql generate --watch
  modelql validate models/*.yml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := zerolog.ParseLevel(a.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", a.logLevel)
			}
			a.logger = newLogger(cmd.ErrOrStderr(), level)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", DefaultProjectFile, "project file path")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	cmd.AddCommand(a.newGenerateCmd(), a.newValidateCmd())
	return cmd
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// project loads the project file and applies the flags set on cmd. A
// missing default project file is not an error, the flags alone may
// describe the project.
func (a *app) project(cmd *cobra.Command, f *projectFlags) (*Project, error) {
	p := &Project{}
	switch loaded, err := LoadProject(a.configPath); {
	case err == nil:
		p = loaded
	case errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config"):
		a.logger.Debug().Str("path", a.configPath).Msg("no project file")
	default:
		return nil, err
	}
	f.apply(cmd, p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		level, _ := zerolog.ParseLevel(p.LogLevel)
		a.logger = a.logger.Level(level)
	}
	return p, nil
}

// projectFlags are the flags overriding project file values.
type projectFlags struct {
	models  []string
	target  string
	pkg     string
	gqlgen  string
	workers int
	disable []string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.models, "models", "m", nil, "model files or glob patterns")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "output directory")
	cmd.Flags().StringVarP(&f.pkg, "package", "p", "", "import path of the generated Go package")
	cmd.Flags().StringVar(&f.gqlgen, "gqlgen", "", "gqlgen.yml to create or update")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "number of files written in parallel")
	cmd.Flags().StringSliceVar(&f.disable, "disable", nil, "features to disable (document, models, resolver)")
}

func (f *projectFlags) apply(cmd *cobra.Command, p *Project) {
	flags := cmd.Flags()
	if flags.Changed("models") {
		p.Models = f.models
	}
	if flags.Changed("target") {
		p.Target = f.target
	}
	if flags.Changed("package") {
		p.Package = f.pkg
	}
	if flags.Changed("gqlgen") {
		p.GQLGen = f.gqlgen
	}
	if flags.Changed("workers") {
		p.Workers = f.workers
	}
	if flags.Changed("disable") {
		p.Disable = f.disable
	}
}
