// Package cli implements the examgrader command tree. The grading pipeline
// is supplied by the caller so the commands can be exercised without the OCR
// engine.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/phrazzld/exam-checker/internal/config"
	"github.com/phrazzld/exam-checker/internal/platform/logger"
	"github.com/phrazzld/exam-checker/internal/service/grading"
	"github.com/spf13/cobra"
)

// GraderFactory builds a grading service from configuration. The closer
// releases whatever the service holds and may be nil.
type GraderFactory func(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	opts ...grading.Option,
) (grading.Service, io.Closer, error)

// Streams are where commands write results and diagnostics.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// StandardStreams returns stdout and stderr.
func StandardStreams() Streams {
	return Streams{Out: os.Stdout, Err: os.Stderr}
}

type rootOptions struct {
	configPath string
	logLevel   string
	noColor    bool

	factory GraderFactory
	streams Streams
}

// NewRootCommand assembles the examgrader command tree.
func NewRootCommand(factory GraderFactory, streams Streams) *cobra.Command {
	opts := &rootOptions{factory: factory, streams: streams}

	cmd := &cobra.Command{
		Use:   "examgrader",
		Short: "Grade exam answers against a reference answer key",
		Long: "examgrader scores student answers on keyword coverage, grammar and " +
			"semantic similarity using the same pipeline as the grading server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default: ./config.yaml when present)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr: debug, info, warn or error")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(
		newGradeCommand(opts),
		newParseCommand(opts),
		newTokenCommand(opts),
	)
	return cmd
}

// Execute runs the command tree and reports a failure on stderr.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("Error: %v", err))
	}
	return err
}

// load reads configuration and sets up a logger on stderr.
func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.logLevel != "" {
		cfg.Server.LogLevel = o.logLevel
	}

	l, err := logger.SetupWithWriter(cfg.Server, o.streams.Err)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, l.With(slog.String("component", "examgrader")), nil
}

func (o *rootOptions) useColor() bool {
	return !o.noColor && !color.NoColor
}

// withGrader builds the pipeline, runs fn and releases the pipeline.
func (o *rootOptions) withGrader(
	ctx context.Context,
	fn func(ctx context.Context, svc grading.Service) error,
	opts ...grading.Option,
) error {
	cfg, l, err := o.load()
	if err != nil {
		return err
	}

	ctx = logger.WithLogger(ctx, l)
	svc, closer, err := o.factory(ctx, cfg, l, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize grading pipeline: %w", err)
	}
	if closer != nil {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				l.Warn("failed to release grading pipeline", slog.String("error", cerr.Error()))
			}
		}()
	}

	return fn(ctx, svc)
}
