// Package main implements examgrader, the command-line counterpart of the
// grading server.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/exam-checker/internal/bootstrap"
	"github.com/phrazzld/exam-checker/internal/cli"
	"github.com/phrazzld/exam-checker/internal/config"
	"github.com/phrazzld/exam-checker/internal/service/grading"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand(buildGrader, cli.StandardStreams())
	if err := cli.Execute(ctx, cmd); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildGrader runs the same wiring as the server.
func buildGrader(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	opts ...grading.Option,
) (grading.Service, io.Closer, error) {
	g, err := bootstrap.Build(ctx, cfg, logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	return g.Service, g, nil
}
