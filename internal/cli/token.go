package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/exam-checker/internal/platform/logger"
	"github.com/phrazzld/exam-checker/internal/service/auth"
	"github.com/spf13/cobra"
)

type tokenOptions struct {
	subject string
	ttl     time.Duration
}

func newTokenCommand(root *rootOptions) *cobra.Command {
	var opts tokenOptions

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the grading API",
		Long: "token signs an access token with auth.jwt_secret. Send it as " +
			"\"Authorization: Bearer <token>\" when the server runs with auth enabled.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToken(cmd.Context(), root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.subject, "subject", "", "client the token is issued to, stored as the sub claim")
	flags.DurationVar(&opts.ttl, "ttl", 0, "token lifetime, e.g. 24h (default: auth.token_lifetime_minutes)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runToken(ctx context.Context, root *rootOptions, opts tokenOptions) error {
	cfg, l, err := root.load()
	if err != nil {
		return err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	token, err := jwtService.GenerateToken(logger.WithLogger(ctx, l), opts.subject, opts.ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	_, err = fmt.Fprintln(root.streams.Out, token)
	return err
}
