package cli

import (
	"context"
	"fmt"

	"github.com/phrazzld/exam-checker/internal/parser"
	"github.com/phrazzld/exam-checker/internal/report"
	"github.com/phrazzld/exam-checker/internal/service/grading"
	"github.com/spf13/cobra"
)

type parseOptions struct {
	reference   bool
	handwritten bool
	asJSON      bool
}

func newParseCommand(root *rootOptions) *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Show the question and answer pairs found in a document",
		Long: "parse extracts a document the way grade would and lists the pairs it finds. " +
			"Use it to check that a document follows the \"Q<n>: ...? Ans: ...\" layout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), root, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.reference, "reference", false, "parse as a reference document with keywords")
	flags.BoolVar(&opts.handwritten, "handwritten", false, "read the document with OCR")
	flags.BoolVar(&opts.asJSON, "json", false, "write pairs as JSON")
	cmd.MarkFlagsMutuallyExclusive("reference", "handwritten")

	return cmd
}

func runParse(ctx context.Context, root *rootOptions, opts parseOptions, path string) error {
	mode := parser.ModeStudent
	if opts.reference {
		mode = parser.ModeReference
	}

	return root.withGrader(ctx, func(ctx context.Context, svc grading.Service) error {
		text, err := svc.ExtractText(ctx, path, opts.handwritten)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result := parser.Parse(text, mode)
		if opts.asJSON {
			return report.WriteJSON(root.streams.Out, report.NewParseOutput(result))
		}
		return report.NewRenderer(root.useColor()).WritePairs(root.streams.Out, result)
	})
}
