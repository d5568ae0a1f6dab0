package cli

import (
	"context"
	"fmt"

	"github.com/phrazzld/exam-checker/internal/report"
	"github.com/phrazzld/exam-checker/internal/service/grading"
	"github.com/spf13/cobra"
)

type gradeOptions struct {
	student     string
	reference   string
	handwritten bool
	asJSON      bool
}

func newGradeCommand(root *rootOptions) *cobra.Command {
	var opts gradeOptions

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade a student document against a reference document",
		Example: "  examgrader grade --student answers.pdf --reference key.pdf\n" +
			"  examgrader grade --student scan.png --reference key.docx --handwritten --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGrade(cmd.Context(), root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.student, "student", "", "student answer document (.pdf, .docx, .txt; images with --handwritten)")
	flags.StringVar(&opts.reference, "reference", "", "reference document with model answers and keywords")
	flags.BoolVar(&opts.handwritten, "handwritten", false, "read the student document with OCR")
	flags.BoolVar(&opts.asJSON, "json", false, "write results as JSON")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("reference")

	return cmd
}

func runGrade(ctx context.Context, root *rootOptions, opts gradeOptions) error {
	var progress *report.Progress
	var serviceOpts []grading.Option
	if !opts.asJSON {
		progress = report.NewProgress(root.streams.Err, root.useColor())
		serviceOpts = append(serviceOpts, grading.WithProgress(progress.Update))
	}

	return root.withGrader(ctx, func(ctx context.Context, svc grading.Service) error {
		records, err := svc.GradeFiles(ctx, opts.student, opts.reference, opts.handwritten)
		if progress != nil {
			progress.Finish()
		}
		if err != nil {
			return fmt.Errorf("grading failed: %w", err)
		}

		if opts.asJSON {
			return report.WriteJSON(root.streams.Out, report.NewGradeOutput(records))
		}
		return report.NewRenderer(root.useColor()).WriteTable(root.streams.Out, records)
	}, serviceOpts...)
}
