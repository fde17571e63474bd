package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/haslett/internal/emit"
	"github.com/jonathan/haslett/internal/observability"
	"github.com/jonathan/haslett/internal/pipeline"
	"github.com/jonathan/haslett/internal/project"
)

var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Generate a cover letter from a profile",
	Long:  "Renders a profile and a job description through a text template and writes the cover letter as text or PDF into the output directory.",
	Args:  cobra.NoArgs,
	RunE:  runCover,
}

var (
	coverProfile  string
	coverJob      string
	coverOut      string
	coverFormat   string
	coverTemplate string
)

func init() {
	coverCmd.Flags().StringVarP(&coverProfile, "profile", "p", "", "Profile filename in the profiles directory (required)")
	coverCmd.Flags().StringVarP(&coverJob, "job", "j", "", "Job description or title (required)")
	coverCmd.Flags().StringVarP(&coverOut, "out", "o", "", "Output file (default: cover.<format>)")
	coverCmd.Flags().StringVarP(&coverFormat, "format", "f", string(emit.FormatPDF), "Output format: txt or pdf")
	coverCmd.Flags().StringVarP(&coverTemplate, "template", "t", project.DefaultCoverTemplate, "Template filename in the templates directory")

	_ = coverCmd.MarkFlagRequired("profile")
	_ = coverCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(coverCmd)
}

func runCover(cmd *cobra.Command, _ []string) error {
	format, err := emit.ParseFormat(coverFormat, emit.CoverFormats)
	if err != nil {
		return err
	}

	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}

	out := coverOut
	if out == "" {
		out = "cover" + format.Extension()
	}
	target, err := outputPath(paths, out)
	if err != nil {
		return err
	}

	runner := newRunner(cfg, paths)
	var printer *observability.Printer
	if verbosity > 0 {
		printer = observability.NewPrinter(cmd.ErrOrStderr())
		runner.OnProgress = printer.PrintStep
	}

	result, err := runner.Run(context.Background(), pipeline.Request{
		Profile:  coverProfile,
		Template: coverTemplate,
		Format:   format,
		Output:   target,
		Extra:    map[string]any{"job": coverJob},
	})
	if err != nil {
		return err
	}
	if printer != nil {
		printer.PrintResult(result)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cover letter written to %s\n", result.Output)
	return nil
}
