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

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a CV from a profile",
	Long:  "Renders a profile through an HTML template and writes the CV as HTML or PDF into the output directory.",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var (
	generateProfile  string
	generateOut      string
	generateFormat   string
	generateTemplate string
)

func init() {
	generateCmd.Flags().StringVarP(&generateProfile, "profile", "p", "", "Profile filename in the profiles directory (required)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output file (default: out.<format>)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", string(emit.FormatPDF), "Output format: html or pdf")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", project.DefaultCVTemplate, "Template filename in the templates directory")

	_ = generateCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	format, err := emit.ParseFormat(generateFormat, emit.CVFormats)
	if err != nil {
		return err
	}

	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}

	out := generateOut
	if out == "" {
		out = "out" + format.Extension()
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
		Profile:  generateProfile,
		Template: generateTemplate,
		Format:   format,
		Output:   target,
	})
	if err != nil {
		return err
	}
	if printer != nil {
		printer.PrintResult(result)
	}

	label := "HTML"
	if result.Format == emit.FormatPDF {
		label = "PDF"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s CV written to %s\n", label, result.Output)
	return nil
}
