package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/haslett/internal/config"
	"github.com/jonathan/haslett/internal/emit"
	"github.com/jonathan/haslett/internal/logging"
	"github.com/jonathan/haslett/internal/pdf"
	"github.com/jonathan/haslett/internal/pipeline"
	"github.com/jonathan/haslett/internal/profile"
	"github.com/jonathan/haslett/internal/rendering"
)

var rootCmd = &cobra.Command{
	Use:   "haslett",
	Short: "Generate CVs and cover letters from YAML profiles",
	Long:  "haslett renders YAML profiles through templates into a CV (HTML or PDF) or a cover letter (text or PDF).",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logging.Setup(verbosity, cmd.ErrOrStderr())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configFile string
	rootDir    string
	verbosity  int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: ./haslett.yml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root: cwd, install, or a directory")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")
}

// loadConfig reads the layered config and resolves its directories against
// the working directory.
func loadConfig() (*config.Config, *config.Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{
		WorkDir:    wd,
		ConfigFile: configFile,
		Root:       rootDir,
	})
	if err != nil {
		return nil, nil, err
	}

	paths, err := cfg.Paths(wd)
	if err != nil {
		return nil, nil, err
	}

	log := logging.Get("cli")
	log.Debug().
		Str("root", paths.Root).
		Str("profiles", paths.Profiles).
		Str("templates", paths.Templates).
		Str("output", paths.Output).
		Msg("Resolved paths")

	return cfg, paths, nil
}

// newConverter is replaced in tests to avoid launching Chrome.
var newConverter = func(cfg *config.Config) emit.Converter {
	return pdf.NewChromeConverter(pdf.Options{
		ExecPath:        cfg.PDF.ChromePath,
		PaperWidth:      cfg.PDF.PaperWidth,
		PaperHeight:     cfg.PDF.PaperHeight,
		Margin:          cfg.PDF.Margin,
		PrintBackground: cfg.PDF.PrintBackground,
	})
}

func newRunner(cfg *config.Config, paths *config.Paths) *pipeline.Runner {
	return pipeline.NewRunner(
		profile.NewStore(paths.Profiles),
		rendering.NewRenderer(paths.Templates),
		emit.New(newConverter(cfg)),
	)
}

// outputPath places a relative --out under the output directory and creates
// the directory that will hold the file.
func outputPath(paths *config.Paths, out string) (string, error) {
	target := out
	if !filepath.IsAbs(target) {
		target = filepath.Join(paths.Output, target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return target, nil
}
