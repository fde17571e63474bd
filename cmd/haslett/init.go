package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/haslett/internal/logging"
	"github.com/jonathan/haslett/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dest]",
	Short: "Create a project with default templates and an example profile",
	Long:  "Creates the templates and profiles directories under dest (default: the project root) and seeds the default templates and profile.example.yml where they are missing.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}

	dest := paths.Root
	if len(args) == 1 {
		dest = args[0]
	}

	// Layout entries stay relative so they land under dest.
	result, err := project.Init(dest, project.Layout{
		ProfilesDir:    relativeTo(paths.Root, cfg.ProfilesDir),
		TemplatesDir:   relativeTo(paths.Root, cfg.TemplatesDir),
		ExampleProfile: relativeTo(paths.Root, cfg.ExampleProfile),
	})
	if err != nil {
		return err
	}

	log := logging.Get("init")
	for _, created := range result.Created {
		log.Info().Str("path", created).Msg("Created")
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized project at %s\n", result.Root)
	return nil
}

// relativeTo keeps relative config entries as they are and strips root from
// absolute ones that live under it.
func relativeTo(root, p string) string {
	if !filepath.IsAbs(p) {
		return p
	}
	if rel, err := filepath.Rel(root, p); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return p
}
