package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/haslett/internal/observability"
	"github.com/jonathan/haslett/internal/profile"
	"github.com/jonathan/haslett/internal/schemas"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a profile from the example profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileCreate,
}

var profileAddCmd = &cobra.Command{
	Use:   "add PATH",
	Short: "Copy an existing YAML profile into the profiles directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileAdd,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate NAME",
	Short: "Validate a profile against a JSON Schema",
	Long:  "Loads a profile from the profiles directory and validates it against the built-in schema, or against --schema when given.",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileValidate,
}

var profileShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a summary of a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var (
	profileAddMove        bool
	profileValidateSchema string
)

func init() {
	profileAddCmd.Flags().BoolVar(&profileAddMove, "move", false, "Remove the source file after copying")
	profileValidateCmd.Flags().StringVar(&profileValidateSchema, "schema", "", "Path to a JSON Schema file (default: built-in schema)")

	profileCmd.AddCommand(profileCreateCmd, profileAddCmd, profileListCmd, profileShowCmd, profileValidateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	_, paths, err := loadConfig()
	if err != nil {
		return err
	}

	store := profile.NewStore(paths.Profiles)
	filename, err := store.Create(args[0], paths.ExampleProfile)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s\n", filename)
	return nil
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}

	move := profileAddMove || cfg.Profiles.MoveOnAdd
	store := profile.NewStore(paths.Profiles)
	filename, err := store.Add(args[0], move)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added profile %s\n", filename)
	return nil
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	_, paths, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	names, err := profile.NewStore(paths.Profiles).List()
	if errors.Is(err, profile.ErrStoreMissing) {
		_, _ = fmt.Fprintln(out, "No profiles found. Run `init` first.")
		return nil
	}
	if err != nil {
		return err
	}

	for _, name := range names {
		_, _ = fmt.Fprintf(out, "- %s\n", name)
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	_, paths, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := profile.NewStore(paths.Profiles).Load(args[0])
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintProfile(args[0], data)

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if items, ok := data[key].([]any); ok {
			printer.PrintList(key, items)
		}
	}
	return nil
}

func runProfileValidate(cmd *cobra.Command, args []string) error {
	_, paths, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := profile.NewStore(paths.Profiles).Load(args[0])
	if err != nil {
		return err
	}

	if profileValidateSchema != "" {
		err = schemas.ValidateProfileWithSchema(profileValidateSchema, data)
	} else {
		err = schemas.ValidateProfile(data)
	}

	out := cmd.OutOrStdout()
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "- %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("profile %s failed validation with %d error(s)", args[0], len(validationErr.Errors))
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Profile %s is valid\n", args[0])
	if verbosity > 0 {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintProfile(args[0], data)
	}
	return nil
}
