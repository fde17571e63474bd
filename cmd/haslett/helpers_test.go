package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/haslett/internal/config"
	"github.com/jonathan/haslett/internal/emit"
)

const janeProfile = `person:
  name: Jane Doe
  email: jane@example.com
summary: Backend engineer.
skills:
  - Go
  - SQL
experience:
  - company: Acme
    role: Engineer
    years: "2020-2024"
`

// stubConverter stands in for Chrome and records the HTML it was given.
type stubConverter struct {
	html string
}

func (s *stubConverter) Convert(_ context.Context, html string) ([]byte, error) {
	s.html = html
	return []byte("%PDF-1.7\n%stub\n"), nil
}

// useStubConverter swaps the Chrome converter for the duration of the test.
func useStubConverter(t *testing.T) *stubConverter {
	t.Helper()
	stub := &stubConverter{}
	previous := newConverter
	newConverter = func(*config.Config) emit.Converter { return stub }
	t.Cleanup(func() { newConverter = previous })
	return stub
}

// execute runs the root command in-process with --root pointing at root and
// returns what it wrote to stdout.
func execute(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeCapture(t, root, args...)
	return out, err
}

// executeCapture is execute that also returns stderr.
func executeCapture(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--root", root}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag to its default, since cobra keeps flag
// state in package variables between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// initProject runs init in a temp dir and adds the Jane Doe profile.
func initProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	_, err := execute(t, root, "init")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "profiles", "jane.yml"), []byte(janeProfile), 0644))
	return root
}
