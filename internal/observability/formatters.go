// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/haslett/internal/pipeline"
	"github.com/jonathan/haslett/internal/profile"
	"github.com/jonathan/haslett/internal/rendering"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a summary of a loaded profile: the candidate name and
// one line per top-level section.
func (p *Printer) PrintProfile(name string, data profile.Profile) {
	if data == nil {
		return
	}

	var sb strings.Builder

	candidate := data.String("person.name")
	if candidate == "" {
		candidate = data.String("personal_details.name")
	}
	if candidate != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", candidate))
	}
	sb.WriteString(fmt.Sprintf("Sections: %d\n\n", len(data)))

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(fmt.Sprintf("  • %s: %s\n", key, describe(data[key])))
	}

	p.printBox("PROFILE "+name, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintList outputs up to maxItemsToShow entries of a section, each reduced
// to a one-line label.
func (p *Printer) PrintList(title string, items []any) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", describeItem(items[i])))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(items)-maxItemsToShow))
	}

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStep outputs a single pipeline progress line.
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) PrintStep(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "[%s] %s\n", event.Step, event.Message)
}

// PrintResult outputs the final summary of a run.
func (p *Printer) PrintResult(result *pipeline.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Template: %s\n", result.Kind))
	sb.WriteString(fmt.Sprintf("Format:   %s\n", result.Format))
	sb.WriteString(fmt.Sprintf("Output:   %s", result.Output))

	p.printBox("RUN COMPLETE", sb.String())
}

func describe(v any) string {
	switch val := v.(type) {
	case []any:
		return fmt.Sprintf("%d items", len(val))
	case map[string]any:
		return fmt.Sprintf("%d fields", len(val))
	case nil:
		return "(empty)"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func describeItem(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return rendering.Label(v)
	}
	if label := rendering.Label(m); label != "" {
		return label
	}
	// experience entries carry role and company instead of a name
	var parts []string
	for _, key := range []string{"role", "company"} {
		if s, ok := m[key].(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " at ")
	}
	return describe(m)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
