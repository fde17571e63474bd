package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/haslett/internal/emit"
	"github.com/jonathan/haslett/internal/pipeline"
	"github.com/jonathan/haslett/internal/profile"
	"github.com/jonathan/haslett/internal/rendering"
	"github.com/stretchr/testify/assert"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data := profile.Profile{
		"person":  map[string]any{"name": "Jane Doe"},
		"summary": "Engineer.",
		"skills":  []any{"Go", "SQL"},
	}

	p.PrintProfile("jane.yml", data)
	output := buf.String()

	assert.Contains(t, output, "PROFILE jane.yml")
	assert.Contains(t, output, "Name:     Jane Doe")
	assert.Contains(t, output, "Sections: 3")
	assert.Contains(t, output, "person: 1 fields")
	assert.Contains(t, output, "skills: 2 items")
	assert.Contains(t, output, "summary: Engineer.")
}

func TestPrintProfile_NestedShape(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile("nested.yml", profile.Profile{
		"personal_details": map[string]any{"name": "Sam Roe"},
	})

	assert.Contains(t, buf.String(), "Name:     Sam Roe")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile("x.yml", nil)

	assert.Empty(t, buf.String())
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	items := []any{
		map[string]any{"role": "Engineer", "company": "Acme"},
		map[string]any{"degree": "BSc", "institution": "MIT"},
		"Go",
		"SQL",
		"Rust",
		"Zig",
		"C",
	}

	p.PrintList("experience", items)
	output := buf.String()

	assert.Contains(t, output, "EXPERIENCE")
	assert.Contains(t, output, "• Engineer at Acme")
	assert.Contains(t, output, "• BSc, MIT")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Zig")
}

func TestPrintList_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintList("skills", nil)

	assert.Empty(t, buf.String())
}

func TestPrintStep(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStep(pipeline.ProgressEvent{Step: pipeline.StepRender, Message: "rendered cv_template.html.j2 as html"})

	assert.Equal(t, "[render] rendered cv_template.html.j2 as html\n", buf.String())
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&pipeline.Result{
		RunID:  "run-1",
		Output: "/tmp/out.pdf",
		Format: emit.FormatPDF,
		Kind:   rendering.KindHTML,
	})
	output := buf.String()

	assert.Contains(t, output, "RUN COMPLETE")
	assert.Contains(t, output, "run-1")
	assert.Contains(t, output, "/tmp/out.pdf")
	assert.Contains(t, output, "Format:   pdf")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}
