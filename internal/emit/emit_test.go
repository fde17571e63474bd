package emit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	out   []byte
	err   error
	input string
	calls int
}

func (f *fakeConverter) Convert(_ context.Context, html string) ([]byte, error) {
	f.calls++
	f.input = html
	return f.out, f.err
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestEmit_TextVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.txt")
	text := "Dear Hiring Manager,\nAcme — Backend Engineer\n"

	err := New(nil).Emit(context.Background(), text, FormatText, path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, text, string(content))
	assert.Equal(t, []string{"cover.txt"}, dirEntries(t, dir))
}

func TestEmit_HTMLOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := New(nil).Emit(context.Background(), "<h1>new</h1>", FormatHTML, path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>new</h1>", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestEmit_PDFUsesConverter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	conv := &fakeConverter{out: []byte("%PDF-1.7\nfake")}

	err := New(conv).Emit(context.Background(), "<h1>Jane</h1>", FormatPDF, path)
	require.NoError(t, err)

	assert.Equal(t, 1, conv.calls)
	assert.Equal(t, "<h1>Jane</h1>", conv.input)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7\nfake", string(content))
}

func TestEmit_PDFConverterFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	conv := &fakeConverter{err: errors.New("chrome crashed")}

	err := New(conv).Emit(context.Background(), "<h1>Jane</h1>", FormatPDF, path)
	require.Error(t, err)

	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr), "error should be ConversionError type")
	assert.Contains(t, err.Error(), "chrome crashed")
	assert.Empty(t, dirEntries(t, dir))
}

func TestEmit_PDFRejectsNonPDFOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	for _, out := range [][]byte{nil, []byte("<html>")} {
		err := New(&fakeConverter{out: out}).Emit(context.Background(), "<p/>", FormatPDF, path)
		var convErr *ConversionError
		assert.True(t, errors.As(err, &convErr))
	}
	assert.Empty(t, dirEntries(t, dir))
}

func TestEmit_PDFWithoutConverter(t *testing.T) {
	err := New(nil).Emit(context.Background(), "<p/>", FormatPDF, filepath.Join(t.TempDir(), "out.pdf"))
	var convErr *ConversionError
	assert.True(t, errors.As(err, &convErr))
}

func TestEmit_MissingParentDirectory(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "output", "out.html")

	err := New(nil).Emit(context.Background(), "<p/>", FormatHTML, path)
	require.Error(t, err)

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr), "error should be WriteError type")
	assert.Equal(t, path, writeErr.Path)
	assert.NoDirExists(t, filepath.Join(root, "output"))
}

func TestEmit_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")
	require.NoError(t, os.Mkdir(path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0644))

	err := New(nil).Emit(context.Background(), "<p/>", FormatHTML, path)
	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, []string{"out.html"}, dirEntries(t, dir))
}

func TestEmit_UnknownFormat(t *testing.T) {
	err := New(nil).Emit(context.Background(), "x", Format("docx"), filepath.Join(t.TempDir(), "out.docx"))
	var formatErr *FormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PDF", CVFormats)
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("txt", CoverFormats)
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("txt", CVFormats)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed: html, pdf")

	_, err = ParseFormat("html", CoverFormats)
	assert.Error(t, err)
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, ".pdf", FormatPDF.Extension())
	assert.Equal(t, ".txt", FormatText.Extension())
}
