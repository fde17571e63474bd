package emit

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jonathan/haslett/internal/logging"
)

// pdfMagic starts every PDF file.
var pdfMagic = []byte("%PDF-")

// Converter turns an HTML document into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// Emitter writes rendered documents to disk.
type Emitter struct {
	converter Converter
	log       zerolog.Logger
}

// New returns an Emitter. converter may be nil when PDF output is never requested.
func New(converter Converter) *Emitter {
	return &Emitter{
		converter: converter,
		log:       logging.Get("emit"),
	}
}

// Emit writes text to path in the given format. txt and html are written
// verbatim; pdf treats text as HTML and writes the converter's output. The
// parent directory must already exist. On failure nothing is left at path.
func (e *Emitter) Emit(ctx context.Context, text string, format Format, path string) error {
	var data []byte

	switch format {
	case FormatText, FormatHTML:
		data = []byte(text)
	case FormatPDF:
		if e.converter == nil {
			return &ConversionError{Message: "no PDF converter configured"}
		}
		out, err := e.converter.Convert(ctx, text)
		if err != nil {
			return &ConversionError{Message: "converter returned an error", Cause: err}
		}
		if !bytes.HasPrefix(out, pdfMagic) {
			return &ConversionError{Message: fmt.Sprintf("converter produced %d bytes that are not a PDF document", len(out))}
		}
		data = out
	default:
		return &FormatError{Format: string(format), Allowed: []Format{FormatHTML, FormatPDF, FormatText}}
	}

	if err := writeAtomic(path, data); err != nil {
		return err
	}

	e.log.Info().Str("path", path).Str("format", string(format)).Int("bytes", len(data)).Msg("Wrote output")
	return nil
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Cause: err}
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Cause: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Cause: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: path, Cause: err}
	}
	return nil
}
