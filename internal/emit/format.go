package emit

import "strings"

// Format selects how a rendered document is persisted.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
)

var (
	// CVFormats are the formats generate accepts.
	CVFormats = []Format{FormatHTML, FormatPDF}
	// CoverFormats are the formats cover accepts.
	CoverFormats = []Format{FormatText, FormatPDF}
)

// ParseFormat validates s against allowed. Matching is case-insensitive.
func ParseFormat(s string, allowed []Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", &FormatError{Format: s, Allowed: allowed}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

func joinFormats(formats []Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
