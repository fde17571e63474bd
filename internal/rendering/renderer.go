package rendering

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"

	"github.com/jonathan/haslett/internal/logging"
)

// Kind tells whether a document is HTML or plain text.
type Kind int

const (
	// KindText documents are rendered without escaping.
	KindText Kind = iota
	// KindHTML documents auto-escape every interpolated value.
	KindHTML
)

func (k Kind) String() string {
	if k == KindHTML {
		return "html"
	}
	return "text"
}

// Document is the output of a single render.
type Document struct {
	Template string
	Kind     Kind
	Text     string
}

// KindOf classifies a template by its name: anything with an .html or .htm
// component (cv_template.html.j2, letter.htm) is HTML.
func KindOf(name string) Kind {
	base := strings.ToLower(filepath.Base(name))
	for _, part := range strings.Split(base, ".")[1:] {
		if part == "html" || part == "htm" || part == "xhtml" {
			return KindHTML
		}
	}
	return KindText
}

// pongo2 rejects context keys that are not identifiers.
var identifierRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Renderer renders templates from a single directory. Templates are read
// from disk on every call.
type Renderer struct {
	dir string
	log zerolog.Logger
}

// NewRenderer returns a renderer for templates stored in dir.
func NewRenderer(dir string) *Renderer {
	registerFilters()
	return &Renderer{
		dir: dir,
		log: logging.Get("rendering"),
	}
}

// Dir returns the template directory.
func (r *Renderer) Dir() string {
	return r.dir
}

// Render binds vars to the named template. Variables the template references
// but vars lacks render as empty strings.
func (r *Renderer) Render(name string, vars map[string]any) (*Document, error) {
	if name == "" || !filepath.IsLocal(name) {
		return nil, &NotFoundError{Name: name, Dir: r.dir}
	}

	path := filepath.Join(r.dir, name)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, &NotFoundError{Name: name, Dir: r.dir}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: name, Dir: r.dir}
		}
		return nil, &TemplateError{Message: fmt.Sprintf("failed to read template file: %s", path), Cause: err}
	}

	kind := KindOf(name)
	source := string(content)
	if kind == KindText {
		source = "{% autoescape off %}" + source + "{% endautoescape %}"
	}

	// A fresh set per call keeps includes resolving against r.dir without
	// sharing a template cache between renders.
	loader, err := pongo2.NewLocalFileSystemLoader(r.dir)
	if err != nil {
		return nil, &TemplateError{Message: fmt.Sprintf("failed to open template directory: %s", r.dir), Cause: err}
	}
	set := pongo2.NewSet("haslett", loader)

	tmpl, err := set.FromString(source)
	if err != nil {
		return nil, &TemplateError{Message: fmt.Sprintf("failed to parse template %s", name), Cause: err}
	}

	out, err := tmpl.Execute(r.context(vars))
	if err != nil {
		return nil, &RenderError{Message: fmt.Sprintf("failed to execute template %s", name), Cause: err}
	}

	r.log.Debug().Str("template", name).Str("kind", kind.String()).Int("bytes", len(out)).Msg("Rendered template")

	return &Document{Template: name, Kind: kind, Text: out}, nil
}

func (r *Renderer) context(vars map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(vars))
	for key, value := range vars {
		if !identifierRe.MatchString(key) {
			r.log.Debug().Str("key", key).Msg("Skipping variable that is not a template identifier")
			continue
		}
		ctx[key] = value
	}
	return ctx
}
