// Package project scaffolds a haslett working directory.
package project

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

//go:embed assets/templates/*.j2 assets/profile.example.yml
var assets embed.FS

const (
	// DefaultCVTemplate is the template used by generate when none is given.
	DefaultCVTemplate = "cv_template.html.j2"
	// DefaultCoverTemplate is the template used by cover when none is given.
	DefaultCoverTemplate = "cover_template.txt.j2"
)

// Layout names the directories and files init creates. Relative entries are
// resolved against the destination passed to Init.
type Layout struct {
	ProfilesDir    string
	TemplatesDir   string
	ExampleProfile string
}

// Result lists what Init created. Existing files are never overwritten.
type Result struct {
	Root    string
	Created []string
}

// Error represents a filesystem failure during init
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("init error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("init error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Init creates the profile and template directories under dest and seeds the
// default templates and example profile where they are missing.
func Init(dest string, layout Layout) (*Result, error) {
	root, err := filepath.Abs(dest)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to resolve %s", dest), Cause: err}
	}

	result := &Result{Root: root}
	templatesDir := under(root, layout.TemplatesDir)

	for _, dir := range []string{templatesDir, under(root, layout.ProfilesDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to create %s", dir), Cause: err}
		}
	}

	names, err := TemplateNames()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		content, err := Template(name)
		if err != nil {
			return nil, err
		}
		target := filepath.Join(templatesDir, name)
		created, err := writeIfAbsent(target, content)
		if err != nil {
			return nil, err
		}
		if created {
			result.Created = append(result.Created, target)
		}
	}

	if layout.ExampleProfile != "" {
		target := under(root, layout.ExampleProfile)
		created, err := writeIfAbsent(target, ExampleProfile())
		if err != nil {
			return nil, err
		}
		if created {
			result.Created = append(result.Created, target)
		}
	}

	return result, nil
}

// TemplateNames lists the built-in templates.
func TemplateNames() ([]string, error) {
	entries, err := fs.ReadDir(assets, "assets/templates")
	if err != nil {
		return nil, &Error{Message: "failed to read built-in templates", Cause: err}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Template returns the content of a built-in template.
func Template(name string) ([]byte, error) {
	content, err := assets.ReadFile(path.Join("assets/templates", name))
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("no built-in template %q", name), Cause: err}
	}
	return content, nil
}

// ExampleProfile returns the built-in example profile.
func ExampleProfile() []byte {
	content, err := assets.ReadFile("assets/profile.example.yml")
	if err != nil {
		panic(fmt.Sprintf("embedded example profile missing: %v", err))
	}
	return content
}

func under(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func writeIfAbsent(target string, content []byte) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return false, &Error{Message: fmt.Sprintf("failed to create %s", filepath.Dir(target)), Cause: err}
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, &Error{Message: fmt.Sprintf("failed to create %s", target), Cause: err}
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return false, &Error{Message: fmt.Sprintf("failed to write %s", target), Cause: err}
	}
	if err := f.Close(); err != nil {
		return false, &Error{Message: fmt.Sprintf("failed to write %s", target), Cause: err}
	}
	return true, nil
}
