package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extension is appended to profile names created without one.
const Extension = ".yml"

// Store is a directory of profile documents addressed by filename.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path resolves a profile filename inside the store. Names that would
// escape the directory are reported as not found.
func (s *Store) Path(name string) (string, error) {
	if name == "" || !filepath.IsLocal(name) {
		return "", &NotFoundError{Name: name, Dir: s.Dir}
	}
	return filepath.Join(s.Dir, name), nil
}

// Load reads and parses a single profile. Existence is checked before the
// file is read; parse failures are returned whole with no partial result.
func (s *Store) Load(name string) (Profile, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: name, Dir: s.Dir}
		}
		return nil, &StoreError{Message: fmt.Sprintf("failed to stat %s", path), Cause: err}
	}
	if info.IsDir() {
		return nil, &NotFoundError{Name: name, Dir: s.Dir}
	}

	return LoadFile(path)
}

// LoadFile parses the profile at path.
func LoadFile(path string) (Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: filepath.Base(path), Dir: filepath.Dir(path)}
		}
		return nil, &StoreError{Message: fmt.Sprintf("failed to read file %s", path), Cause: err}
	}
	return Parse(path, content)
}

// Parse decodes a single YAML document into a Profile. An empty document
// is an empty profile; anything other than a mapping at the top level is
// malformed.
func Parse(path string, content []byte) (Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Profile{}, nil
		}
		return nil, &MalformedError{Path: path, Message: "failed to parse YAML", Cause: err}
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, &MalformedError{Path: path, Message: "failed to parse YAML", Cause: err}
		}
		return nil, &MalformedError{Path: path, Message: "expected a single YAML document"}
	}

	switch root := normalize(raw).(type) {
	case nil:
		return Profile{}, nil
	case map[string]any:
		return Profile(root), nil
	default:
		return nil, &MalformedError{Path: path, Message: fmt.Sprintf("top-level value must be a mapping, got %T", root)}
	}
}

// List returns the filenames in the store, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrStoreMissing
		}
		return nil, &StoreError{Message: fmt.Sprintf("failed to list %s", s.Dir), Cause: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Create copies the example profile to NAME.yml and returns the filename.
func (s *Store) Create(name, examplePath string) (string, error) {
	filename := withExtension(name)
	if _, err := s.Path(filename); err != nil {
		return "", err
	}

	content, err := os.ReadFile(examplePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Name: filepath.Base(examplePath), Dir: filepath.Dir(examplePath)}
		}
		return "", &StoreError{Message: fmt.Sprintf("failed to read example profile %s", examplePath), Cause: err}
	}

	if err := s.put(filename, content); err != nil {
		return "", err
	}
	return filename, nil
}

// removeFile is replaced in tests to simulate a source that cannot be removed.
var removeFile = os.Remove

// Add copies an external profile into the store under its base name. The
// source must parse as a profile. When move is set the source is removed
// after the copy succeeds; if that fails the copy is removed again.
func (s *Store) Add(srcPath string, move bool) (string, error) {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Name: filepath.Base(srcPath), Dir: filepath.Dir(srcPath)}
		}
		return "", &StoreError{Message: fmt.Sprintf("failed to read %s", srcPath), Cause: err}
	}
	if _, err := Parse(srcPath, content); err != nil {
		return "", err
	}

	filename := filepath.Base(srcPath)
	if err := s.put(filename, content); err != nil {
		return "", err
	}

	if move {
		if err := removeFile(srcPath); err != nil {
			// Undo the copy so a failed move leaves the store unchanged.
			_ = os.Remove(filepath.Join(s.Dir, filename))
			return "", &StoreError{Message: fmt.Sprintf("failed to remove %s after copying", srcPath), Cause: err}
		}
	}
	return filename, nil
}

// put writes a new file into the store, refusing to overwrite.
func (s *Store) put(filename string, content []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to create %s", s.Dir), Cause: err}
	}

	dest := filepath.Join(s.Dir, filename)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &DuplicateError{Name: filename, Dir: s.Dir}
		}
		return &StoreError{Message: fmt.Sprintf("failed to create %s", dest), Cause: err}
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return &StoreError{Message: fmt.Sprintf("failed to write %s", dest), Cause: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return &StoreError{Message: fmt.Sprintf("failed to write %s", dest), Cause: err}
	}
	return nil
}

func withExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		return name
	}
	return name + Extension
}
