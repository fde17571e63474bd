// Package config provides layered configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// RootCwd resolves relative directories against the working directory.
	RootCwd = "cwd"
	// RootInstall resolves relative directories against the directory holding the executable.
	RootInstall = "install"

	// ProjectFile is the per-project config file looked up in the working directory.
	ProjectFile = "haslett.yml"
	// EnvPrefix marks environment variables that override config keys.
	// Nested keys use a double underscore: HASLETT_PDF__CHROME_PATH.
	EnvPrefix = "HASLETT_"
)

// UserConfigPath locates the per-user config file. It returns "" when none exists.
var UserConfigPath = func() string {
	path, err := xdg.SearchConfigFile(filepath.Join("haslett", "config.yml"))
	if err != nil {
		return ""
	}
	return path
}

// Config represents the CLI configuration. Every field has a default; files,
// environment and flags override in that order.
type Config struct {
	// Root is cwd, install, or a directory path. Relative directories below are joined to it.
	Root           string         `koanf:"root" validate:"required"`
	ProfilesDir    string         `koanf:"profiles_dir" validate:"required"`
	TemplatesDir   string         `koanf:"templates_dir" validate:"required"`
	OutputDir      string         `koanf:"output_dir" validate:"required"`
	ExampleProfile string         `koanf:"example_profile" validate:"required"`
	Profiles       ProfilesConfig `koanf:"profiles"`
	PDF            PDFConfig      `koanf:"pdf"`
}

// ProfilesConfig holds profile management policy.
type ProfilesConfig struct {
	// MoveOnAdd removes the source file after `profile add` copies it.
	MoveOnAdd bool `koanf:"move_on_add"`
}

// PDFConfig holds headless Chrome print settings, sizes in inches.
type PDFConfig struct {
	ChromePath      string  `koanf:"chrome_path"`
	PaperWidth      float64 `koanf:"paper_width" validate:"gt=0"`
	PaperHeight     float64 `koanf:"paper_height" validate:"gt=0"`
	Margin          float64 `koanf:"margin" validate:"gte=0"`
	PrintBackground bool    `koanf:"print_background"`
}

// Paths are the absolute locations derived from a Config.
type Paths struct {
	Root           string
	Profiles       string
	Templates      string
	Output         string
	ExampleProfile string
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// WorkDir is where haslett.yml is searched and what "cwd" resolves to.
	WorkDir string
	// ConfigFile replaces the haslett.yml lookup. It must exist.
	ConfigFile string
	// Root overrides the root key after all other sources.
	Root string
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"root":                 RootCwd,
		"profiles_dir":         "profiles",
		"templates_dir":        "templates",
		"output_dir":           "output",
		"example_profile":      "profile.example.yml",
		"profiles.move_on_add": false,
		"pdf.chrome_path":      "",
		"pdf.paper_width":      8.27,
		"pdf.paper_height":     11.69,
		"pdf.margin":           0.4,
		"pdf.print_background": true,
	}
}

var validate = validator.New()

// Load merges defaults, the user config, the project config, HASLETT_*
// environment variables and opts.Root, then validates the result.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if userPath := UserConfigPath(); userPath != "" {
		if err := k.Load(file.Provider(userPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load user config %s: %w", userPath, err)
		}
	}

	projectPath, err := projectConfigPath(opts)
	if err != nil {
		return nil, err
	}
	if projectPath != "" {
		if err := k.Load(file.Provider(projectPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", projectPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if opts.Root != "" {
		if err := k.Set("root", opts.Root); err != nil {
			return nil, fmt.Errorf("failed to apply root override: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func projectConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		path := opts.ConfigFile
		if !filepath.IsAbs(path) && opts.WorkDir != "" {
			path = filepath.Join(opts.WorkDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return path, nil
	}

	path := filepath.Join(opts.WorkDir, ProjectFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return path, nil
}

// envKey maps HASLETT_PDF__CHROME_PATH to pdf.chrome_path.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Paths resolves every directory against the configured root. workDir is
// what the "cwd" root means.
func (c *Config) Paths(workDir string) (*Paths, error) {
	root, err := c.rootDir(workDir)
	if err != nil {
		return nil, err
	}

	p := &Paths{
		Root:           root,
		Profiles:       under(root, c.ProfilesDir),
		Templates:      under(root, c.TemplatesDir),
		Output:         under(root, c.OutputDir),
		ExampleProfile: under(root, c.ExampleProfile),
	}

	if p.Profiles == p.Templates {
		return nil, fmt.Errorf("config error: 'profiles_dir' and 'templates_dir' must be different directories (both %s)", p.Profiles)
	}
	return p, nil
}

func (c *Config) rootDir(workDir string) (string, error) {
	switch c.Root {
	case RootCwd:
		return filepath.Abs(workDir)
	case RootInstall:
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe), nil
	default:
		if filepath.IsAbs(c.Root) {
			return filepath.Clean(c.Root), nil
		}
		return filepath.Abs(filepath.Join(workDir, c.Root))
	}
}

func under(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
