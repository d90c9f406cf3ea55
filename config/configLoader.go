package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/sunwei/pagegen/common/maps"
	"gopkg.in/yaml.v2"
)

var (
	ValidConfigFileExtensions = []string{"toml", "yaml", "yml"}

	// DefaultConfigBaseName is the config file name looked up in the
	// working dir when no file is given.
	DefaultConfigBaseName = "pagegen"
)

// ConfigSourceDescriptor describes where to find the config.
type ConfigSourceDescriptor struct {
	Fs afero.Fs

	// Path to the config file to use, e.g. /my/project/pagegen.toml.
	// If empty, the default names are tried in WorkingDir.
	Filename string

	// The project's working dir.
	WorkingDir string

	// Environment in KEY=value form, usually os.Environ().
	Environ []string
}

// FromFileToMap is the same as FromFile, but it returns the config values
// as a simple map.
func FromFileToMap(fs afero.Fs, filename string) (map[string]any, error) {
	return loadConfigFromFile(fs, filename)
}

// FromFile loads the configuration from the given filename.
func FromFile(fs afero.Fs, filename string) (Provider, error) {
	m, err := loadConfigFromFile(fs, filename)
	if err != nil {
		return nil, err
	}
	return NewFrom(m), nil
}

func loadConfigFromFile(fs afero.Fs, filename string) (map[string]any, error) {
	b, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, err
	}

	m := make(map[string]any)
	switch ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext {
	case "toml":
		err = toml.Unmarshal(b, &m)
	case "yaml", "yml":
		err = yaml.Unmarshal(b, &m)
	default:
		return nil, fmt.Errorf("%q: unsupported config format %q", filename, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", filename, err)
	}

	return m, nil
}

// LoadConfig loads the build configuration in this order, later sources
// winning: defaults, config file, PAGEGEN_ environment variables.
// It returns the config and the config filename used, if any.
func LoadConfig(d ConfigSourceDescriptor) (Provider, string, error) {
	if d.Fs == nil {
		return nil, "", errors.New("config: must provide a filesystem")
	}

	cfg := New()

	filename, err := d.resolveFilename()
	if err != nil {
		return nil, "", err
	}

	if filename != "" {
		m, err := loadConfigFromFile(d.Fs, filename)
		if err != nil {
			return nil, "", err
		}
		cfg.Set("", m)
	}

	applyEnvOverrides(cfg, d.Environ)

	cfg.SetDefaults(DefaultConfig())

	if !cfg.IsSet("workingDir") || cfg.GetString("workingDir") == "" {
		cfg.Set("workingDir", d.WorkingDir)
	}

	return cfg, filename, nil
}

func (d ConfigSourceDescriptor) resolveFilename() (string, error) {
	if d.Filename != "" {
		filename := d.Filename
		if !filepath.IsAbs(filename) && d.WorkingDir != "" {
			filename = filepath.Join(d.WorkingDir, filename)
		}
		exists, err := afero.Exists(d.Fs, filename)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", fmt.Errorf("config file %q: %w", d.Filename, os.ErrNotExist)
		}
		return filename, nil
	}

	for _, ext := range ValidConfigFileExtensions {
		filename := filepath.Join(d.WorkingDir, DefaultConfigBaseName+"."+ext)
		if exists, _ := afero.Exists(d.Fs, filename); exists {
			return filename, nil
		}
	}

	return "", nil
}

// DefaultConfig returns the default values for all config keys.
func DefaultConfig() maps.Params {
	return maps.Params{
		"sourcedir":  "pages",
		"publishdir": "public",
		"minify":     false,
		"loglevel":   "warn",
		"bundler": maps.Params{
			"command":     "esbuild",
			"jsxfactory":  "Pagegen.el",
			"jsxfragment": "Pagegen.fragment",
			"concurrency": 0,
		},
		"runtime": maps.Params{
			"command": "node",
		},
		"document": maps.Params{
			"shell": "",
		},
	}
}
