package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/sunwei/pagegen/common/loggers"
	"github.com/sunwei/pagegen/common/paths"
)

// BuildConfig is the typed view of the Provider used by a build.
type BuildConfig struct {
	WorkingDir string
	SourceDir  string
	PublishDir string
	Minify     bool
	LogLevel   string

	Bundler  BundlerConfig
	Runtime  RuntimeConfig
	Document DocumentConfig
}

// BundlerConfig configures the external transpiler.
type BundlerConfig struct {
	// Command is split on white space, e.g. "npx esbuild".
	Command     string
	JSXFactory  string
	JSXFragment string

	// Max concurrent bundler processes, 0 means no limit.
	Concurrency int
}

// RuntimeConfig configures the JavaScript runtime used to load page modules.
type RuntimeConfig struct {
	Command string
}

// DocumentConfig configures the document shell.
type DocumentConfig struct {
	// Shell is an optional HTML file used as the document shell.
	Shell string
}

var buildConfigKeys = []string{
	"workingDir",
	"sourceDir",
	"publishDir",
	"minify",
	"logLevel",
	"bundler.command",
	"bundler.jsxFactory",
	"bundler.jsxFragment",
	"bundler.concurrency",
	"runtime.command",
	"document.shell",
}

// DecodeBuildConfig decodes and validates the build settings in cfg.
func DecodeBuildConfig(cfg Provider) (BuildConfig, error) {
	m := make(map[string]any)
	for _, key := range buildConfigKeys {
		if !cfg.IsSet(key) {
			continue
		}
		setNested(m, strings.Split(strings.ToLower(key), "."), cfg.Get(key))
	}

	var bc BuildConfig
	if err := mapstructure.WeakDecode(m, &bc); err != nil {
		return bc, fmt.Errorf("failed to decode build config: %w", err)
	}

	if err := bc.Validate(); err != nil {
		return bc, fmt.Errorf("invalid build config: %w", err)
	}

	return bc, nil
}

func setNested(m map[string]any, parts []string, v any) {
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

// Validate validates the build configuration.
func (c *BuildConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SourceDir, validation.Required),
		validation.Field(&c.PublishDir, validation.Required, validation.By(c.notSourceDir)),
		validation.Field(&c.LogLevel, validation.By(validLogLevel)),
		validation.Field(&c.Bundler),
		validation.Field(&c.Runtime),
	)
}

func (c *BuildConfig) notSourceDir(value any) error {
	if filepath.Clean(c.AbsPublishDir()) == filepath.Clean(c.AbsSourceDir()) {
		return errors.New("must not be the source directory")
	}
	return nil
}

func validLogLevel(value any) error {
	s, _ := value.(string)
	_, err := loggers.ParseLevel(s)
	return err
}

// Validate validates the bundler configuration.
func (c BundlerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Command, validation.Required),
		validation.Field(&c.JSXFactory, validation.Required),
		validation.Field(&c.JSXFragment, validation.Required),
		validation.Field(&c.Concurrency, validation.Min(0)),
	)
}

// Validate validates the runtime configuration.
func (c RuntimeConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Command, validation.Required),
	)
}

// AbsSourceDir returns the absolute page source dir.
func (c BuildConfig) AbsSourceDir() string {
	return paths.AbsPathify(c.WorkingDir, c.SourceDir)
}

// AbsPublishDir returns the absolute publish dir.
func (c BuildConfig) AbsPublishDir() string {
	return paths.AbsPathify(c.WorkingDir, c.PublishDir)
}

// IntermediateDir is where the transpiled page modules are written,
// <publishDir>/<sourceDir>. Source dirs that are absolute or outside the
// working dir are reduced to their base name.
func (c BuildConfig) IntermediateDir() string {
	rel := filepath.Clean(c.SourceDir)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+paths.FilePathSeparator) {
		rel = filepath.Base(rel)
	}
	return filepath.Join(c.AbsPublishDir(), rel)
}
