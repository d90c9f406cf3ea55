package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"github.com/sunwei/pagegen/common/paths"
)

// DefaultPattern matches the page module sources, at any depth.
const DefaultPattern = "**.{ts,js,jsx,tsx}"

// DocumentBaseName is the reserved module name providing the document shell.
const DocumentBaseName = "_document"

// SourceSpec decides which files in a directory tree are page modules.
type SourceSpec struct {
	SourceFs afero.Fs

	pattern glob.Glob
}

// NewSourceSpec creates a SourceSpec matching pattern (slash separated,
// relative to the walk root). An empty pattern means DefaultPattern.
func NewSourceSpec(fs afero.Fs, pattern string) (*SourceSpec, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid source pattern %q: %w", pattern, err)
	}
	return &SourceSpec{SourceFs: fs, pattern: g}, nil
}

// IgnoreFile reports whether filename is a hidden, lock or backup file,
// e.g. ".DS_Store", "#page.tsx#" or "page.tsx~".
func (s *SourceSpec) IgnoreFile(filename string) bool {
	base := filepath.Base(filename)
	if filename == "" || base == "" {
		return true
	}
	return strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") || strings.HasSuffix(base, "~")
}

// Match reports whether the root relative path is a page module source.
func (s *SourceSpec) Match(relPath string) bool {
	return s.pattern.Match(filepath.ToSlash(relPath))
}

// NewFileInfo creates the FileInfo for filename below root.
func (s *SourceSpec) NewFileInfo(root, filename string) (*FileInfo, error) {
	relPath, err := filepath.Rel(root, filename)
	if err != nil {
		return nil, err
	}
	if relPath == "" || relPath == "." {
		return nil, fmt.Errorf("no relative path for %q in %q", filename, root)
	}

	dir, name := filepath.Split(relPath)
	ext := strings.TrimPrefix(filepath.Ext(name), ".")

	return &FileInfo{
		filename: filename,
		root:     root,
		relPath:  relPath,
		dir:      dir,
		name:     name,
		ext:      ext,
		baseName: paths.PathNoExt(name),
	}, nil
}
