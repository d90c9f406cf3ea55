package page

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/sunwei/pagegen/common/paths"
)

const indexFilename = "index.html"

// TargetPathDescriptor describes what is needed to resolve the output
// file of one page.
type TargetPathDescriptor struct {
	// Absolute publish dir.
	PublishDir string

	// The dir the module was discovered in and its full filename.
	ModuleRoot     string
	ModuleFilename string

	// LogicalPath is one of the paths listed by the module, empty if none.
	LogicalPath string
}

// TargetPath resolves the output filename for d:
//
//	blog/post.js             => <publishDir>/blog/post/index.html
//	blog/post.js + "a"       => <publishDir>/blog/a/index.html
//	blog/index.js            => <publishDir>/blog/index.html
//	blog/post.js + "index"   => <publishDir>/blog/index.html
//	blog/post.js + "a.html"  => <publishDir>/blog/a.html
//
// Paths escaping the publish dir are rejected.
func TargetPath(d TargetPathDescriptor) (string, error) {
	rel, err := filepath.Rel(d.ModuleRoot, d.ModuleFilename)
	if err != nil {
		return "", fmt.Errorf("%q is not below %q: %w", d.ModuleFilename, d.ModuleRoot, err)
	}

	base := filepath.ToSlash(paths.PathNoExt(rel))

	target := base
	if d.LogicalPath != "" {
		target = path.Join(path.Dir(base), filepath.ToSlash(d.LogicalPath))
	}

	if target == "index" || strings.HasSuffix(target, "/index") {
		target += ".html"
	}

	publishDir := filepath.Clean(d.PublishDir)
	out := filepath.Join(publishDir, filepath.FromSlash(target))
	if !strings.HasSuffix(out, ".html") {
		out = filepath.Join(out, indexFilename)
	}

	if out == publishDir || !paths.IsWithin(publishDir, out) {
		return "", fmt.Errorf("target path for %q (%q) is outside the publish dir", rel, d.LogicalPath)
	}

	return out, nil
}
