package paths

import (
	"path/filepath"
	"strings"
)

// FilePathSeparator as defined by os.Separator.
const FilePathSeparator = string(filepath.Separator)

// AbsPathify creates an absolute path if given a working dir and a relative path.
// If already absolute, the path is just cleaned.
func AbsPathify(workingDir, inPath string) string {
	if filepath.IsAbs(inPath) {
		return filepath.Clean(inPath)
	}
	return filepath.Join(workingDir, inPath)
}

// PathNoExt strips every extension from the last path element,
// e.g. "blog/post.page.js" becomes "blog/post".
func PathNoExt(in string) string {
	dir, name := filepath.Split(in)
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return dir + name
}

// IsWithin reports whether target is root or lies below it.
// Both paths are expected to be clean.
func IsWithin(root, target string) bool {
	if root == target {
		return true
	}
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+FilePathSeparator)
}
