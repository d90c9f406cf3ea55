package helpers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// OpenFileForWriting creates or truncates filename, creating the parent
// directories on demand.
func OpenFileForWriting(fs afero.Fs, filename string) (afero.File, error) {
	filename = filepath.Clean(filename)
	f, err := fs.Create(filename)
	if err == nil || !os.IsNotExist(err) {
		return f, err
	}
	if err := fs.MkdirAll(filepath.Dir(filename), 0o777); err != nil {
		return nil, err
	}
	return fs.Create(filename)
}

// ToSlashTrimLeading converts s to slashes and drops a leading slash.
func ToSlashTrimLeading(s string) string {
	return strings.TrimPrefix(filepath.ToSlash(s), "/")
}
