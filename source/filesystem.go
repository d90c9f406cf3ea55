package source

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Filesystem lists the page module sources below Base.
type Filesystem struct {
	*SourceSpec

	Base string

	once  sync.Once
	files []File
	err   error
}

// NewFilesystem creates a Filesystem for the files below base.
func (sp *SourceSpec) NewFilesystem(base string) *Filesystem {
	return &Filesystem{SourceSpec: sp, Base: filepath.Clean(base)}
}

// Files returns the matching files in lexical walk order. The walk runs
// once. A missing base directory is an error.
func (f *Filesystem) Files() ([]File, error) {
	f.once.Do(func() {
		if err := f.walk(); err != nil {
			f.err = fmt.Errorf("capture files: %w", err)
		}
	})
	return f.files, f.err
}

func (f *Filesystem) walk() error {
	fi, err := f.SourceFs.Stat(f.Base)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%q is not a directory", f.Base)
	}

	return afero.Walk(f.SourceFs, f.Base, func(filename string, fi fs.FileInfo, err error) error {
		if err != nil || filename == f.Base {
			return err
		}
		if f.IgnoreFile(filename) {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(f.Base, filename)
		if err != nil {
			return err
		}
		if !f.Match(rel) {
			return nil
		}

		file, err := f.NewFileInfo(f.Base, filename)
		if err != nil {
			return err
		}
		f.files = append(f.files, file)
		return nil
	})
}
