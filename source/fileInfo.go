package source

import (
	"path/filepath"
)

// File represents a page module source file.
type File interface {
	// Filename gets the full path and filename to the file.
	Filename() string

	// Root is the directory the file was found in, i.e. the module root.
	Root() string

	// Path gets the relative path including file name and extension.
	// The directory is relative to the module root.
	Path() string

	// Dir gets the name of the directory that contains this file.
	// The directory is relative to the module root and empty for
	// files directly in it.
	Dir() string

	// Ext gets the file extension, i.e "about.tsx" will return "tsx".
	Ext() string

	// LogicalName is filename and extension of the file.
	LogicalName() string

	// BaseFileName is a filename without any extension.
	BaseFileName() string
}

// FileInfo describes a source file.
type FileInfo struct {
	// Absolute filename to the file on disk.
	filename string

	root string

	relPath  string
	dir      string
	name     string
	ext      string
	baseName string
}

func (fi *FileInfo) Filename() string     { return fi.filename }
func (fi *FileInfo) Root() string         { return fi.root }
func (fi *FileInfo) Path() string         { return fi.relPath }
func (fi *FileInfo) Dir() string          { return fi.dir }
func (fi *FileInfo) Ext() string          { return fi.ext }
func (fi *FileInfo) LogicalName() string  { return fi.name }
func (fi *FileInfo) BaseFileName() string { return fi.baseName }

func (fi *FileInfo) String() string { return filepath.ToSlash(fi.relPath) }

// IsDocument reports whether f is the reserved document shell module,
// which only counts directly in the module root.
func IsDocument(f File) bool {
	return f.Dir() == "" && f.BaseFileName() == DocumentBaseName
}
