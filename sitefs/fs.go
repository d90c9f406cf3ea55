// Copyright 2019 The Hugo Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sitefs provides the file systems used by a build.
package sitefs

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/sunwei/pagegen/common/paths"
	"github.com/sunwei/pagegen/config"
)

// Os is the operating system file system.
var Os = &afero.OsFs{}

// Fs holds the file systems of one build.
type Fs struct {
	// Source holds the page sources and the transpiled modules. It is
	// afero.OsFs in production and usually afero.MemMapFs in tests.
	Source afero.Fs

	// PublishDir is rooted at the publish dir, the pages are written
	// relative to it.
	PublishDir afero.Fs

	// WorkingDir is a read-only view rooted at the working dir, used for
	// project files such as the document shell.
	WorkingDir afero.Fs
}

// NewDefault creates an Fs on the operating system file system.
func NewDefault(cfg config.Provider) (*Fs, error) {
	return NewFrom(Os, cfg)
}

// NewFrom creates an Fs on top of fs, e.g. an afero.MemMapFs in tests.
// The publish dir is created if missing.
func NewFrom(fs afero.Fs, cfg config.Provider) (*Fs, error) {
	workingDir := cfg.GetString("workingDir")
	publishDir := cfg.GetString("publishDir")
	if publishDir == "" {
		return nil, fmt.Errorf("sitefs: publishDir must be set")
	}

	abs := paths.AbsPathify(workingDir, publishDir)
	if err := fs.MkdirAll(abs, 0o777); err != nil {
		return nil, fmt.Errorf("sitefs: create publish dir: %w", err)
	}

	wd := afero.NewReadOnlyFs(fs)
	if workingDir != "" {
		wd = afero.NewBasePathFs(wd, workingDir)
	}

	return &Fs{
		Source:     fs,
		PublishDir: afero.NewBasePathFs(fs, abs),
		WorkingDir: wd,
	}, nil
}
