// Copyright 2016-present The Hugo Authors. All rights reserved.
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

package helpers

import (
	"fmt"
	"path/filepath"

	"github.com/sunwei/pagegen/common/paths"
	"github.com/sunwei/pagegen/config"
	"github.com/sunwei/pagegen/sitefs"
)

// PathSpec holds methods that decide where sources, intermediate modules
// and published files live.
type PathSpec struct {
	config.BuildConfig

	// The file systems to use
	Fs *sitefs.Fs

	// The config provider to use
	Cfg config.Provider
}

// NewPathSpec creates a new PathSpec from the given filesystems and config.
func NewPathSpec(fs *sitefs.Fs, cfg config.Provider) (*PathSpec, error) {
	bc, err := config.DecodeBuildConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &PathSpec{
		BuildConfig: bc,
		Fs:          fs,
		Cfg:         cfg,
	}, nil
}

// RelPublishPath returns filename relative to the publish dir, which is
// what the publisher expects.
func (p *PathSpec) RelPublishPath(filename string) (string, error) {
	publishDir := p.AbsPublishDir()
	if !paths.IsWithin(publishDir, filepath.Clean(filename)) {
		return "", fmt.Errorf("%q is outside the publish dir %q", filename, publishDir)
	}
	return filepath.Rel(publishDir, filename)
}

// RelSourcePath returns filename relative to the working dir, for logging.
func (p *PathSpec) RelSourcePath(filename string) string {
	if rel, err := filepath.Rel(p.WorkingDir, filename); err == nil {
		return ToSlashTrimLeading(rel)
	}
	return filename
}
