// Package site builds the static site: it transpiles the page sources,
// loads every page module and writes one HTML file per rendered page.
package site

import (
	"errors"
	"fmt"
	"time"

	"github.com/sunwei/pagegen/common/paths"
	"github.com/sunwei/pagegen/deps"
	"github.com/sunwei/pagegen/document"
	"github.com/sunwei/pagegen/page"
	"go.uber.org/atomic"
)

// Site is one build target. A Site can be built many times, but not
// concurrently.
type Site struct {
	*deps.Deps

	// Per build.
	rc       *page.RenderContext
	factory  *document.Factory
	counters *buildCounters
}

// BuildResult summarises a build.
type BuildResult struct {
	// Page sources transpiled.
	Sources int

	// Page modules loaded, the document module excluded.
	Modules int

	// Files written.
	Pages int

	Duration time.Duration
}

func (r BuildResult) String() string {
	return fmt.Sprintf("%d sources, %d modules, %d pages in %s", r.Sources, r.Modules, r.Pages, r.Duration.Round(time.Millisecond))
}

type buildCounters struct {
	sources atomic.Int64
	modules atomic.Int64
	pages   atomic.Int64
}

func (c *buildCounters) result(start time.Time) BuildResult {
	return BuildResult{
		Sources:  int(c.sources.Load()),
		Modules:  int(c.modules.Load()),
		Pages:    int(c.pages.Load()),
		Duration: time.Since(start),
	}
}

// New creates a new Site.
func New(d *deps.Deps) (*Site, error) {
	if d == nil {
		return nil, errors.New("site: must provide deps")
	}

	src, inter := d.AbsSourceDir(), d.IntermediateDir()
	if paths.IsWithin(src, inter) || paths.IsWithin(inter, src) {
		return nil, fmt.Errorf("site: the intermediate dir %q overlaps the source dir %q", inter, src)
	}

	return &Site{Deps: d}, nil
}
