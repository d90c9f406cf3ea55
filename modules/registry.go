package modules

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sunwei/pagegen/common/paths"
	"github.com/sunwei/pagegen/page"
	"github.com/sunwei/pagegen/source"
)

// Registry holds page modules written in Go, keyed by their slash
// separated path below the page source dir without extension,
// e.g. "blog/post" for pages/blog/post.js.
type Registry struct {
	mu    sync.RWMutex
	pages map[string]any
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]any)}
}

// Register registers v, a page.Renderer or a render func optionally
// implementing page.PathLister and page.PropsGetter, as the page name.
func (r *Registry) Register(name string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[name] = v
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a page is registered for f.
func (r *Registry) Has(f source.File) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, found := r.pages[registryKey(f)]
	return found
}

// Load returns the page registered for f.
func (r *Registry) Load(ctx context.Context, f source.File) (*page.Module, error) {
	r.mu.RLock()
	v, found := r.pages[registryKey(f)]
	r.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("no page registered for %q", f.Path())
	}
	return page.NewModule(f.Path(), v), nil
}

func registryKey(f source.File) string {
	return filepath.ToSlash(paths.PathNoExt(f.Path()))
}
