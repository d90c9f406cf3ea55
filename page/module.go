// Package page defines the page module contract and the pure parts of the
// page pipeline: prop resolution, output path resolution and the per-build
// render context.
package page

import (
	"context"
	"io"

	"github.com/sunwei/pagegen/common/herrors"
	"golang.org/x/net/html"
)

// Renderer renders a page for the given props.
type Renderer interface {
	Render(rc *RenderContext, props Props) ([]*html.Node, error)
}

// PathLister lists the logical paths a page module produces.
type PathLister interface {
	ListPaths(ctx context.Context) ([]string, error)
}

// PropsGetter resolves the props for a logical path. The path is empty
// when the module has no PathLister.
type PropsGetter interface {
	GetProps(ctx context.Context, path string) (Props, error)
}

// RenderFunc adapts a func to a Renderer.
type RenderFunc func(rc *RenderContext, props Props) ([]*html.Node, error)

func (f RenderFunc) Render(rc *RenderContext, props Props) ([]*html.Node, error) {
	return f(rc, props)
}

// Module is a loaded page module. Render is required, the hooks are
// optional and nil when absent.
type Module struct {
	// Name is the module path relative to its module root, used in
	// log and error messages.
	Name string

	Render    func(rc *RenderContext, props Props) ([]*html.Node, error)
	ListPaths func(ctx context.Context) ([]string, error)
	GetProps  func(ctx context.Context, path string) (Props, error)

	// Closer releases whatever the loader holds for this module,
	// e.g. a runtime process. May be nil.
	Closer io.Closer
}

// NewModule creates a Module from v, which should implement Renderer and
// may implement PathLister, PropsGetter and io.Closer.
// A v that is not a Renderer gives a Module that fails Validate.
func NewModule(name string, v any) *Module {
	m := &Module{Name: name}

	switch vv := v.(type) {
	case Renderer:
		m.Render = vv.Render
	case func(rc *RenderContext, props Props) ([]*html.Node, error):
		m.Render = vv
	}

	if pl, ok := v.(PathLister); ok {
		m.ListPaths = pl.ListPaths
	}
	if pg, ok := v.(PropsGetter); ok {
		m.GetProps = pg.GetProps
	}
	if c, ok := v.(io.Closer); ok {
		m.Closer = c
	}

	return m
}

// Validate checks that the module can be rendered. dir is the page source
// directory named in the error.
func (m *Module) Validate(dir string) error {
	if m == nil {
		return herrors.NewConfigurationError(dir, "")
	}
	if m.Render == nil {
		return herrors.NewConfigurationError(dir, m.Name)
	}
	return nil
}

// Close closes the module's Closer, if any.
func (m *Module) Close() error {
	if m == nil || m.Closer == nil {
		return nil
	}
	return m.Closer.Close()
}

// ResolveProps returns the props for path. A module without GetProps
// gets empty props. Whatever GetProps returns is passed on as is.
func ResolveProps(ctx context.Context, m *Module, path string) (Props, error) {
	if m.GetProps == nil {
		return Props{}, nil
	}
	return m.GetProps(ctx, path)
}
