package site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/sunwei/pagegen/document"
	"github.com/sunwei/pagegen/page"
	"github.com/sunwei/pagegen/source"
	"golang.org/x/sync/errgroup"
)

// Build transpiles, loads and renders every page module below the source
// dir. The intermediate dir is removed whatever the outcome; a failed
// build returns the error that failed it.
func (s *Site) Build(ctx context.Context) (result BuildResult, err error) {
	start := time.Now()

	s.rc = page.NewRenderContext(ctx)
	s.counters = &buildCounters{}
	s.Publisher.Reset()
	s.Log.Reset()

	intermediateDir := s.IntermediateDir()

	defer func() {
		if rerr := s.Fs.Source.RemoveAll(intermediateDir); rerr != nil && err == nil {
			err = fmt.Errorf("failed to remove %s: %w", intermediateDir, rerr)
		}
		result = s.counters.result(start)
	}()

	sources, err := s.SourceSpec.NewFilesystem(s.AbsSourceDir()).Files()
	if err != nil {
		return result, fmt.Errorf("failed to read page sources: %w", err)
	}
	s.Log.Infof("found %d page sources in %s", len(sources), s.SourceDir)

	if err = s.Fs.Source.MkdirAll(intermediateDir, 0o777); err != nil {
		return
	}

	if err = s.transpile(ctx, sources, intermediateDir); err != nil {
		return
	}

	modules, err := s.SourceSpec.NewFilesystem(intermediateDir).Files()
	if err != nil {
		return result, fmt.Errorf("failed to read page modules: %w", err)
	}

	var pages []source.File
	var doc source.File
	for _, f := range modules {
		if source.IsDocument(f) {
			doc = f
			continue
		}
		pages = append(pages, f)
	}

	if s.factory, err = s.documentFactory(ctx, doc); err != nil {
		return
	}

	for _, f := range pages {
		if err = s.buildModule(ctx, f); err != nil {
			return
		}
	}

	return
}

// transpile transpiles all sources into dir, mirroring their paths.
func (s *Site) transpile(ctx context.Context, sources []source.File, dir string) error {
	g, gctx := errgroup.WithContext(ctx)
	if n := s.Bundler.Concurrency; n > 0 {
		g.SetLimit(n)
	}

	for _, f := range sources {
		f := f
		g.Go(func() error {
			outfile := filepath.Join(dir, f.Path())
			s.Log.Debugf("transpile %s to %s", s.RelSourcePath(f.Filename()), s.RelSourcePath(outfile))
			if err := s.Transpiler.Transpile(gctx, f.Filename(), outfile); err != nil {
				return err
			}
			s.counters.sources.Inc()
			return nil
		})
	}

	return g.Wait()
}

// documentFactory creates the document factory for this build. The
// _document module wins over the configured shell file.
func (s *Site) documentFactory(ctx context.Context, f source.File) (*document.Factory, error) {
	if f != nil {
		return s.renderDocumentModule(ctx, f)
	}

	if s.Document.Shell == "" {
		return document.NewDefaultFactory(), nil
	}

	fs, filename := s.Fs.WorkingDir, s.Document.Shell
	if filepath.IsAbs(filename) {
		fs = s.Fs.Source
	}
	b, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read document shell: %w", err)
	}
	return document.NewFactory(b)
}

func (s *Site) renderDocumentModule(ctx context.Context, f source.File) (factory *document.Factory, err error) {
	m, err := s.Loader.Load(ctx, f)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	defer s.rc.ResetHead()

	nodes, err := m.Render(s.rc, page.Props{})
	if err != nil {
		return nil, err
	}

	s.Log.Debugf("use %s as the document shell", f.Path())

	return document.NewFactoryFromNodes(nodes, s.rc.HeadContents())
}

// buildModule loads the module in f, renders all of its pages and closes it.
func (s *Site) buildModule(ctx context.Context, f source.File) (err error) {
	m, err := s.Loader.Load(ctx, f)
	if err != nil {
		return err
	}
	s.counters.modules.Inc()

	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return s.renderModule(ctx, m, f)
}
