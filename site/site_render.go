package site

import (
	"context"

	"github.com/sunwei/pagegen/common/bufferpool"
	"github.com/sunwei/pagegen/page"
	"github.com/sunwei/pagegen/publisher"
	"github.com/sunwei/pagegen/source"
	"golang.org/x/net/html"
)

// renderModule renders every page of m, one logical path at a time.
// The first error aborts the module.
func (s *Site) renderModule(ctx context.Context, m *page.Module, f source.File) error {
	if err := m.Validate(s.SourceDir); err != nil {
		return err
	}

	logicalPaths := []string{""}
	if m.ListPaths != nil {
		var err error
		if logicalPaths, err = m.ListPaths(ctx); err != nil {
			return err
		}
	}

	for _, p := range logicalPaths {
		props, err := page.ResolveProps(ctx, m, p)
		if err != nil {
			return err
		}

		targetPath, err := page.TargetPath(page.TargetPathDescriptor{
			PublishDir:     s.AbsPublishDir(),
			ModuleRoot:     f.Root(),
			ModuleFilename: f.Filename(),
			LogicalPath:    p,
		})
		if err != nil {
			return err
		}

		if err := s.renderAndWritePage(m, props, targetPath); err != nil {
			return err
		}
	}

	return nil
}

// renderAndWritePage renders one page into a fresh document and publishes
// it to targetPath. The rendered nodes are detached again and the head
// queue is reset on every return path.
func (s *Site) renderAndWritePage(m *page.Module, props page.Props, targetPath string) error {
	defer s.rc.ResetHead()

	nodes, err := m.Render(s.rc, props)
	if err != nil {
		return err
	}

	doc, err := s.factory.NewDocument()
	if err != nil {
		return err
	}

	var head []*html.Node
	defer func() {
		doc.DetachRoot(nodes...)
		doc.DetachHead(head...)
	}()

	if err := doc.AppendRoot(nodes...); err != nil {
		return err
	}

	for _, n := range s.rc.HeadContents() {
		if !doc.AppendHead(n) {
			s.Log.Debugf("%s: skip invalid head entry", m.Name)
			continue
		}
		head = append(head, n)
	}

	rel, err := s.RelPublishPath(targetPath)
	if err != nil {
		return err
	}

	buf := bufferpool.GetBuffer()
	defer bufferpool.PutBuffer(buf)

	if _, err := doc.WriteTo(buf); err != nil {
		return err
	}

	s.Log.Debugf("write %s", rel)

	if err := s.Publisher.Publish(publisher.Descriptor{
		Src:        buf,
		TargetPath: rel,
		Minify:     s.Minify,
	}); err != nil {
		return err
	}

	s.counters.pages.Inc()

	return nil
}
