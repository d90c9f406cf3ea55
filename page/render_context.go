package page

import (
	"context"

	"golang.org/x/net/html"
)

// RenderContext is passed to every Render call of a build. It collects the
// nodes a page wants in the document head; the writer drains them once per
// output file and then resets the queue.
//
// A RenderContext is not safe for concurrent use, pages are rendered one
// at a time.
type RenderContext struct {
	ctx  context.Context
	head []*html.Node
}

// NewRenderContext creates an empty RenderContext for a build.
func NewRenderContext(ctx context.Context) *RenderContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &RenderContext{ctx: ctx}
}

// Context returns the build context.
func (rc *RenderContext) Context() context.Context {
	return rc.ctx
}

// AddHead queues nodes for the document head, in order. Entries that
// cannot be appended to a document, e.g. nil, are skipped by the writer.
func (rc *RenderContext) AddHead(nodes ...*html.Node) {
	rc.head = append(rc.head, nodes...)
}

// HeadContents returns the queued head nodes.
func (rc *RenderContext) HeadContents() []*html.Node {
	return rc.head
}

// ResetHead empties the head queue.
func (rc *RenderContext) ResetHead() {
	rc.head = nil
}

// Head queues children for the document head and renders nothing in place.
func Head(rc *RenderContext, children ...*html.Node) []*html.Node {
	rc.AddHead(children...)
	return nil
}
