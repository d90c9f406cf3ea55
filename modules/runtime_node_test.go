package modules

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	jww "github.com/spf13/jwalterweatherman"
	"github.com/sunwei/pagegen/common/herrors"
	"github.com/sunwei/pagegen/common/loggers"
	"github.com/sunwei/pagegen/page"
	"golang.org/x/net/html"
)

// newNodeRuntime returns a Runtime on the real node binary, skipping the
// test when node is not installed.
func newNodeRuntime(t *testing.T) *Runtime {
	t.Helper()
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("node not found in PATH")
	}
	logger, _ := loggers.NewBufferLogger(jww.LevelInfo)
	r, err := NewRuntime("node", logger)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(c.Data)
	}
	return sb.String()
}

const listingModule = `
exports.getPaths = async () => ['a', '', 'b']

exports.getProps = async (path) => ({ path, isNull: path === null, at: new Date(0) })

exports.default = (props) => {
	globalThis.headContents.push(
		{ type: 'element', tag: 'title', attrs: [], children: ['T ' + props.path] },
		'junk',
		null,
	)
	return {
		type: 'element',
		tag: 'p',
		attrs: [['class', 'path']],
		children: [String(props.path), ' ', String(props.isNull), ' ', String(props.at instanceof Date)],
	}
}
`

func TestNodeRuntimeListingModule(t *testing.T) {
	r := newNodeRuntime(t)
	ctx := context.Background()

	m, err := r.Load(ctx, writeFixture(t, listingModule))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if m.Render == nil || m.ListPaths == nil || m.GetProps == nil {
		t.Fatalf("exports not detected: %+v", m)
	}

	paths, err := m.ListPaths(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(paths, "|") != "a||b" {
		t.Fatalf("paths = %q", paths)
	}

	rc := page.NewRenderContext(ctx)
	for _, test := range []struct {
		path string
		want string
	}{
		// The getProps value reaches render by reference, the Date survives.
		{"a", "a false true"},
		{"", " false true"},
	} {
		props, err := m.GetProps(ctx, test.path)
		if err != nil {
			t.Fatal(err)
		}
		if props.GetString("path") != test.path {
			t.Errorf("props = %v", props)
		}

		nodes, err := m.Render(rc, props)
		if err != nil {
			t.Fatal(err)
		}
		if len(nodes) != 1 || nodes[0].Data != "p" || len(nodes[0].Attr) != 1 || nodes[0].Attr[0] != (html.Attribute{Key: "class", Val: "path"}) {
			t.Fatalf("unexpected nodes %v", nodes)
		}
		if got := nodeText(nodes[0]); got != test.want {
			t.Errorf("path %q rendered %q, want %q", test.path, got, test.want)
		}

		// The runtime starts every render with an empty head queue.
		head := rc.HeadContents()
		if len(head) != 3 || head[0] == nil || head[0].Data != "title" || head[1] != nil || head[2] != nil {
			t.Fatalf("unexpected head %v", head)
		}
		if got := nodeText(head[0]); got != "T "+test.path {
			t.Errorf("title = %q", got)
		}
		rc.ResetHead()
	}

	nodes, err := m.Render(rc, page.Props{"path": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if got := nodeText(nodes[0]); got != "x undefined false" {
		t.Errorf("render with new props got %q", got)
	}
}

func TestNodeRuntimeGetPropsWithoutPath(t *testing.T) {
	r := newNodeRuntime(t)
	ctx := context.Background()

	m, err := r.Load(ctx, writeFixture(t, `
exports.getProps = (path) => ({ isNull: path === null })
exports.default = () => [['a', ['b']], 'c']
`))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if m.ListPaths != nil {
		t.Error("ListPaths should be absent")
	}

	props, err := m.GetProps(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if isNull, _ := props["isNull"].(bool); !isNull {
		t.Errorf("getProps should get null without a logical path, props = %v", props)
	}

	nodes, err := m.Render(page.NewRenderContext(ctx), props)
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, n := range nodes {
		if n == nil || n.Type != html.TextNode {
			t.Fatalf("unexpected node %v", n)
		}
		texts = append(texts, n.Data)
	}
	if strings.Join(texts, "") != "abc" {
		t.Errorf("nested results flattened to %q", texts)
	}
}

func TestNodeRuntimeThrownString(t *testing.T) {
	r := newNodeRuntime(t)
	ctx := context.Background()

	m, err := r.Load(ctx, writeFixture(t, `
exports.getProps = () => { throw 'plain string' }
exports.default = () => null
`))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	_, err = m.GetProps(ctx, "")
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	if rerr.Error() != "post.js: getProps: plain string" {
		t.Errorf("unexpected error %q", rerr)
	}
}

func TestNodeRuntimeDefaultNotAFunction(t *testing.T) {
	r := newNodeRuntime(t)
	ctx := context.Background()
	f := writeFixture(t, `module.exports = { default: 42 }`)

	m, err := r.Load(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if m.Render != nil {
		t.Error("Render should be nil")
	}
	if err := m.Close(); err != nil {
		t.Errorf("close: %v", err)
	}

	c := NewClient(ClientConfig{SourceDir: "pages", Runtime: r})
	_, err = c.Load(ctx, f)
	if !herrors.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "default export from a file in pages must be a function") {
		t.Errorf("unexpected message %q", err)
	}
}
