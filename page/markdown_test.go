package page

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func renderNodes(t *testing.T, nodes []*html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for _, n := range nodes {
		if n.Parent != nil {
			t.Fatalf("node %v is attached", n)
		}
		if err := html.Render(&buf, n); err != nil {
			t.Fatal(err)
		}
	}
	return buf.String()
}

func TestMarkdown(t *testing.T) {
	src := []byte("# Hello\n\nSome *text*.\n\n<script>alert(1)</script>\n")

	nodes, err := Markdown(src)
	if err != nil {
		t.Fatal(err)
	}
	got := renderNodes(t, nodes)

	for _, s := range []string{"Hello</h1>", "<em>text</em>"} {
		if !strings.Contains(got, s) {
			t.Errorf("%q missing from %q", s, got)
		}
	}
	if strings.Contains(got, "<script") {
		t.Errorf("script not sanitized: %q", got)
	}

	nodes, err = MarkdownUnsafe(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := renderNodes(t, nodes); !strings.Contains(got, "<script>") {
		t.Errorf("MarkdownUnsafe should keep raw HTML: %q", got)
	}
}
