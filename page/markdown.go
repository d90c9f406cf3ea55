package page

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	htmlSanitizer = bluemonday.UGCPolicy()
)

// Markdown renders Markdown into nodes ready to be returned from Render.
// Raw HTML in src is sanitized.
func Markdown(src []byte) ([]*html.Node, error) {
	return markdown(src, true)
}

// MarkdownUnsafe is Markdown without sanitizing, for trusted content.
func MarkdownUnsafe(src []byte) ([]*html.Node, error) {
	return markdown(src, false)
}

func markdown(src []byte, sanitize bool) ([]*html.Node, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	b := buf.Bytes()
	if sanitize {
		b = htmlSanitizer.SanitizeBytes(b)
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(b), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered markdown: %w", err)
	}

	return nodes, nil
}
