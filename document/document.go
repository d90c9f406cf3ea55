// Package document creates the HTML documents pages are rendered into.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Doctype is written before every serialized document.
const Doctype = "<!DOCTYPE html>"

// DefaultShell is used when the site has no document shell.
const DefaultShell = "<html><head></head><body></body></html>"

// RootClass marks the element pages are rendered into.
const RootClass = "root"

var (
	errNilNode      = errors.New("cannot append a nil node")
	errAttachedNode = errors.New("cannot append a node that already has a parent or siblings")
	errDocumentNode = errors.New("cannot append a document node")
)

// Document is a single use document for one output file.
type Document struct {
	// Node is the document node.
	Node *html.Node

	HTML *html.Node
	Head *html.Node
	Body *html.Node

	// Root is where the page nodes are appended: the first element with
	// the class "root", else Body.
	Root *html.Node
}

// Factory creates fresh documents from a shell.
type Factory struct {
	shell []byte
}

// NewFactory creates a Factory for the given shell HTML.
// An empty shell means DefaultShell.
func NewFactory(shell []byte) (*Factory, error) {
	if len(bytes.TrimSpace(shell)) == 0 {
		shell = []byte(DefaultShell)
	}
	f := &Factory{shell: shell}
	if _, err := f.NewDocument(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewDefaultFactory creates a Factory for DefaultShell.
func NewDefaultFactory() *Factory {
	return &Factory{shell: []byte(DefaultShell)}
}

// NewFactoryFromNodes creates a Factory whose shell is nodes serialized.
// If nodes has no html element, they become the body. head is appended
// to the shell's head, skipping entries that are not valid nodes.
func NewFactoryFromNodes(nodes []*html.Node, head []*html.Node) (*Factory, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}

	doc, err := parse(buf.Bytes())
	if err != nil {
		return nil, err
	}

	for _, n := range head {
		if ValidHeadNode(n) {
			doc.Head.AppendChild(n)
		}
	}

	buf.Reset()
	if err := html.Render(&buf, doc.HTML); err != nil {
		return nil, err
	}

	return &Factory{shell: buf.Bytes()}, nil
}

// Shell returns the shell HTML.
func (f *Factory) Shell() string {
	return string(f.shell)
}

// NewDocument parses the shell into a new Document. Documents are never
// shared between output files.
func (f *Factory) NewDocument() (*Document, error) {
	return parse(f.shell)
}

func parse(shell []byte) (*Document, error) {
	node, err := html.Parse(bytes.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document shell: %w", err)
	}

	doc := &Document{Node: node}
	doc.HTML = findElement(node, atom.Html)
	if doc.HTML == nil {
		return nil, errors.New("document shell has no html element")
	}
	doc.Head = findElement(doc.HTML, atom.Head)
	doc.Body = findElement(doc.HTML, atom.Body)
	if doc.Head == nil || doc.Body == nil {
		return nil, errors.New("document shell must have a head and a body")
	}

	doc.Root = findByClass(doc.Body, RootClass)
	if doc.Root == nil {
		doc.Root = doc.Body
	}

	return doc, nil
}

// AppendRoot appends nodes to the root, in order.
func (d *Document) AppendRoot(nodes ...*html.Node) error {
	for i, n := range nodes {
		if err := checkAppendable(n); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		d.Root.AppendChild(n)
	}
	return nil
}

// AppendHead appends n to the head if it is a valid head node and
// reports whether it did.
func (d *Document) AppendHead(n *html.Node) bool {
	if !ValidHeadNode(n) {
		return false
	}
	d.Head.AppendChild(n)
	return true
}

// DetachRoot removes nodes from the root, skipping nodes it does not own.
func (d *Document) DetachRoot(nodes ...*html.Node) {
	for _, n := range nodes {
		if n != nil && n.Parent == d.Root {
			d.Root.RemoveChild(n)
		}
	}
}

// DetachHead removes nodes from the head, skipping nodes it does not own.
func (d *Document) DetachHead(nodes ...*html.Node) {
	for _, n := range nodes {
		if n != nil && n.Parent == d.Head {
			d.Head.RemoveChild(n)
		}
	}
}

// WriteTo writes the doctype immediately followed by the html element.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, Doctype); err != nil {
		return cw.n, err
	}
	err := html.Render(cw, d.HTML)
	return cw.n, err
}

// Bytes returns the serialized document, see WriteTo.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ValidHeadNode reports whether n can be appended to a document head:
// a detached element, text or comment node.
func ValidHeadNode(n *html.Node) bool {
	if checkAppendable(n) != nil {
		return false
	}
	switch n.Type {
	case html.ElementNode, html.TextNode, html.CommentNode:
		return true
	default:
		return false
	}
}

func checkAppendable(n *html.Node) error {
	switch {
	case n == nil:
		return errNilNode
	case n.Parent != nil || n.PrevSibling != nil || n.NextSibling != nil:
		return errAttachedNode
	case n.Type == html.DocumentNode:
		return errDocumentNode
	}
	return nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func findByClass(n *html.Node, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if hasClass(c, class) {
			return c
		}
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for _, f := range strings.Fields(a.Val) {
				if f == class {
					return true
				}
			}
		}
	}
	return false
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
