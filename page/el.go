package page

import (
	"sort"

	"github.com/spf13/cast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attrs are the attributes of an element built with El.
type Attrs map[string]string

// El builds an element node. Children may be *html.Node, []*html.Node,
// strings or other scalars (rendered as text); nil children are dropped.
// Attributes are sorted by name so output is stable.
func El(tag string, attrs Attrs, children ...any) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}

	for _, c := range Fragment(children...) {
		n.AppendChild(c)
	}

	return n
}

// Text builds a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Fragment flattens children into a node list, see El.
func Fragment(children ...any) []*html.Node {
	var nodes []*html.Node
	for _, c := range children {
		switch v := c.(type) {
		case nil:
		case *html.Node:
			if v != nil {
				nodes = append(nodes, v)
			}
		case []*html.Node:
			for _, vv := range v {
				if vv != nil {
					nodes = append(nodes, vv)
				}
			}
		case []any:
			nodes = append(nodes, Fragment(v...)...)
		case string:
			nodes = append(nodes, Text(v))
		default:
			nodes = append(nodes, Text(cast.ToString(v)))
		}
	}
	return nodes
}
