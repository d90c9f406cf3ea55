package modules

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// jsonNode is a node as sent by the runtime:
//
//	{"type":"element","tag":"p","attrs":[["class","lead"]],"children":[{"type":"text","data":"Hi"}]}
type jsonNode struct {
	Type     string      `json:"type"`
	Tag      string      `json:"tag,omitempty"`
	Attrs    [][2]string `json:"attrs,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
	Data     string      `json:"data,omitempty"`
}

// toHTML converts n to a detached node. Anything that is not a valid
// element or text node gives nil.
func (n *jsonNode) toHTML() *html.Node {
	if n == nil {
		return nil
	}

	switch n.Type {
	case "text":
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case "element":
		if n.Tag == "" {
			return nil
		}
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
		}
		for _, a := range n.Attrs {
			el.Attr = append(el.Attr, html.Attribute{Key: a[0], Val: a[1]})
		}
		for _, c := range n.Children {
			if cn := c.toHTML(); cn != nil {
				el.AppendChild(cn)
			}
		}
		return el
	default:
		return nil
	}
}

func toHTMLNodes(nodes []*jsonNode) []*html.Node {
	out := make([]*html.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.toHTML()
	}
	return out
}
