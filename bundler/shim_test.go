package bundler

import (
	"encoding/json"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

func TestShim(t *testing.T) {
	node, err := exec.LookPath("node")
	if err != nil {
		t.Skip("node not found in PATH")
	}

	// Run the shim as a plain script, the bundler turns its exports into
	// module bindings.
	script := strings.ReplaceAll(string(shim), "export ", "") + `
const div = Pagegen.el('div', { className: 'x', htmlFor: 'y', hidden: true, title: false, onClick: () => {} },
	'a', [null, Pagegen.el('b', null, 'c')], false)
const frag = Pagegen.el(Pagegen.fragment, null, 'a', ['b'])
const rendered = Pagegen.el(Head, null, Pagegen.el('title', null, 'T'))
Head({ children: [Pagegen.el('meta', { name: 'd' })] })
process.stdout.write(JSON.stringify({ div, frag, rendered, head: globalThis.headContents }))
`

	out, err := exec.Command(node, "-e", script).Output()
	if err != nil {
		t.Fatalf("node: %v", err)
	}

	type shimNode struct {
		Type     string            `json:"type"`
		Tag      string            `json:"tag"`
		Attrs    [][2]string       `json:"attrs"`
		Children []json.RawMessage `json:"children"`
	}
	var got struct {
		Div      shimNode        `json:"div"`
		Frag     []string        `json:"frag"`
		Rendered json.RawMessage `json:"rendered"`
		Head     []shimNode      `json:"head"`
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("%v: %s", err, out)
	}

	wantAttrs := [][2]string{{"class", "x"}, {"for", "y"}, {"hidden", ""}}
	if got.Div.Tag != "div" || !reflect.DeepEqual(got.Div.Attrs, wantAttrs) {
		t.Errorf("div = %+v", got.Div)
	}
	if len(got.Div.Children) != 2 || string(got.Div.Children[0]) != `"a"` || !strings.Contains(string(got.Div.Children[1]), `"tag":"b"`) {
		t.Errorf("children not flattened: %s", out)
	}
	if !reflect.DeepEqual(got.Frag, []string{"a", "b"}) {
		t.Errorf("fragment = %v", got.Frag)
	}
	if string(got.Rendered) != "null" {
		t.Errorf("Head should render nothing, got %s", got.Rendered)
	}
	if len(got.Head) != 2 || got.Head[0].Tag != "title" || got.Head[1].Tag != "meta" {
		t.Errorf("head = %+v", got.Head)
	}
}
