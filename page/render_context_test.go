package page

import (
	"bytes"
	"context"
	"testing"

	"golang.org/x/net/html"
)

func TestRenderContextHead(t *testing.T) {
	rc := NewRenderContext(context.Background())
	if len(rc.HeadContents()) != 0 {
		t.Fatal("new context must have an empty head queue")
	}

	title := El("title", nil, "A")
	if got := Head(rc, title, nil); got != nil {
		t.Errorf("Head should render nothing in place, got %v", got)
	}
	rc.AddHead(El("meta", Attrs{"name": "description", "content": "a"}))

	head := rc.HeadContents()
	if len(head) != 3 || head[0] != title || head[1] != nil {
		t.Errorf("unexpected head queue %v", head)
	}

	rc.ResetHead()
	if len(rc.HeadContents()) != 0 {
		t.Error("ResetHead did not empty the queue")
	}
}

func TestEl(t *testing.T) {
	n := El("div", Attrs{"id": "main", "class": "root"},
		El("h1", nil, "Title"),
		nil,
		[]*html.Node{Text("a"), nil, Text("b")},
		42,
	)

	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `<div class="root" id="main"><h1>Title</h1>ab42</div>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
