package page

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sunwei/pagegen/common/herrors"
	"golang.org/x/net/html"
)

type blogPage struct {
	closed bool
}

func (p *blogPage) Render(rc *RenderContext, props Props) ([]*html.Node, error) {
	return []*html.Node{El("h1", nil, props.GetString("title"))}, nil
}

func (p *blogPage) ListPaths(ctx context.Context) ([]string, error) {
	return []string{"a", "b"}, nil
}

func (p *blogPage) GetProps(ctx context.Context, path string) (Props, error) {
	return Props{"title": "Post " + path}, nil
}

func (p *blogPage) Close() error {
	p.closed = true
	return nil
}

func TestNewModule(t *testing.T) {
	p := &blogPage{}
	m := NewModule("blog.js", p)

	if err := m.Validate("pages"); err != nil {
		t.Fatal(err)
	}
	if m.ListPaths == nil || m.GetProps == nil || m.Closer == nil {
		t.Fatalf("hooks not picked up: %+v", m)
	}

	paths, err := m.ListPaths(context.Background())
	if err != nil || !reflect.DeepEqual(paths, []string{"a", "b"}) {
		t.Errorf("ListPaths = %v, %v", paths, err)
	}

	props, err := ResolveProps(context.Background(), m, "a")
	if err != nil {
		t.Fatal(err)
	}
	if props.GetString("title") != "Post a" {
		t.Errorf("props = %v", props)
	}

	if err := m.Close(); err != nil || !p.closed {
		t.Errorf("Close: %v, closed=%v", err, p.closed)
	}
}

func TestNewModuleFunc(t *testing.T) {
	m := NewModule("about.js", func(rc *RenderContext, props Props) ([]*html.Node, error) {
		return nil, nil
	})
	if err := m.Validate("pages"); err != nil {
		t.Fatal(err)
	}
	if m.ListPaths != nil || m.GetProps != nil {
		t.Error("unexpected hooks")
	}

	props, err := ResolveProps(context.Background(), m, "")
	if err != nil || props == nil || len(props) != 0 {
		t.Errorf("props = %v, %v", props, err)
	}
	if err := m.Close(); err != nil {
		t.Error(err)
	}
}

func TestModuleValidate(t *testing.T) {
	for _, m := range []*Module{nil, NewModule("broken.js", "not a page"), {Name: "empty.js"}} {
		err := m.Validate("src/pages")
		if !herrors.IsConfigurationError(err) {
			t.Fatalf("expected configuration error, got %v", err)
		}
		if got, want := err.Error(), "default export from a file in src/pages must be a function"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestResolvePropsError(t *testing.T) {
	boom := errors.New("boom")
	m := &Module{GetProps: func(ctx context.Context, path string) (Props, error) { return nil, boom }}
	if _, err := ResolveProps(context.Background(), m, "x"); err != boom {
		t.Errorf("got %v, want the hook error unchanged", err)
	}
}

func TestResolvePropsUnmodified(t *testing.T) {
	var gotPath string
	m := &Module{GetProps: func(ctx context.Context, path string) (Props, error) {
		gotPath = path
		return nil, nil
	}}
	props, err := ResolveProps(context.Background(), m, "")
	if err != nil || props != nil || gotPath != "" {
		t.Errorf("got %v, %v, %q", props, err, gotPath)
	}
}

func TestPropsDecode(t *testing.T) {
	var post struct {
		Title string
		Tags  []string
		Draft bool
		Order int
	}
	props := Props{"title": "Hello", "tags": []any{"go", "web"}, "draft": "true", "order": "3"}
	if err := props.Decode(&post); err != nil {
		t.Fatal(err)
	}
	if post.Title != "Hello" || !post.Draft || post.Order != 3 || !reflect.DeepEqual(post.Tags, []string{"go", "web"}) {
		t.Errorf("got %+v", post)
	}

	tags, err := props.GetStringSlice("tags")
	if err != nil || !reflect.DeepEqual(tags, []string{"go", "web"}) {
		t.Errorf("GetStringSlice = %v, %v", tags, err)
	}
	if props.GetInt("order") != 3 || !props.GetBool("draft") {
		t.Error("scalar getters")
	}
}
