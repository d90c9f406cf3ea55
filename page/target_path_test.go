package page

import (
	"path/filepath"
	"testing"
)

func TestTargetPath(t *testing.T) {
	publishDir := filepath.FromSlash("/site/public")
	root := filepath.FromSlash("/site/public/pages")

	for _, test := range []struct {
		module      string
		logicalPath string
		want        string
	}{
		{"about.js", "", "about/index.html"},
		{"index.js", "", "index.html"},
		{"post.js", "a", "a/index.html"},
		{"post.js", "b", "b/index.html"},
		{"blog/post.tsx", "", "blog/post/index.html"},
		{"blog/post.tsx", "first", "blog/first/index.html"},
		{"blog/index.jsx", "", "blog/index.html"},
		{"blog/post.tsx", "index", "blog/index.html"},
		{"blog/post.tsx", "nested/index", "blog/nested/index.html"},
		{"blog/post.tsx", "feed.html", "blog/feed.html"},
		{"blog/post.page.ts", "", "blog/post/index.html"},
		{"post.js", "index", "index.html"},
	} {
		t.Run(test.module+"+"+test.logicalPath, func(t *testing.T) {
			got, err := TargetPath(TargetPathDescriptor{
				PublishDir:     publishDir,
				ModuleRoot:     root,
				ModuleFilename: filepath.Join(root, filepath.FromSlash(test.module)),
				LogicalPath:    test.logicalPath,
			})
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(publishDir, filepath.FromSlash(test.want)); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestTargetPathIndexLaw(t *testing.T) {
	root := filepath.FromSlash("/p")
	d := TargetPathDescriptor{PublishDir: filepath.FromSlash("/out"), ModuleRoot: root}

	d.ModuleFilename = filepath.Join(root, "docs", "index.js")
	fromBase, err := TargetPath(d)
	if err != nil {
		t.Fatal(err)
	}

	d.ModuleFilename = filepath.Join(root, "docs", "page.js")
	d.LogicalPath = "index"
	fromLogical, err := TargetPath(d)
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.FromSlash("/out/docs/index.html")
	if fromBase != want || fromLogical != want {
		t.Errorf("got %q and %q, want %q", fromBase, fromLogical, want)
	}
}

func TestTargetPathEscape(t *testing.T) {
	root := filepath.FromSlash("/site/public/pages")
	for _, lp := range []string{"../../x", "../.."} {
		_, err := TargetPath(TargetPathDescriptor{
			PublishDir:     filepath.FromSlash("/site/public"),
			ModuleRoot:     root,
			ModuleFilename: filepath.Join(root, "post.js"),
			LogicalPath:    lp,
		})
		if err == nil {
			t.Errorf("%q: expected error", lp)
		}
	}
}
