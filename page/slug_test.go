package page

import "testing"

func TestSlugTargetPath(t *testing.T) {
	got, err := TargetPath(TargetPathDescriptor{
		PublishDir:     "/site/public",
		ModuleRoot:     "/site/pages",
		ModuleFilename: "/site/pages/blog/post.js",
		LogicalPath:    Slug("Crème Brûlée, Again"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := "/site/public/blog/creme-brulee-again/index.html"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
