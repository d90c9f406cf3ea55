package sitefs

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/sunwei/pagegen/config"
)

func TestNewFrom(t *testing.T) {
	mfs := afero.NewMemMapFs()
	cfg := config.New()
	cfg.Set("workingDir", filepath.FromSlash("/site"))
	cfg.Set("publishDir", "public")

	fs, err := NewFrom(mfs, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if ok, _ := afero.DirExists(mfs, filepath.FromSlash("/site/public")); !ok {
		t.Fatal("publish dir not created")
	}

	if err := afero.WriteFile(fs.PublishDir, filepath.FromSlash("about/index.html"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if ok, _ := afero.Exists(mfs, filepath.FromSlash("/site/public/about/index.html")); !ok {
		t.Error("PublishDir is not rooted at the publish dir")
	}

	if err := afero.WriteFile(mfs, filepath.FromSlash("/site/shell.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if b, err := afero.ReadFile(fs.WorkingDir, "shell.html"); err != nil || string(b) != "<html></html>" {
		t.Errorf("WorkingDir read = %q, %v", b, err)
	}
	if err := afero.WriteFile(fs.WorkingDir, "x.txt", []byte("x"), 0o644); err == nil {
		t.Error("WorkingDir must not be writable")
	}
}

func TestNewFromMissingPublishDir(t *testing.T) {
	cfg := config.New()
	cfg.Set("workingDir", "/site")
	if _, err := NewFrom(afero.NewMemMapFs(), cfg); err == nil {
		t.Fatal("expected error")
	}
}
