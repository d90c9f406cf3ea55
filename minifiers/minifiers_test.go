package minifiers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sunwei/pagegen/config"
	"github.com/sunwei/pagegen/transform"
)

const page = `<!DOCTYPE html><html><head>
    <style>  body  {  color : red ; }  </style>
</head><body>
    <div class="root">
        <p>  Hello   world  </p>
    </div>
</body></html>`

func TestTransformerHTML(t *testing.T) {
	cfg := config.New()
	cfg.Set("minify", true)

	m, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !m.MinifyOutput {
		t.Error("MinifyOutput should be set from the minify key")
	}

	tr := m.Transformer(HTMLType)
	if tr == nil {
		t.Fatal("no HTML transformer")
	}

	var out bytes.Buffer
	c := transform.New(tr)
	if err := c.Apply(&out, strings.NewReader(page)); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if len(got) >= len(page) {
		t.Errorf("output not minified: %q", got)
	}
	if strings.Contains(got, "   ") {
		t.Errorf("white space left in %q", got)
	}
	for _, s := range []string{"<html>", "<head>", "</body>", "Hello world", "color:red"} {
		if !strings.Contains(got, s) {
			t.Errorf("%q missing from %q", s, got)
		}
	}
}

func TestDisableHTML(t *testing.T) {
	cfg := config.New()
	cfg.Set("minifiers", map[string]any{"disableHTML": true})

	m, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := m.Minify(HTMLType, &out, strings.NewReader(page)); err != nil {
		t.Fatal(err)
	}
	if out.String() != page {
		t.Errorf("disabled HTML minifier changed the content: %q", out.String())
	}
}
