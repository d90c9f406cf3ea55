// Package minifiers shrinks published pages and the style and script
// content inlined in them.
package minifiers

import (
	"io"
	"regexp"

	"github.com/sunwei/pagegen/config"
	"github.com/sunwei/pagegen/transform"
	"github.com/tdewolff/minify/v2"
)

// HTMLType is the MIME type of the published pages.
const HTMLType = "text/html"

// Client wraps a minifier.
type Client struct {
	// MinifyOutput is set when the published pages should be minified.
	MinifyOutput bool

	m *minify.M
}

// New creates a Client from the minify and minifiers settings in cfg.
// Every supported type gets a minifier, a pass-through one when disabled,
// so inline content of a disabled type is left as is instead of failing.
func New(cfg config.Provider) (Client, error) {
	conf, err := decodeConfig(cfg)
	if err != nil {
		return Client{}, err
	}

	t := &conf.Tdewolff
	m := minify.New()
	for _, r := range []struct {
		pattern  string
		disabled bool
		min      minify.Minifier
	}{
		{`^text/css$`, conf.DisableCSS, &t.CSS},
		{`^(application|text)/(x-)?(java|ecma)script$`, conf.DisableJS, &t.JS},
		{`^(application|text)/(x-|(ld|manifest)\+)?json$`, conf.DisableJSON, &t.JSON},
		{`^image/svg\+xml$`, conf.DisableSVG, &t.SVG},
		{`^(application|text)/xml$`, conf.DisableXML, &t.XML},
		{`^text/html$`, conf.DisableHTML, &t.HTML},
	} {
		min := r.min
		if r.disabled {
			min = passThrough{}
		}
		m.AddRegexp(regexp.MustCompile(r.pattern), min)
	}

	return Client{m: m, MinifyOutput: conf.MinifyOutput}, nil
}

type passThrough struct{}

func (passThrough) Minify(_ *minify.M, w io.Writer, r io.Reader, _ map[string]string) error {
	_, err := io.Copy(w, r)
	return err
}

// Minify minifies r into w using the minifier registered for mediatype.
func (c Client) Minify(mediatype string, w io.Writer, r io.Reader) error {
	return c.m.Minify(mediatype, w, r)
}

// Transformer returns the publishing step for mediatype, or nil if no
// minifier handles it.
func (c Client) Transformer(mediatype string) transform.Transformer {
	_, params, min := c.m.Match(mediatype)
	if min == nil {
		return nil
	}
	return func(ft transform.FromTo) error {
		return min.Minify(c.m, ft.To(), ft.From(), params)
	}
}
