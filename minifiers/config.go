package minifiers

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/sunwei/pagegen/config"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/minify/v2/xml"
)

type minifyConfig struct {
	MinifyOutput bool

	DisableHTML bool
	DisableCSS  bool
	DisableJS   bool
	DisableJSON bool
	DisableSVG  bool
	DisableXML  bool

	// Options passed to the tdewolff minifiers, e.g.
	// minifiers.tdewolff.html.keepComments.
	Tdewolff struct {
		HTML html.Minifier
		CSS  css.Minifier
		JS   js.Minifier
		JSON json.Minifier
		SVG  svg.Minifier
		XML  xml.Minifier
	}
}

// newMinifyConfig returns the settings used when nothing is configured.
// Pages keep their document and end tags so the published markup stays
// close to what was rendered.
func newMinifyConfig() minifyConfig {
	var c minifyConfig
	c.Tdewolff.HTML = html.Minifier{
		KeepDocumentTags:        true,
		KeepEndTags:             true,
		KeepDefaultAttrVals:     true,
		KeepConditionalComments: true,
	}
	c.Tdewolff.CSS.KeepCSS2 = true
	return c
}

func decodeConfig(cfg config.Provider) (minifyConfig, error) {
	conf := newMinifyConfig()
	if cfg == nil {
		return conf, nil
	}

	conf.MinifyOutput = cfg.GetBool("minify")

	if m := cfg.GetParams("minifiers"); m != nil {
		if err := mapstructure.WeakDecode(m, &conf); err != nil {
			return conf, fmt.Errorf("failed to decode minifiers config: %w", err)
		}
	}
	return conf, nil
}
