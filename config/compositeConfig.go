package config

import "github.com/sunwei/pagegen/common/maps"

// NewCompositeConfig creates a Provider reading from layer where a key is
// set there and from base otherwise. Writes go to layer only, e.g. the
// command line flags.
func NewCompositeConfig(base, layer Provider) Provider {
	return &compositeConfig{base: base, layer: layer}
}

type compositeConfig struct {
	base  Provider
	layer Provider
}

func (c *compositeConfig) pick(key string) Provider {
	if c.layer.IsSet(key) {
		return c.layer
	}
	return c.base
}

func (c *compositeConfig) Get(key string) any { return c.pick(key).Get(key) }
func (c *compositeConfig) GetString(key string) string { return c.pick(key).GetString(key) }
func (c *compositeConfig) GetInt(key string) int { return c.pick(key).GetInt(key) }
func (c *compositeConfig) GetBool(key string) bool { return c.pick(key).GetBool(key) }
func (c *compositeConfig) GetParams(key string) maps.Params { return c.pick(key).GetParams(key) }
func (c *compositeConfig) IsSet(key string) bool { return c.layer.IsSet(key) || c.base.IsSet(key) }
func (c *compositeConfig) Set(key string, value any) { c.layer.Set(key, value) }
func (c *compositeConfig) SetDefaults(params maps.Params) { c.layer.SetDefaults(params) }
