package config

import (
	"strings"
	"sync"

	"github.com/spf13/cast"
	"github.com/sunwei/pagegen/common/maps"
)

// New creates an empty Provider.
func New() Provider {
	return &defaultConfigProvider{root: maps.Params{}}
}

// NewFrom creates a Provider holding params, which it takes ownership of.
func NewFrom(params maps.Params) Provider {
	maps.PrepareParams(params)
	return &defaultConfigProvider{root: params}
}

// defaultConfigProvider stores the settings in nested maps.Params with
// lower case keys. It is safe for concurrent use.
type defaultConfigProvider struct {
	mu   sync.RWMutex
	root maps.Params
}

func (c *defaultConfigProvider) Get(key string) any {
	if key == "" {
		return c.root
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, _ := c.lookup(key)
	return v
}

func (c *defaultConfigProvider) IsSet(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, found := c.lookup(key)
	return found
}

func (c *defaultConfigProvider) GetString(key string) string { return cast.ToString(c.Get(key)) }
func (c *defaultConfigProvider) GetInt(key string) int       { return cast.ToInt(c.Get(key)) }
func (c *defaultConfigProvider) GetBool(key string) bool     { return cast.ToBool(c.Get(key)) }

func (c *defaultConfigProvider) GetParams(key string) maps.Params {
	p, _ := c.Get(key).(maps.Params)
	return p
}

// Set sets key to v. Maps are merged into existing maps and the empty
// key merges v into the root.
func (c *defaultConfigProvider) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := toParams(v); ok {
		v = p
	}

	if key == "" {
		if p, ok := v.(maps.Params); ok {
			c.root.Set(p)
		}
		return
	}

	parent, name := c.parent(key, true)
	if parent == nil {
		return
	}

	if existing, ok := parent[name].(maps.Params); ok {
		if p, ok := v.(maps.Params); ok {
			existing.Set(p)
			return
		}
	}
	parent[name] = v
}

// SetDefaults sets the values in params that are not already set.
func (c *defaultConfigProvider) SetDefaults(params maps.Params) {
	maps.PrepareParams(params)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.root.SetDefaults(params)
}

func (c *defaultConfigProvider) lookup(key string) (any, bool) {
	parent, name := c.parent(key, false)
	if parent == nil {
		return nil, false
	}
	v, found := parent[name]
	return v, found
}

// parent returns the map holding key and the last key segment, creating
// the intermediate maps when create is set. It returns nil if a segment
// on the way holds something else than a map.
func (c *defaultConfigProvider) parent(key string, create bool) (maps.Params, string) {
	parts := strings.Split(strings.ToLower(key), ".")
	m := c.root
	for _, part := range parts[:len(parts)-1] {
		next, found := m[part]
		if !found {
			if !create {
				return nil, ""
			}
			next = maps.Params{}
			m[part] = next
		}
		p, ok := next.(maps.Params)
		if !ok {
			return nil, ""
		}
		m = p
	}
	return m, parts[len(parts)-1]
}

func toParams(v any) (maps.Params, bool) {
	switch v.(type) {
	case maps.Params, map[string]any, map[any]any, map[string]string:
		return maps.ToParamsAndPrepare(v)
	}
	return nil, false
}
