// Package maps holds the nested, case insensitive settings maps used by
// the configuration.
package maps

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/sunwei/pagegen/types"
)

// Params is a map where all keys are lower case.
type Params map[string]any

// Set merges pp into p. Values in pp win, nested Params are merged.
func (p Params) Set(pp Params) {
	p.merge(pp, true)
}

// SetDefaults merges pp into p, keeping the values already in p.
func (p Params) SetDefaults(pp Params) {
	p.merge(pp, false)
}

func (p Params) merge(pp Params, overwrite bool) {
	for k, v := range pp {
		existing, found := p[k]
		if !found {
			p[k] = v
			continue
		}
		dst, dstOK := existing.(Params)
		src, srcOK := v.(Params)
		switch {
		case dstOK && srcOK:
			dst.merge(src, overwrite)
		case overwrite:
			p[k] = v
		}
	}
}

// Get looks up the nested value at path, ignoring case. It returns nil
// when any segment is missing.
func (p Params) Get(path ...string) any {
	var cur any = p
	for _, key := range path {
		m, ok := cur.(Params)
		if !ok {
			return nil
		}
		if cur, ok = m[strings.ToLower(key)]; !ok {
			return nil
		}
	}
	return cur
}

// ToParamsAndPrepare converts in to Params and runs PrepareParams on it.
// A nil in gives an empty map.
func ToParamsAndPrepare(in any) (Params, bool) {
	if types.IsNil(in) {
		return Params{}, true
	}
	var m Params
	switch v := in.(type) {
	case Params:
		m = v
	case map[string]string:
		m = fromStrings(v)
	default:
		sm, err := cast.ToStringMapE(in)
		if err != nil {
			return nil, false
		}
		m = sm
	}
	PrepareParams(m)
	return m, true
}

// PrepareParams lower cases the keys of m in place and turns every
// nested map into Params.
func PrepareParams(m Params) {
	for k, v := range m {
		nested, isMap := asParams(v)
		if isMap {
			PrepareParams(nested)
			v = nested
		}
		if lk := strings.ToLower(k); lk != k {
			delete(m, k)
			m[lk] = v
		} else if isMap {
			m[k] = v
		}
	}
}

func asParams(v any) (Params, bool) {
	switch vv := v.(type) {
	case Params:
		return vv, true
	case map[string]any:
		return vv, true
	case map[any]any:
		return cast.ToStringMap(vv), true
	case map[string]string:
		return fromStrings(vv), true
	}
	return nil, false
}

func fromStrings(in map[string]string) Params {
	p := make(Params, len(in))
	for k, v := range in {
		p[k] = v
	}
	return p
}
