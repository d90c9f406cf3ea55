package types

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// ToStringSlicePreserveStringE converts v to a string slice.
// If v is a string, it will be wrapped in a string slice. Elements must be
// scalars; a nested slice or map is an error rather than being formatted.
func ToStringSlicePreserveStringE(v any) ([]string, error) {
	if IsNil(v) {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		return []string{s}, nil
	}
	if ss, ok := v.([]string); ok {
		return ss, nil
	}

	vv := reflect.ValueOf(v)
	switch vv.Kind() {
	case reflect.Slice, reflect.Array:
		result := make([]string, vv.Len())
		for i := 0; i < vv.Len(); i++ {
			elem := vv.Index(i).Interface()
			if !IsScalar(elem) {
				return nil, fmt.Errorf("element %d: cannot use %T as a string", i, elem)
			}
			s, err := cast.ToStringE(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("failed to convert %T to a string slice", v)
	}
}
