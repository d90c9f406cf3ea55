package page

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/sunwei/pagegen/types"
)

// Props holds the data passed from GetProps to Render.
type Props map[string]any

// Decode decodes the props into the struct pointed to by out,
// converting between types where needed.
func (p Props) Decode(out any) error {
	if err := mapstructure.WeakDecode(map[string]any(p), out); err != nil {
		return fmt.Errorf("failed to decode props: %w", err)
	}
	return nil
}

// GetString returns the value for key as a string, "" if not set.
func (p Props) GetString(key string) string {
	return cast.ToString(p[key])
}

// GetInt returns the value for key as an int, 0 if not set.
func (p Props) GetInt(key string) int {
	return cast.ToInt(p[key])
}

// GetBool returns the value for key as a bool.
func (p Props) GetBool(key string) bool {
	return cast.ToBool(p[key])
}

// GetStringSlice returns the value for key as a string slice.
// A single string gives a slice with one element.
func (p Props) GetStringSlice(key string) ([]string, error) {
	return types.ToStringSlicePreserveStringE(p[key])
}
