package config

import (
	"github.com/sunwei/pagegen/common/maps"
)

// Provider provides the configuration settings for a build.
// Keys are case insensitive and may address nested values with dots,
// e.g. "bundler.command".
type Provider interface {
	Get(key string) any
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetParams(key string) maps.Params
	IsSet(key string) bool

	Set(key string, value any)
	SetDefaults(params maps.Params)
}
