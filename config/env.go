package config

import (
	"strings"
)

// EnvPrefix is the prefix of environment variables that override config
// values, e.g. PAGEGEN_PUBLISHDIR or PAGEGEN_BUNDLER_COMMAND.
const EnvPrefix = "PAGEGEN_"

var envSections = []string{"bundler", "runtime", "document"}

// EnvKey maps an environment variable name to a config key.
// It returns false if the name has not got the EnvPrefix.
func EnvKey(name string) (string, bool) {
	if !strings.HasPrefix(name, EnvPrefix) {
		return "", false
	}
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if key == "" {
		return "", false
	}
	for _, section := range envSections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_"), true
		}
	}
	return key, true
}

func applyEnvOverrides(cfg Provider, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if key, ok := EnvKey(name); ok {
			cfg.Set(key, value)
		}
	}
}
