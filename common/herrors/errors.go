// Package herrors contains the error types shared by the build packages.
package herrors

import (
	"errors"
	"fmt"
)

// ErrNoRender is the cause carried by a ConfigurationError when a page
// module has no render function.
var ErrNoRender = errors.New("page module has no render function")

// ConfigurationError is returned when a page module does not honour the
// page contract, e.g. its default export is not a function.
type ConfigurationError struct {
	// Dir is the page source directory the module was loaded from.
	Dir string

	// Module is the module filename, if known.
	Module string

	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("default export from a file in %s must be a function", e.Dir)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a ConfigurationError for the module in dir.
func NewConfigurationError(dir, module string) error {
	return &ConfigurationError{Dir: dir, Module: module, Err: ErrNoRender}
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cerr *ConfigurationError
	return errors.As(err, &cerr)
}

// Must panics if err != nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
