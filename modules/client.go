// Package modules loads transpiled page modules.
package modules

import (
	"context"

	"github.com/sunwei/pagegen/common/loggers"
	"github.com/sunwei/pagegen/page"
	"github.com/sunwei/pagegen/source"
)

// Loader loads the page module in f.
type Loader interface {
	Load(ctx context.Context, f source.File) (*page.Module, error)
}

// ClientConfig configures the module Client.
type ClientConfig struct {
	// The page source dir as configured, named in configuration errors.
	SourceDir string

	// Pages written in Go. These win over the runtime.
	Registry *Registry

	// Runtime loads everything not in the Registry. May be nil when
	// all pages are registered.
	Runtime Loader

	Logger loggers.Logger
}

// Client loads page modules and checks them against the page contract.
type Client struct {
	ccfg   ClientConfig
	logger loggers.Logger
}

// NewClient creates a new Client.
func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = loggers.NewDefault()
	}
	return &Client{ccfg: cfg, logger: logger}
}

// Load loads and validates the module in f. An invalid module is closed
// and a configuration error returned.
func (c *Client) Load(ctx context.Context, f source.File) (*page.Module, error) {
	var loader Loader
	switch {
	case c.ccfg.Registry != nil && c.ccfg.Registry.Has(f):
		c.logger.Debugf("load %s from the registry", f.Path())
		loader = c.ccfg.Registry
	case c.ccfg.Runtime != nil:
		c.logger.Debugf("load %s into the runtime", f.Path())
		loader = c.ccfg.Runtime
	default:
		return nil, &NotFoundError{Module: f.Path()}
	}

	m, err := loader.Load(ctx, f)
	if err != nil {
		return nil, err
	}

	if err := m.Validate(c.ccfg.SourceDir); err != nil {
		m.Close()
		return nil, err
	}

	return m, nil
}

// NotFoundError is returned when no loader can load a module.
type NotFoundError struct {
	Module string
}

func (e *NotFoundError) Error() string {
	return "no loader for page module " + e.Module
}
