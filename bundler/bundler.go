// Package bundler transpiles page sources into node modules with esbuild.
package bundler

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/sunwei/pagegen/common/loggers"
	"github.com/sunwei/pagegen/config"
	"github.com/sunwei/pagegen/sitefs"
)

//go:embed shim.js
var shim []byte

// Transpiler transpiles one page source.
type Transpiler interface {
	Transpile(ctx context.Context, entry, outfile string) error
}

// Error is returned when the bundler fails on an entry.
type Error struct {
	Entry  string
	Output string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("failed to bundle %q: %v", e.Entry, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client runs the bundler command, once per entry.
type Client struct {
	command []string
	conf    config.BundlerConfig
	logger  loggers.Logger

	// Env is appended to the environment of the bundler process.
	Env []string

	shimOnce sync.Once
	shimFile string
	shimErr  error
}

// New creates a new Client for conf. The command is split on white space.
func New(conf config.BundlerConfig, logger loggers.Logger) (*Client, error) {
	command := strings.Fields(conf.Command)
	if len(command) == 0 {
		return nil, errors.New("bundler: no command configured")
	}
	if logger == nil {
		logger = loggers.NewDefault()
	}
	return &Client{command: command, conf: conf, logger: logger}, nil
}

// Args returns the bundler arguments for entry.
func (c *Client) Args(entry, outfile, inject string) []string {
	return []string{
		entry,
		"--bundle",
		"--platform=node",
		"--format=cjs",
		"--outfile=" + outfile,
		"--loader:.js=jsx",
		"--loader:.ts=tsx",
		"--jsx-factory=" + c.conf.JSXFactory,
		"--jsx-fragment=" + c.conf.JSXFragment,
		"--inject:" + inject,
		"--log-level=warning",
	}
}

// Transpile bundles entry into outfile.
func (c *Client) Transpile(ctx context.Context, entry, outfile string) error {
	inject, err := c.shimFilename()
	if err != nil {
		return err
	}

	args := append(c.command[1:len(c.command):len(c.command)], c.Args(entry, outfile, inject)...)

	c.logger.Debugf("bundle %s => %s", entry, outfile)

	cmd := exec.CommandContext(ctx, c.command[0], args...)
	cmd.Env = append(os.Environ(), c.Env...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &Error{Entry: entry, Output: out.String(), Err: err}
	}

	if s := strings.TrimSpace(out.String()); s != "" {
		c.logger.Warnf("bundle %s: %s", entry, s)
	}

	return nil
}

// Close removes the temporary files created by the Client.
func (c *Client) Close() error {
	if c.shimFile == "" {
		return nil
	}
	return sitefs.Os.Remove(c.shimFile)
}

func (c *Client) shimFilename() (string, error) {
	c.shimOnce.Do(func() {
		f, err := afero.TempFile(sitefs.Os, "", "pagegen-shim-*.js")
		if err != nil {
			c.shimErr = fmt.Errorf("bundler: create shim: %w", err)
			return
		}
		defer f.Close()
		if _, err := f.Write(shim); err != nil {
			c.shimErr = fmt.Errorf("bundler: write shim: %w", err)
			return
		}
		c.shimFile = f.Name()
	})
	return c.shimFile, c.shimErr
}
