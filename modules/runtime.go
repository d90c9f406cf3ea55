package modules

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"
	"strings"
	"sync"

	"github.com/sunwei/pagegen/common/loggers"
	"github.com/sunwei/pagegen/common/text"
	"github.com/sunwei/pagegen/page"
	"github.com/sunwei/pagegen/source"
	"golang.org/x/net/html"
)

//go:embed runner.js
var runnerScript string

// ModuleEnvKey is the environment variable holding the module filename
// for the runtime process.
const ModuleEnvKey = "PAGEGEN_MODULE"

// RuntimeError is an error reported by the runtime, e.g. a page hook that
// threw.
type RuntimeError struct {
	Op      string
	Module  string
	Message string
	Stack   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Module, e.Op, e.Message)
}

// Runtime loads transpiled page modules into a JavaScript runtime process,
// one process per module.
type Runtime struct {
	command []string
	logger  loggers.Logger

	// Env is appended to the environment of the runtime process.
	Env []string
}

// NewRuntime creates a Runtime running command, split on white space,
// e.g. "node".
func NewRuntime(command string, logger loggers.Logger) (*Runtime, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("runtime: no command configured")
	}
	if logger == nil {
		logger = loggers.NewDefault()
	}
	return &Runtime{command: fields, logger: logger}, nil
}

// Load starts a runtime process for f and asks it what the module exports.
// The returned module must be closed.
func (r *Runtime) Load(ctx context.Context, f source.File) (*page.Module, error) {
	args := append(r.command[1:len(r.command):len(r.command)], "-e", runnerScript)

	// The process outlives ctx, it is stopped by Close.
	cmd := exec.Command(r.command[0], args...)
	cmd.Env = append(append(os.Environ(), r.Env...), ModuleEnvKey+"="+f.Filename())

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr := &stderrWriter{logger: r.logger, module: f.Path()}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("runtime: start %q: %w", r.command[0], err)
	}

	rm := &runtimeModule{
		name:      f.Path(),
		cmd:       cmd,
		stdin:     stdin,
		enc:       json.NewEncoder(stdin),
		responses: make(chan response),
		stderr:    stderr,
		logger:    r.logger,
	}
	go rm.readLoop(stdout)

	var desc struct {
		Render   bool `json:"render"`
		GetPaths bool `json:"getPaths"`
		GetProps bool `json:"getProps"`
	}
	if err := rm.call(ctx, "describe", nil, &desc); err != nil {
		rm.Close()
		return nil, err
	}

	rm.listsPaths = desc.GetPaths

	m := &page.Module{Name: f.Path(), Closer: rm}
	if desc.Render {
		m.Render = rm.render
	}
	if desc.GetPaths {
		m.ListPaths = rm.listPaths
	}
	if desc.GetProps {
		m.GetProps = rm.getProps
	}

	return m, nil
}

type request struct {
	ID       int        `json:"id"`
	Op       string     `json:"op"`
	Path     *string    `json:"path,omitempty"`
	Props    page.Props `json:"props"`
	PropsRef int        `json:"propsRef,omitempty"`
}

type response struct {
	ID     int             `json:"id"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
		Stack   string `json:"stack"`
	} `json:"error"`
}

type runtimeModule struct {
	name   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	enc    *json.Encoder
	stderr *stderrWriter
	logger loggers.Logger

	responses chan response

	mu     sync.Mutex
	nextID int

	// The props last returned by getProps, kept so render can hand the
	// runtime back its own value untouched.
	lastProps    page.Props
	lastPropsRef int

	// Set when the module lists its paths, where "" is a logical path
	// of its own and not the absence of one.
	listsPaths bool

	waitOnce sync.Once
	waitErr  error

	closeOnce sync.Once
	closeErr  error
}

func (m *runtimeModule) readLoop(r io.Reader) {
	defer close(m.responses)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 || line[0] != '{' {
			m.logger.Infof("%s: %s", m.name, line)
			continue
		}
		var resp response
		if err := json.Unmarshal(line, &resp); err != nil {
			m.logger.Debugf("%s: invalid runtime response: %s", m.name, err)
			continue
		}
		m.responses <- resp
	}
}

func (m *runtimeModule) call(ctx context.Context, op string, req *request, result any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req == nil {
		req = &request{}
	}
	m.nextID++
	req.ID = m.nextID
	req.Op = op

	if err := m.enc.Encode(req); err != nil {
		return m.exitError(op, err)
	}

	for {
		select {
		case <-ctx.Done():
			m.kill()
			return ctx.Err()
		case resp, ok := <-m.responses:
			if !ok {
				// Wait for stderr to be copied before reporting it.
				m.wait()
				return m.exitError(op, nil)
			}
			if resp.ID != req.ID {
				continue
			}
			if !resp.OK {
				rerr := &RuntimeError{Op: op, Module: m.name}
				if resp.Error != nil {
					rerr.Message = resp.Error.Message
					rerr.Stack = resp.Error.Stack
				}
				return rerr
			}
			if result == nil {
				return nil
			}
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("%s: %s: invalid result: %w", m.name, op, err)
			}
			return nil
		}
	}
}

func (m *runtimeModule) exitError(op string, err error) error {
	msg := "runtime exited unexpectedly"
	if err != nil {
		msg = err.Error()
	}
	if tail := m.stderr.Tail(); tail != "" {
		msg += ": " + tail
	}
	return &RuntimeError{Op: op, Module: m.name, Message: msg}
}

func (m *runtimeModule) listPaths(ctx context.Context) ([]string, error) {
	var paths []string
	if err := m.call(ctx, "getPaths", nil, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (m *runtimeModule) getProps(ctx context.Context, path string) (page.Props, error) {
	req := &request{}
	if path != "" || m.listsPaths {
		req.Path = &path
	}

	var res struct {
		Ref   int             `json:"ref"`
		Value json.RawMessage `json:"value"`
	}
	if err := m.call(ctx, "getProps", req, &res); err != nil {
		return nil, err
	}

	var props page.Props
	if v := bytes.TrimSpace(res.Value); len(v) > 0 && v[0] == '{' {
		if err := json.Unmarshal(v, &props); err != nil {
			return nil, fmt.Errorf("%s: getProps: %w", m.name, err)
		}
	} else if !bytes.Equal(v, []byte("null")) {
		// Not an object; render gets the runtime's own value through the ref.
		props = page.Props{}
	}

	m.lastProps = props
	m.lastPropsRef = res.Ref

	return props, nil
}

func (m *runtimeModule) render(rc *page.RenderContext, props page.Props) ([]*html.Node, error) {
	req := &request{Props: props}
	if m.lastPropsRef != 0 && sameProps(props, m.lastProps) {
		req.PropsRef = m.lastPropsRef
	}

	var res struct {
		Nodes []*jsonNode `json:"nodes"`
		Head  []*jsonNode `json:"head"`
	}
	if err := m.call(rc.Context(), "render", req, &res); err != nil {
		return nil, err
	}

	rc.AddHead(toHTMLNodes(res.Head)...)

	return toHTMLNodes(res.Nodes), nil
}

func sameProps(a, b page.Props) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func (m *runtimeModule) kill() {
	if m.cmd.Process != nil {
		m.cmd.Process.Kill()
	}
}

func (m *runtimeModule) wait() error {
	m.waitOnce.Do(func() {
		m.waitErr = m.cmd.Wait()
	})
	return m.waitErr
}

// Close stops the runtime process.
func (m *runtimeModule) Close() error {
	m.closeOnce.Do(func() {
		m.stdin.Close()
		// The runner exits when stdin is closed; wait for stdout to be
		// drained before Wait closes the pipe.
		for range m.responses {
		}
		if err := m.wait(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) && !exitErr.Exited() {
				// Killed, e.g. on a cancelled build.
				return
			}
			m.closeErr = m.exitError("close", err)
		}
	})
	return m.closeErr
}

// stderrWriter logs the runtime's stderr, e.g. console.log in pages, and
// keeps the last lines for error messages.
type stderrWriter struct {
	logger loggers.Logger
	module string

	mu   sync.Mutex
	buf  []byte
	tail []string
}

const stderrTailLines = 10

func (w *stderrWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := text.Chomp(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
		w.logger.Infof("%s: %s", w.module, line)
		w.tail = append(w.tail, line)
		if len(w.tail) > stderrTailLines {
			w.tail = w.tail[1:]
		}
	}
	return len(p), nil
}

// Tail returns the last lines written.
func (w *stderrWriter) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	lines := w.tail
	if len(w.buf) > 0 {
		lines = append(lines[:len(lines):len(lines)], string(w.buf))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
