package deps

import (
	"fmt"

	"github.com/sunwei/pagegen/bundler"
	"github.com/sunwei/pagegen/common/loggers"
	"github.com/sunwei/pagegen/config"
	"github.com/sunwei/pagegen/helpers"
	"github.com/sunwei/pagegen/minifiers"
	"github.com/sunwei/pagegen/modules"
	"github.com/sunwei/pagegen/publisher"
	"github.com/sunwei/pagegen/sitefs"
	"github.com/sunwei/pagegen/source"
)

// Deps holds dependencies used by many.
// There will be normally only one instance of deps in play
// at a given time, i.e. one per Site built.
type Deps struct {
	// The logger to use.
	Log loggers.Logger `json:"-"`

	// The PathSpec to use
	*helpers.PathSpec `json:"-"`

	// The SourceSpec to use
	SourceSpec *source.SourceSpec `json:"-"`

	// The file systems to use.
	Fs *sitefs.Fs `json:"-"`

	// The configuration to use
	Cfg config.Provider `json:"-"`

	// Transpiles the page sources.
	Transpiler bundler.Transpiler

	// Loads the transpiled page modules.
	Loader modules.Loader

	// Writes the rendered pages.
	Publisher *publisher.DestinationPublisher

	closers []func() error
}

// DepsCfg contains configuration options that can be used to configure a
// build on a global level, i.e. logging etc.
// Nil values will be given default values.
type DepsCfg struct {
	// The Logger to use.
	Logger loggers.Logger

	// The file systems to use
	Fs *sitefs.Fs

	// The configuration to use.
	Cfg config.Provider

	// Pages written in Go.
	Registry *modules.Registry

	// Defaults to esbuild as configured in bundler.
	Transpiler bundler.Transpiler

	// Defaults to the Registry, then the runtime configured in runtime.
	Runtime modules.Loader
}

// New initializes a Dep struct.
// Defaults are set for nil values, but Fs and Cfg are always required.
func New(cfg DepsCfg) (*Deps, error) {
	if cfg.Fs == nil {
		return nil, fmt.Errorf("deps: must provide a Fs")
	}
	if cfg.Cfg == nil {
		return nil, fmt.Errorf("deps: must provide a Cfg")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = loggers.NewDefault()
	}

	ps, err := helpers.NewPathSpec(cfg.Fs, cfg.Cfg)
	if err != nil {
		return nil, fmt.Errorf("create PathSpec: %w", err)
	}

	sp, err := source.NewSourceSpec(cfg.Fs.Source, "")
	if err != nil {
		return nil, err
	}

	min, err := minifiers.New(cfg.Cfg)
	if err != nil {
		return nil, err
	}

	d := &Deps{
		Log:        logger,
		PathSpec:   ps,
		SourceSpec: sp,
		Fs:         cfg.Fs,
		Cfg:        cfg.Cfg,
		Transpiler: cfg.Transpiler,
		Publisher:  publisher.NewDestinationPublisher(cfg.Fs.PublishDir, min, logger),
	}

	if d.Transpiler == nil {
		b, err := bundler.New(ps.Bundler, logger)
		if err != nil {
			return nil, err
		}
		d.Transpiler = b
		d.closers = append(d.closers, b.Close)
	}

	runtime := cfg.Runtime
	if runtime == nil {
		r, err := modules.NewRuntime(ps.Runtime.Command, logger)
		if err != nil {
			return nil, err
		}
		runtime = r
	}

	d.Loader = modules.NewClient(modules.ClientConfig{
		SourceDir: ps.SourceDir,
		Registry:  cfg.Registry,
		Runtime:   runtime,
		Logger:    logger,
	})

	return d, nil
}

// Close releases the resources held by d, e.g. temporary files.
func (d *Deps) Close() error {
	var firstErr error
	for _, c := range d.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.closers = nil
	return firstErr
}
