package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kyokomi/emoji/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/pflag"
	"github.com/sunwei/pagegen/common/loggers"
	"github.com/sunwei/pagegen/config"
	"github.com/sunwei/pagegen/deps"
	"github.com/sunwei/pagegen/site"
	"github.com/sunwei/pagegen/sitefs"
)

type buildFlags struct {
	source      string
	destination string
	cfgFile     string
	minify      bool
	bundler     string
	runtime     string
	concurrency int
	logLevel    string
	verbose     bool
	quiet       bool
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"source":      "sourceDir",
	"destination": "publishDir",
	"minify":      "minify",
	"bundler":     "bundler.command",
	"runtime":     "runtime.command",
	"concurrency": "bundler.concurrency",
	"log-level":   "logLevel",
}

func (c *commandeer) newBuildCmd() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the site",
		Long: `Build transpiles every page module below the source dir, renders
it and writes the pages to the destination dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return c.build(cmd.Context(), cfg, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.source, "source", "s", "", "page source dir (default \"pages\")")
	flags.StringVarP(&f.destination, "destination", "d", "", "publish dir (default \"public\")")
	flags.StringVar(&f.cfgFile, "config", "", "config file (default is pagegen.toml, pagegen.yaml or pagegen.yml)")
	flags.BoolVar(&f.minify, "minify", false, "minify the published HTML")
	flags.StringVar(&f.bundler, "bundler", "", "bundler command (default \"esbuild\")")
	flags.StringVar(&f.runtime, "runtime", "", "JavaScript runtime command (default \"node\")")
	flags.IntVar(&f.concurrency, "concurrency", 0, "max concurrent bundler processes, 0 means no limit")
	flags.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "build in quiet mode")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

// loadConfig loads the config file and environment and puts the flags
// that were set on top.
func (c *commandeer) loadConfig(cmd *cobra.Command, f buildFlags) (config.Provider, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	base, filename, err := config.LoadConfig(config.ConfigSourceDescriptor{
		Fs:         sitefs.Os,
		WorkingDir: wd,
		Filename:   f.cfgFile,
		Environ:    os.Environ(),
	})
	if err != nil {
		return nil, err
	}

	layer := config.New()
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		if key, found := flagKeys[fl.Name]; found {
			layer.Set(key, fl.Value.String())
		}
	})

	cfg := config.NewCompositeConfig(base, layer)
	if filename != "" {
		cfg.Set("configFile", filename)
	}

	return cfg, nil
}

func (c *commandeer) newLogger(level string, f buildFlags) (loggers.Logger, error) {
	threshold, err := loggers.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	switch {
	case f.quiet:
		threshold = jww.LevelError
	case f.verbose && threshold > jww.LevelInfo:
		threshold = jww.LevelInfo
	}
	return loggers.NewBasicLoggerForWriter(threshold, c.errOut), nil
}

func (c *commandeer) build(ctx context.Context, cfg config.Provider, f buildFlags) error {
	bc, err := config.DecodeBuildConfig(cfg)
	if err != nil {
		return err
	}

	logger, err := c.newLogger(bc.LogLevel, f)
	if err != nil {
		return err
	}

	if filename := cfg.GetString("configFile"); filename != "" {
		logger.Infof("using config file %s", filename)
	}

	fs, err := sitefs.NewDefault(cfg)
	if err != nil {
		return err
	}

	d, err := deps.New(deps.DepsCfg{
		Logger: logger,
		Fs:     fs,
		Cfg:    cfg,
	})
	if err != nil {
		return err
	}
	defer d.Close()

	s, err := site.New(d)
	if err != nil {
		return err
	}

	res, err := s.Build(ctx)
	if err != nil {
		return err
	}

	if !f.quiet {
		fmt.Fprintf(c.out, "%sBuilt %s\n", c.statusPrefix(":sparkles:"), res)
	}

	return nil
}

// statusPrefix returns the emoji followed by a space when writing to a
// terminal.
func (c *commandeer) statusPrefix(code string) string {
	if f, ok := c.out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return strings.TrimSpace(emoji.Sprint(code)) + " "
	}
	return ""
}
