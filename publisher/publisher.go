package publisher

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/locker"
	radix "github.com/armon/go-radix"
	"github.com/spf13/afero"
	bp "github.com/sunwei/pagegen/common/bufferpool"
	"github.com/sunwei/pagegen/common/loggers"
	"github.com/sunwei/pagegen/helpers"
	"github.com/sunwei/pagegen/minifiers"
	"github.com/sunwei/pagegen/transform"
)

// Publisher publishes a result file.
type Publisher interface {
	Publish(d Descriptor) error
}

// Descriptor describes the needed publishing chain for an item.
type Descriptor struct {
	// The content to publish.
	Src io.Reader

	// Where to publish this content. This is a path relative to the
	// publish dir.
	TargetPath string

	// MediaType of the content, defaults to text/html.
	MediaType string

	// Enable to minify the output.
	Minify bool
}

// NewDestinationPublisher creates a new DestinationPublisher writing to fs,
// usually a file system rooted at the publish dir.
func NewDestinationPublisher(fs afero.Fs, min minifiers.Client, logger loggers.Logger) *DestinationPublisher {
	if logger == nil {
		logger = loggers.NewDefault()
	}
	return &DestinationPublisher{
		fs:      fs,
		min:     min,
		logger:  logger,
		locks:   locker.NewLocker(),
		written: radix.New(),
	}
}

// DestinationPublisher is the default and currently only publisher. It
// prepares and publishes an item to the defined destination, e.g. /public.
// Writing the same target twice overwrites the file; the last writer wins
// and a warning is logged.
type DestinationPublisher struct {
	fs     afero.Fs
	min    minifiers.Client
	logger loggers.Logger

	locks *locker.Locker

	mu      sync.Mutex
	written *radix.Tree
}

// Publish applies any relevant transformations and writes the file
// to its destination, e.g. /public.
func (p *DestinationPublisher) Publish(d Descriptor) error {
	if d.TargetPath == "" {
		return errors.New("publish: must provide a TargetPath")
	}

	key := filepath.ToSlash(filepath.Clean(d.TargetPath))

	p.locks.Lock(key)
	defer p.locks.Unlock(key)

	src := d.Src

	transformers := p.createTransformerChain(d)

	if len(transformers) != 0 {
		b := bp.GetBuffer()
		defer bp.PutBuffer(b)

		if err := transformers.Apply(b, d.Src); err != nil {
			return fmt.Errorf("failed to process %q: %w", d.TargetPath, err)
		}

		// This is now what we write to disk.
		src = b
	}

	f, err := helpers.OpenFileForWriting(p.fs, d.TargetPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = io.Copy(f, src); err != nil {
		return err
	}

	p.mu.Lock()
	_, existed := p.written.Insert(key, struct{}{})
	p.mu.Unlock()

	if existed {
		p.logger.Warnf("%q was written more than once, the last page written wins", key)
	}

	return nil
}

// Written returns the slash separated target paths published so far,
// sorted.
func (p *DestinationPublisher) Written() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var paths []string
	p.written.Walk(func(s string, _ any) bool {
		paths = append(paths, s)
		return false
	})
	return paths
}

// WrittenBelow returns the published target paths starting with prefix.
func (p *DestinationPublisher) WrittenBelow(prefix string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var paths []string
	p.written.WalkPrefix(prefix, func(s string, _ any) bool {
		paths = append(paths, s)
		return false
	})
	return paths
}

// Reset forgets the written paths, e.g. before a new build.
func (p *DestinationPublisher) Reset() {
	p.mu.Lock()
	p.written = radix.New()
	p.mu.Unlock()
}

func (p *DestinationPublisher) createTransformerChain(d Descriptor) transform.Chain {
	transformers := transform.NewEmpty()

	if d.Minify {
		mediaType := d.MediaType
		if mediaType == "" {
			mediaType = minifiers.HTMLType
		}
		if tr := p.min.Transformer(mediaType); tr != nil {
			transformers = append(transformers, tr)
		}
	}

	return transformers
}
