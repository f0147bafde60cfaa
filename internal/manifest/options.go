package manifest

import (
	"fmt"

	"github.com/quantmind-br/tiappxml/internal/domain"
	"github.com/quantmind-br/tiappxml/internal/utils"
)

// Option configures a Tiapp created with New
type Option func(*options)

type options struct {
	file     string
	startDir string
	fs       domain.FileSystem
	locator  *Locator
	logger   *utils.Logger
	err      error
}

// WithFile loads the manifest at path instead of searching for one.
// An empty path is treated as absent.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithFileValue is WithFile for values from untyped sources such as
// configuration files. A nil value is treated as absent and any value
// that is not a string makes New fail with ErrInvalidArgument.
func WithFileValue(v any) Option {
	return func(o *options) {
		switch path := v.(type) {
		case nil:
		case string:
			o.file = path
		default:
			o.err = fmt.Errorf("%w: file must be a string, got %T", ErrInvalidArgument, v)
		}
	}
}

// WithStartDir makes the Locator search from dir instead of the working directory
func WithStartDir(dir string) Option {
	return func(o *options) {
		o.startDir = dir
	}
}

// WithFileSystem sets the filesystem used to find and read manifests
func WithFileSystem(fsys domain.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithLocator sets the Locator used when no path is given
func WithLocator(l *Locator) Option {
	return func(o *options) {
		o.locator = l
	}
}

// WithLogger sets the logger
func WithLogger(logger *utils.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
