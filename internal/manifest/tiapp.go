package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/quantmind-br/tiappxml/internal/domain"
	"github.com/quantmind-br/tiappxml/internal/utils"
	"github.com/quantmind-br/tiappxml/internal/xmldoc"
)

// State describes what a Tiapp currently holds
type State int

const (
	// Unloaded means no document has been parsed
	Unloaded State = iota
	// Loaded means the document was loaded from File()
	Loaded
	// Parsed means the document came from Parse and File() is unrelated to it
	Parsed
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Parsed:
		return "parsed"
	default:
		return "unloaded"
	}
}

// Tiapp owns a resolved tiapp.xml path and its parsed document.
// The path and document are only ever replaced together by Load.
type Tiapp struct {
	mu     sync.RWMutex
	file   string
	doc    *xmldoc.Document
	parsed bool

	fs       domain.FileSystem
	locator  *Locator
	startDir string
	log      *utils.Logger
}

// New creates a Tiapp. With WithFile the given manifest is loaded;
// otherwise the Locator searches for one and loads it if found.
// When nothing is found the Tiapp is returned unloaded without error.
func New(opts ...Option) (*Tiapp, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if o.fs == nil {
		o.fs = utils.OSFileSystem{}
	}
	if o.logger == nil {
		o.logger = utils.NewNopLogger()
	}
	if o.locator == nil {
		o.locator = NewLocator(o.fs, o.logger)
	}

	t := &Tiapp{
		fs:       o.fs,
		locator:  o.locator,
		startDir: o.startDir,
		log:      o.logger.WithComponent("manifest"),
	}

	file := o.file
	if file == "" {
		found, ok := t.locate()
		if !ok {
			t.log.Debug().Msg("No manifest found, starting unloaded")
			return t, nil
		}
		file = found
	}

	if err := t.Load(file); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads and parses the manifest at file, searching for one when file
// is empty. On success File and Doc are replaced together; on failure the
// previous state is kept.
func (t *Tiapp) Load(file string) error {
	if file == "" {
		found, ok := t.locate()
		if !ok {
			return ErrNotFound
		}
		file = found
	}

	if !utils.IsFile(t.fs, file) {
		return fmt.Errorf("%w: %s", ErrNotFound, file)
	}

	data, err := t.fs.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, file)
		}
		return fmt.Errorf("failed to read manifest file: %w", err)
	}

	text, err := xmldoc.DecodeText(data)
	if err != nil {
		return NewParseError(file, err)
	}

	doc, err := parse(file, text)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.file = file
	t.doc = doc
	t.parsed = false
	t.mu.Unlock()

	t.log.Debug().Str("path", file).Msg("Manifest loaded")
	return nil
}

// Parse parses xml and replaces the current document. File is left as is
// and the handle reports Parsed until the next successful Load.
func (t *Tiapp) Parse(xml string) error {
	doc, err := parse("", xml)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.doc = doc
	t.parsed = true
	t.mu.Unlock()
	return nil
}

// File returns the path of the last successfully loaded manifest
func (t *Tiapp) File() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.file
}

// Doc returns the current document, or nil when nothing is parsed
func (t *Tiapp) Doc() *xmldoc.Document {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.doc
}

// Snapshot returns the path and document as one consistent pair
func (t *Tiapp) Snapshot() (string, *xmldoc.Document) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.file, t.doc
}

// Loaded reports whether a document is present
func (t *Tiapp) Loaded() bool {
	return t.Doc() != nil
}

// State returns the current state
func (t *Tiapp) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stateLocked()
}

func (t *Tiapp) stateLocked() State {
	switch {
	case t.doc == nil:
		return Unloaded
	case t.parsed:
		return Parsed
	default:
		return Loaded
	}
}

// String returns the serialized document
func (t *Tiapp) String() string {
	return xmldoc.Serialize(t.Doc())
}

func (t *Tiapp) locate() (string, bool) {
	if t.startDir != "" {
		return t.locator.FindFrom(t.startDir)
	}
	return t.locator.Find()
}

func parse(path, text string) (*xmldoc.Document, error) {
	if text == "" {
		if path != "" {
			return nil, fmt.Errorf("%w: %s is empty", ErrInvalidArgument, path)
		}
		return nil, fmt.Errorf("%w: xml must be a non-empty string", ErrInvalidArgument)
	}

	doc, err := xmldoc.Parse(text)
	if err != nil {
		return nil, NewParseError(path, err)
	}
	return doc, nil
}
