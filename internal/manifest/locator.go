package manifest

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/tiappxml/internal/domain"
	"github.com/quantmind-br/tiappxml/internal/utils"
)

// FileName is the manifest file name searched for by the Locator
const FileName = "tiapp.xml"

// Locator finds the manifest by walking from a directory up to the filesystem root
type Locator struct {
	fs  domain.FileSystem
	log *utils.Logger
}

// NewLocator creates a new Locator. A nil fsys reads the real filesystem
// and a nil logger discards diagnostics.
func NewLocator(fsys domain.FileSystem, logger *utils.Logger) *Locator {
	if fsys == nil {
		fsys = utils.OSFileSystem{}
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Locator{
		fs:  fsys,
		log: logger.WithComponent("locator"),
	}
}

// Candidates returns every path FindFrom would test, nearest first.
// The last candidate always lives in the filesystem root.
func (l *Locator) Candidates(dir string) []string {
	dir = utils.AbsPath(dir)

	var candidates []string
	for {
		candidates = append(candidates, filepath.Join(dir, FileName))

		parent := filepath.Dir(dir)
		if parent == dir {
			return candidates
		}
		dir = parent
	}
}

// FindFrom searches dir and each of its ancestors for the manifest and
// returns the first one that exists. Directories named like the manifest
// are skipped.
func (l *Locator) FindFrom(dir string) (string, bool) {
	for _, candidate := range l.Candidates(dir) {
		l.log.Debug().Str("candidate", candidate).Msg("Checking for manifest")
		if utils.IsFile(l.fs, candidate) {
			l.log.Debug().Str("path", candidate).Msg("Manifest found")
			return candidate, true
		}
	}
	return "", false
}

// Find searches from the current working directory
func (l *Locator) Find() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		l.log.Debug().Err(err).Msg("Cannot determine working directory")
		return "", false
	}
	return l.FindFrom(wd)
}

// Find searches upward from the current working directory on the real filesystem
func Find() (string, bool) {
	return NewLocator(nil, nil).Find()
}
