package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ManifestXML returns a minimal well-formed tiapp.xml for the given app id
func ManifestXML(id, name string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<ti:app xmlns:ti="http://ti.appcelerator.org">
	<id>%s</id>
	<name>%s</name>
	<version>1.0.0</version>
	<publisher>Example Inc.</publisher>
	<sdk-version>12.2.0.GA</sdk-version>
</ti:app>
`, id, name)
}

// TempDir creates a temporary directory for testing.
// Symlinks are resolved so paths compare equal to ones built from os.Getwd.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// EnsureDir creates a directory tree below base and returns its path
func EnsureDir(t *testing.T, base string, elem ...string) string {
	t.Helper()

	path := filepath.Join(append([]string{base}, elem...)...)
	require.NoError(t, os.MkdirAll(path, 0755))
	return path
}

// WriteFile writes content to dir/name and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteManifest writes a tiapp.xml for id into dir and returns its path
func WriteManifest(t *testing.T, dir, id string) string {
	t.Helper()

	return WriteFile(t, dir, "tiapp.xml", ManifestXML(id, id))
}

// Chdir changes the working directory for the duration of the test
func Chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

// FileInfo is a static fs.FileInfo for use with mocked filesystems
type FileInfo struct {
	FileName string
	Dir      bool
}

func (f FileInfo) Name() string       { return f.FileName }
func (f FileInfo) Size() int64        { return 0 }
func (f FileInfo) ModTime() time.Time { return time.Time{} }
func (f FileInfo) IsDir() bool        { return f.Dir }
func (f FileInfo) Sys() any           { return nil }

func (f FileInfo) Mode() fs.FileMode {
	if f.Dir {
		return fs.ModeDir | 0755
	}
	return 0644
}
