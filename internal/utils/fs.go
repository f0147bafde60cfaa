package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/tiappxml/internal/domain"
)

// Ensure OSFileSystem implements domain.FileSystem
var _ domain.FileSystem = OSFileSystem{}

// OSFileSystem reads from the real filesystem
type OSFileSystem struct{}

// Stat returns file info for a path
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile returns the full content of a file
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// IsFile reports whether path exists and is not a directory
func IsFile(fsys domain.FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDir reports whether path exists and is a directory
func IsDir(fsys domain.FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir ensures a directory exists, creating it if necessary
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// AbsPath expands ~ and returns a cleaned absolute path.
// If the absolute path cannot be determined the cleaned input is returned.
func AbsPath(path string) string {
	path = ExpandPath(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
