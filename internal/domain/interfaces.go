package domain

import (
	"context"
	"io/fs"
)

// FileSystem defines the read-only filesystem access used to find and load manifests
type FileSystem interface {
	// Stat returns file info for a path
	Stat(name string) (fs.FileInfo, error)
	// ReadFile returns the full content of a file
	ReadFile(name string) ([]byte, error)
}

// HistoryStore defines the interface for remembering loaded manifests
type HistoryStore interface {
	// Record stores or refreshes the entry for a manifest path
	Record(ctx context.Context, entry HistoryEntry) error
	// Get returns the entry for a manifest path
	Get(ctx context.Context, path string) (*HistoryEntry, error)
	// List returns up to limit entries, most recently loaded first
	List(ctx context.Context, limit int) ([]HistoryEntry, error)
	// Clear removes all entries
	Clear() error
	// Close releases resources
	Close() error
}
