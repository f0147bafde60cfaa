package history

import (
	"time"

	"github.com/quantmind-br/tiappxml/internal/domain"
)

// Ensure BadgerStore implements domain.HistoryStore
var _ domain.HistoryStore = (*BadgerStore)(nil)

// DefaultTTL is how long an entry is kept after its last load
const DefaultTTL = 30 * 24 * time.Hour

// Options contains history store configuration options
type Options struct {
	Directory string
	InMemory  bool
	TTL       time.Duration
	Logger    bool
}

// DefaultOptions returns default history options
func DefaultOptions() Options {
	return Options{
		Directory: "",
		InMemory:  false,
		TTL:       DefaultTTL,
		Logger:    false,
	}
}
