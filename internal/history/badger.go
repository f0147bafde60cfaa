package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/quantmind-br/tiappxml/internal/domain"
)

// BadgerStore is a history store implementation using BadgerDB
type BadgerStore struct {
	db        *badger.DB
	ttl       time.Duration
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewBadgerStore creates a new BadgerDB history store
func NewBadgerStore(opts Options) (*BadgerStore, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Directory == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			opts.Directory = filepath.Join(homeDir, ".tiapp", "history")
		}

		if err := os.MkdirAll(opts.Directory, 0755); err != nil {
			return nil, err
		}

		badgerOpts = badger.DefaultOptions(opts.Directory)
	}

	// Disable logging unless explicitly enabled
	if !opts.Logger {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}

	s := &BadgerStore{
		db:   db,
		ttl:  opts.TTL,
		done: make(chan struct{}),
	}

	// Background value log garbage collection
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = db.RunValueLogGC(0.5)
			case <-s.done:
				return
			}
		}
	}()

	return s, nil
}

// Record stores or refreshes the entry for a manifest path
func (s *BadgerStore) Record(ctx context.Context, entry domain.HistoryEntry) error {
	if entry.Path == "" {
		return errors.New("history entry requires a path")
	}
	entry.Path = filepath.Clean(entry.Path)
	if entry.LoadedAt.IsZero() {
		entry.LoadedAt = time.Now()
	}

	value, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(ManifestKey(entry.Path)), value).WithTTL(s.ttl)
		return txn.SetEntry(e)
	})
}

// Get returns the entry for a manifest path
func (s *BadgerStore) Get(ctx context.Context, path string) (*domain.HistoryEntry, error) {
	var entry domain.HistoryEntry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ManifestKey(path)))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrHistoryMiss
			}
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})

	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns up to limit entries, most recently loaded first.
// A limit of zero or less returns every entry.
func (s *BadgerStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []domain.HistoryEntry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PrefixManifest + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var entry domain.HistoryEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LoadedAt.After(entries[j].LoadedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Clear removes all entries from the store
func (s *BadgerStore) Clear() error {
	return s.db.DropAll()
}

// Close releases store resources. Later calls return the first result.
func (s *BadgerStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// Size returns the number of entries in the store
func (s *BadgerStore) Size() int64 {
	var count int64
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count
}
