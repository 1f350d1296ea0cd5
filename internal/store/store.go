// Package store keeps the most recently fetched form tree on disk so it can be
// served when the endpoint is unreachable.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pders01/formtree/internal/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileName is the name of the single cache slot inside the cache directory
const FileName = "cached_items.json"

// Store is a single-slot snapshot of a form tree
type Store struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger

	mu sync.Mutex
}

// New creates a store rooted at dir on fs. A nil logger discards output.
func New(fs afero.Fs, dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fs:     fs,
		dir:    dir,
		logger: logger.With(zap.String("component", "store")),
	}
}

// NewOS creates a store on the real filesystem
func NewOS(dir string, logger *zap.Logger) *Store {
	return New(afero.NewOsFs(), dir, logger)
}

// Path returns the location of the cache file
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Save overwrites the slot with tree. Failures are logged, never returned:
// the caller already holds the tree in memory.
func (s *Store) Save(tree models.Node) {
	if err := s.write(tree); err != nil {
		s.logger.Warn("failed to save tree", zap.String("path", s.Path()), zap.Error(err))
	}
}

func (s *Store) write(tree models.Node) error {
	data, err := models.Encode(tree)
	if err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Write next to the slot and rename so a crash never leaves half a file
	tmp := s.Path() + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.Path()); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}

// Load returns the saved tree. A missing or corrupt file reports false.
func (s *Store) Load() (models.Node, bool) {
	s.mu.Lock()
	data, err := afero.ReadFile(s.fs, s.Path())
	s.mu.Unlock()

	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read cached tree", zap.String("path", s.Path()), zap.Error(err))
		}
		return nil, false
	}

	tree, err := models.Decode(data)
	if err != nil {
		s.logger.Warn("discarding corrupt cached tree", zap.String("path", s.Path()), zap.Error(err))
		return nil, false
	}

	return tree, true
}

// Exists reports whether a snapshot file is present, without decoding it
func (s *Store) Exists() bool {
	ok, err := afero.Exists(s.fs, s.Path())
	return err == nil && ok
}

// Clear removes the snapshot. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}
