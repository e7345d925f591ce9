// Package index provides file-based persistence for similarity indexes.
package index

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// indexFile is the serialized index filename inside a document's
// directory.
const indexFile = "index.gob"

// Store persists one similarity index per document as a single gob
// file under <root>/<document name>/. Writes go to a temp file first
// and are renamed into place, so readers never observe a partially
// written index.
type Store struct {
	root string
}

// NewStore creates an index store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	return &Store{root: dir}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Save persists the index for a document, replacing any previous one
// atomically.
func (s *Store) Save(ctx context.Context, name string, ix *domain.Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(s.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", domain.ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, indexFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(ix); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: encoding index: %v", domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", domain.ErrPersistence, err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, indexFile)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing index: %v", domain.ErrPersistence, err)
	}

	logger.Debug("Saved index for %q: %d chunks", name, ix.Len())
	return nil
}

// Load retrieves the persisted index for a document. Returns (nil, nil)
// when no index exists.
func (s *Store) Load(ctx context.Context, name string) (*domain.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, name, indexFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: opening index: %v", domain.ErrPersistence, err)
	}
	defer f.Close()

	var ix domain.Index
	if err := gob.NewDecoder(f).Decode(&ix); err != nil {
		return nil, fmt.Errorf("%w: decoding index for %q: %v", domain.ErrPersistence, name, err)
	}

	return &ix, nil
}

// Delete removes the persisted index. Removing an absent index is a
// no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(s.root, name)); err != nil {
		return fmt.Errorf("%w: deleting index for %q: %v", domain.ErrPersistence, name, err)
	}
	return nil
}

// Exists reports whether a persisted index is present.
func (s *Store) Exists(ctx context.Context, name string) bool {
	if ctx.Err() != nil {
		return false
	}

	_, err := os.Stat(filepath.Join(s.root, name, indexFile))
	return err == nil
}
