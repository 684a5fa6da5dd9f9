// Package docstore persists each named collection as one whole JSON document.
// A collection is the unit of atomicity: Save replaces the file through a
// temp-file rename, so a concurrent Load always observes some committed state
// and never a torn value.
package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
)

// Collection names. One durable document exists per name.
const (
	CollectionUsers       = "users"
	CollectionProducts    = "products"
	CollectionCart        = "cart"
	CollectionWishlist    = "wishlist"
	CollectionPurchases   = "purchases"
	CollectionGiftCards   = "giftcards"
	CollectionActivityLog = "activityLog"
)

// Store reads and writes collections under a single data directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create data directory")
	}
	return &Store{dir: dir}, nil
}

// Load decodes the named collection into out. A collection that has never
// been written leaves out at its declared empty default. A collection that
// exists but cannot be read or decoded is a storage fault, never silently
// coerced to empty, so corruption is not masked.
func (s *Store) Load(name string, out any) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("read collection %s", name))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("decode collection %s", name))
	}
	return nil
}

// Save durably replaces the named collection's entire content. The document
// is written to a temp file in the same directory, synced, and renamed over
// the previous one; a failed save leaves the prior committed value intact.
func (s *Store) Save(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("encode collection %s", name))
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("stage collection %s", name))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("write collection %s", name))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("sync collection %s", name))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("close collection %s", name))
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("chmod collection %s", name))
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("replace collection %s", name))
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
