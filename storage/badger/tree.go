package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/storage"
)

// TreeRepository implements storage.TreeRepository for BadgerDB.
type TreeRepository struct {
	backend     *Backend
	ownsBackend bool
	logger      *slog.Logger
}

var _ storage.TreeRepository = (*TreeRepository)(nil)

// NewTreeRepository opens (or creates) a database at path.
// Close closes the database.
func NewTreeRepository(path string) (*TreeRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	repo := NewTreeRepositoryWithBackend(backend)
	repo.ownsBackend = true
	return repo, nil
}

// NewTreeRepositoryWithBackend creates a repository on a shared backend.
// Close leaves the backend open.
func NewTreeRepositoryWithBackend(backend *Backend) *TreeRepository {
	return &TreeRepository{
		backend: backend,
		logger:  slog.Default().With("component", "tree-repository"),
	}
}

// Close closes the backend if the repository opened it.
func (r *TreeRepository) Close() error {
	if r.ownsBackend && !r.backend.IsClosed() {
		return r.backend.Close()
	}
	return nil
}

// SaveTree stores root under name. Saving a tree identical to the stored
// one leaves the stored copy, including SavedAt, untouched.
func (r *TreeRepository) SaveTree(ctx context.Context, name string, root *core.NavigationNode) (*core.StoredTree, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := core.ValidateTree(root); err != nil {
		return nil, err
	}

	checksum := core.IDFromContent(string(storage.MarshalNode(root)))
	var saved *core.StoredTree
	err := r.backend.Update(func(tx *badger.Txn) error {
		existing, err := readTree(tx, name)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if existing != nil && existing.Checksum == checksum {
			r.logger.Debug("tree unchanged", "name", name, "checksum", uint64(checksum))
			saved = existing
			return nil
		}

		saved = &core.StoredTree{
			Name:     name,
			Checksum: checksum,
			Root:     root,
			SavedAt:  time.Now().UTC(),
		}
		return tx.Set(makeTreeKey(name), storage.MarshalStoredTree(saved))
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("saved tree", "name", name, "checksum", uint64(saved.Checksum))
	return saved, nil
}

// LoadTree returns the tree stored under name.
func (r *TreeRepository) LoadTree(ctx context.Context, name string) (*core.StoredTree, error) {
	var tree *core.StoredTree
	err := r.backend.View(func(tx *badger.Txn) error {
		var err error
		tree, err = readTree(tx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// ListTrees returns stored tree names in key order.
func (r *TreeRepository) ListTrees(ctx context.Context) ([]string, error) {
	var names []string
	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(treePrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			names = append(names, treeNameFromKey(iter.Item().Key()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteTree removes the tree stored under name.
func (r *TreeRepository) DeleteTree(ctx context.Context, name string) error {
	return r.backend.Update(func(tx *badger.Txn) error {
		key := makeTreeKey(name)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
			}
			return err
		}
		return tx.Delete(key)
	})
}

func readTree(tx *badger.Txn, name string) (*core.StoredTree, error) {
	item, err := tx.Get(makeTreeKey(name))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
		}
		return nil, err
	}

	var tree *core.StoredTree
	err = item.Value(func(val []byte) error {
		var err error
		tree, err = storage.UnmarshalStoredTree(val)
		return err
	})
	return tree, err
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", storage.ErrInvalidName)
	}
	return nil
}
