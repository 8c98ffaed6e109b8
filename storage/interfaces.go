package storage

import (
	"context"

	"github.com/poiesic/omnisearch/core"
)

// TreeRepository persists named navigation trees.
type TreeRepository interface {
	// SaveTree validates root and stores it under name, replacing any
	// previous tree with that name. The checksum and SavedAt are filled in.
	SaveTree(ctx context.Context, name string, root *core.NavigationNode) (*core.StoredTree, error)

	// LoadTree returns the tree stored under name.
	// Returns ErrNotFound if no such tree exists.
	LoadTree(ctx context.Context, name string) (*core.StoredTree, error)

	// ListTrees returns the names of all stored trees in lexical order.
	ListTrees(ctx context.Context) ([]string, error)

	// DeleteTree removes the tree stored under name.
	// Returns ErrNotFound if no such tree exists.
	DeleteTree(ctx context.Context, name string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
