// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package omnisearch is an embeddable search engine for an application's
// global search bar. It ranks navigation pages by fuzzy text match and
// visit history, resolves direct object identifiers, and blends in help
// center articles.
//
// Database wires the pieces together: a BadgerDB store of navigation trees
// and the remote services used by search pipelines.
package omnisearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/pipeline"
	"github.com/poiesic/omnisearch/remote"
	"github.com/poiesic/omnisearch/remote/httpapi"
	"github.com/poiesic/omnisearch/search"
	"github.com/poiesic/omnisearch/storage"
	"github.com/poiesic/omnisearch/storage/badger"
)

// Database owns the tree store and the remote provider shared by pipelines.
type Database struct {
	backend  *badger.Backend
	trees    *badger.TreeRepository
	provider remote.Provider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	remoteConfig *remote.Config
	provider     remote.Provider
	inMemory     bool
}

// WithRemoteConfig configures the HTTP remote services.
func WithRemoteConfig(cfg *remote.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.remoteConfig = cfg
	}
}

// WithProvider uses provider instead of the HTTP services. The database
// takes ownership and closes it.
func WithProvider(provider remote.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// InMemory keeps trees in memory only. The path is ignored.
func InMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the tree store at filePath and creates the remote
// provider. Remote responses are cached per the remote config.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		remoteConfig: remote.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = httpapi.NewProvider(options.remoteConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:  backend,
		trees:    badger.NewTreeRepositoryWithBackend(backend),
		provider: remote.NewCachedProvider(provider, options.remoteConfig.CacheSize),
		logger:   slog.Default().With("component", "omnisearch"),
	}, nil
}

// Close closes the remote provider and the tree store.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing remote provider", "err", err)
	}
	if err := db.trees.Close(); err != nil {
		db.logger.Error("error closing tree repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// TreeRepository returns the navigation tree store.
func (db *Database) TreeRepository() storage.TreeRepository {
	return db.trees
}

// Provider returns the (cached) remote provider.
func (db *Database) Provider() remote.Provider {
	return db.provider
}

// ImportTree validates and stores root under name.
func (db *Database) ImportTree(ctx context.Context, name string, root *core.NavigationNode) (*core.StoredTree, error) {
	return db.trees.SaveTree(ctx, name, root)
}

// NewAggregator creates a one-shot search aggregator.
func (db *Database) NewAggregator(opts ...search.Option) (*search.Aggregator, error) {
	return search.NewAggregator(db.provider, opts...)
}

// NewPipeline creates a search pipeline with no tree.
func (db *Database) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return pipeline.NewPipeline(db.provider, opts...)
}

// OpenPipeline creates a search pipeline over the stored tree name.
func (db *Database) OpenPipeline(ctx context.Context, name string, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	stored, err := db.trees.LoadTree(ctx, name)
	if err != nil {
		return nil, err
	}
	db.logger.Debug("opening pipeline", "tree", name, "checksum", uint64(stored.Checksum))
	return pipeline.NewPipeline(db.provider, append(opts, pipeline.WithTree(stored.Root))...)
}
