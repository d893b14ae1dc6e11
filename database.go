// Copyright 2025 dsaini64
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


package regulations

import (
	"context"
	"log/slog"

	"github.com/dsaini64/regulations/ai"
	"github.com/dsaini64/regulations/ai/openai"
	"github.com/dsaini64/regulations/classify"
	"github.com/dsaini64/regulations/fetch"
	"github.com/dsaini64/regulations/refresh"
	"github.com/dsaini64/regulations/scrape"
	"github.com/dsaini64/regulations/search"
	"github.com/dsaini64/regulations/storage"
	"github.com/dsaini64/regulations/storage/badger"
	"github.com/dsaini64/regulations/vecindex"
)

// Database wires the storage backend, AI provider, classifier and
// vector index into one handle. It is the root object the CLI and
// servers are built from; there is no package-level shared state.
type Database struct {
	backend    *badger.Backend
	store      storage.RegulationStore
	changeLog  storage.ChangeLog
	metaStore  storage.MetaStore
	provider   ai.AIProvider
	classifier *classify.Classifier
	index      *vecindex.Index
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig     *ai.Config
	provider     ai.AIProvider
	inMemory     bool
	snapshotPath string
}

// WithAIConfig sets the AI endpoint configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider, bypassing the AI
// configuration. Used mainly with the mock provider in tests.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the storage backend in memory. The file path
// argument is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithSnapshotPath enables vector index persistence at the given path.
func WithSnapshotPath(path string) DatabaseOption {
	return func(o *databaseOptions) {
		o.snapshotPath = path
	}
}

// NewDatabase opens the regulation database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	store, err := badger.NewRegulationStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	changeLog, err := badger.NewChangeLog(backend)
	if err != nil {
		store.Close()
		backend.Close()
		return nil, err
	}

	metaStore := badger.NewMetaStore(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			changeLog.Close()
			store.Close()
			backend.Close()
			return nil, err
		}
	}

	var indexOpts []vecindex.Option
	if options.snapshotPath != "" {
		indexOpts = append(indexOpts, vecindex.WithSnapshotPath(options.snapshotPath))
	}
	index := vecindex.New(provider.Embedder(), indexOpts...)

	classifier := classify.New(
		classify.WithFetcher(fetch.NewClient()),
		classify.WithLLM(provider.StatusClassifier()),
	)

	return &Database{
		backend:    backend,
		store:      store,
		changeLog:  changeLog,
		metaStore:  metaStore,
		provider:   provider,
		classifier: classifier,
		index:      index,
		logger:     slog.Default(),
	}, nil
}

// Close releases all resources. Safe to call once.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.changeLog.Close(); err != nil {
		db.logger.Error("error closing change log", "err", err)
		return err
	}
	if err := db.store.Close(); err != nil {
		db.logger.Error("error closing regulation store", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) RegulationStore() storage.RegulationStore {
	return db.store
}

func (db *Database) ChangeLog() storage.ChangeLog {
	return db.changeLog
}

func (db *Database) MetaStore() storage.MetaStore {
	return db.metaStore
}

func (db *Database) Index() *vecindex.Index {
	return db.index
}

func (db *Database) Classifier() *classify.Classifier {
	return db.classifier
}

// NewSearcher builds a searcher over the database's store and index.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.store, db.index, opts...)
}

// NewRefresher builds a refresher over the database. A nil supplier
// falls back to the built-in Title 21 sample set.
func (db *Database) NewRefresher(supplier refresh.Supplier, opts ...refresh.Option) (*refresh.Refresher, error) {
	if supplier == nil {
		supplier = scrape.NewSampleSupplier()
	}
	return refresh.NewRefresher(supplier, db.store, db.changeLog, db.metaStore, db.classifier, db.index, opts...)
}

// RebuildIndex re-embeds every stored regulation into the vector index.
func (db *Database) RebuildIndex(ctx context.Context) (int, error) {
	records, err := db.store.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return db.index.Build(ctx, records)
}
