package badger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Regulation IDs are allotted in bursts during a refresh cycle, so a
// moderate lease keeps sequence churn low without leaking large ID gaps
// across restarts.
const idSequenceBandwidth = 32

// Backend wraps a BadgerDB instance shared by the regulation store, the
// change log and the meta store.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter routes badger's internal logging through slog.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens the BadgerDB database at dirPath, creating the
// directory if needed. With inMemory set, dirPath is ignored and nothing
// touches disk.
func OpenBackend(dirPath string, inMemory bool) (*Backend, error) {
	logger := slog.Default().With("component", "storage")

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(dirPath)
		switch {
		case os.IsNotExist(err):
			if err := os.MkdirAll(dirPath, 0755); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		case !info.IsDir():
			return nil, fmt.Errorf("%s is not a directory", dirPath)
		}
		opts = badger.DefaultOptions(dirPath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: logger}
	// Regulation records are short prose entries; compression buys little
	// and costs CPU on every refresh rewrite.
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// WithTx executes fn within a BadgerDB transaction. With isWrite set the
// transaction is read-write; fn must call Commit itself. The transaction
// is discarded when fn returns without committing.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// GetSequence returns a named BadgerDB sequence used for record IDs.
func (b *Backend) GetSequence(name string) (*badger.Sequence, error) {
	return b.db.GetSequence([]byte(name), idSequenceBandwidth)
}
