package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/storage"
)

// RegulationStore implements storage.RegulationStore for BadgerDB.
type RegulationStore struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RegulationStore = (*RegulationStore)(nil)

// NewRegulationStore creates a new RegulationStore.
func NewRegulationStore(backend *Backend) (*RegulationStore, error) {
	idSeq, err := backend.GetSequence(regulationIDSeq)
	if err != nil {
		return nil, err
	}

	return &RegulationStore{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (s *RegulationStore) Close() error {
	return s.idSeq.Release()
}

// ReplaceAll atomically replaces the stored regulation set. The delete and
// the inserts happen in one transaction, so concurrent readers see either
// the old set or the new set in full.
func (s *RegulationStore) ReplaceAll(ctx context.Context, records ...*core.Regulation) ([]*core.Regulation, error) {
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		// Collect existing keys first; deleting while iterating is unsafe.
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(regulationPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			stale = append(stale, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		for _, record := range records {
			// Always generate new ID from sequence
			nextID, err := s.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = s.idSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Id = core.ID(nextID)

			if record.LastUpdated.IsZero() {
				record.LastUpdated = now
			}

			key := makeRegulationKey(record.Id)
			value := storage.MarshalRegulation(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetAll retrieves every stored regulation ordered by ID ascending. Keys
// embed the ID big-endian, so iteration order is ID order.
func (s *RegulationStore) GetAll(ctx context.Context) ([]*core.Regulation, error) {
	var result []*core.Regulation
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(regulationPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.Regulation
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalRegulation(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetByID retrieves a single regulation by ID.
func (s *RegulationStore) GetByID(ctx context.Context, id core.ID) (*core.Regulation, error) {
	var result *core.Regulation
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRegulationKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalRegulation(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// CountByStatus returns the number of stored regulations per status.
func (s *RegulationStore) CountByStatus(ctx context.Context) (map[core.RegulationStatus]int, error) {
	counts := make(map[core.RegulationStatus]int)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(regulationPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalRegulation(val)
				if err != nil {
					return err
				}
				counts[record.Status]++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return counts, nil
}
