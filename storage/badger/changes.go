package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/storage"
)

// ChangeLog implements storage.ChangeLog for BadgerDB.
type ChangeLog struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ChangeLog = (*ChangeLog)(nil)

// NewChangeLog creates a new ChangeLog.
func NewChangeLog(backend *Backend) (*ChangeLog, error) {
	idSeq, err := backend.GetSequence(changeRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &ChangeLog{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (l *ChangeLog) Close() error {
	return l.idSeq.Release()
}

// AppendChanges appends change records to the log.
func (l *ChangeLog) AppendChanges(ctx context.Context, changes ...*core.ChangeRecord) ([]*core.ChangeRecord, error) {
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		for _, change := range changes {
			// Always generate new ID from sequence
			nextID, err := l.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = l.idSeq.Next()
				if err != nil {
					return err
				}
			}
			change.Id = core.ID(nextID)

			if change.DetectedAt.IsZero() {
				change.DetectedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeChangeRecordKey(change.Id)
			value := storage.MarshalChangeRecord(change)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update detection-time index
			dateKey := makeChangeDateKey(change.DetectedAt, change.Id)
			if err := tx.Set(dateKey, storage.MarshalID(change.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return changes, err
}

// GetChanges retrieves change records detected at or after since, newest
// first. limit <= 0 means no limit.
func (l *ChangeLog) GetChanges(ctx context.Context, since time.Time, limit int) ([]*core.ChangeRecord, error) {
	var result []*core.ChangeRecord
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(changeRecordDateIdx + ":")
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// In reverse mode, seek to a key past every index entry so that
		// iteration starts from the newest record.
		seekKey := append([]byte(changeRecordDateIdx+":"), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
		floor := makePartialChangeDateKey(since)

		for iter.Seek(seekKey); iter.Valid(); iter.Next() {
			item := iter.Item()
			if bytes.Compare(item.Key(), floor) < 0 {
				break
			}

			var id core.ID
			err := item.Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			record, err := l.readChangeRecord(tx, makeChangeRecordKey(id))
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}
			result = append(result, record)

			if limit > 0 && len(result) >= limit {
				break
			}
		}
		return nil
	}, false)
	return result, err
}

// MarkNotified flips the notified flag on the given change records.
func (l *ChangeLog) MarkNotified(ctx context.Context, ids ...core.ID) error {
	return l.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChangeRecordKey(id)
			record, err := l.readChangeRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}
			if record.Notified {
				continue
			}
			record.Notified = true
			if err := tx.Set(key, storage.MarshalChangeRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readChangeRecord reads a change record by key within a transaction.
// Returns nil, nil if the record doesn't exist.
func (l *ChangeLog) readChangeRecord(tx *badger.Txn, key []byte) (*core.ChangeRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ChangeRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalChangeRecord(val)
		return unmarshalErr
	})
	return record, err
}
