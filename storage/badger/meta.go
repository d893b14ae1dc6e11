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


package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/storage"
)

// MetaStore implements storage.MetaStore for BadgerDB.
type MetaStore struct {
	backend *Backend
}

var _ storage.MetaStore = (*MetaStore)(nil)

// NewMetaStore creates a new MetaStore.
func NewMetaStore(backend *Backend) *MetaStore {
	return &MetaStore{
		backend: backend,
	}
}

// SetLastRefresh persists the record of the most recent completed refresh.
func (s *MetaStore) SetLastRefresh(ctx context.Context, info *core.RefreshInfo) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if info.CompletedAt.IsZero() {
			info.CompletedAt = time.Now().UTC()
		}
		value := storage.MarshalRefreshInfo(info)
		if err := tx.Set([]byte(lastRefreshKey), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetLastRefresh retrieves the most recent refresh record.
// Returns nil, nil if no refresh has completed yet.
func (s *MetaStore) GetLastRefresh(ctx context.Context) (*core.RefreshInfo, error) {
	var info *core.RefreshInfo
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(lastRefreshKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			info, unmarshalErr = storage.UnmarshalRefreshInfo(val)
			return unmarshalErr
		})
	}, false)

	return info, err
}
