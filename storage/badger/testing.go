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

import "github.com/dsaini64/regulations/storage"

// NewMemoryStores creates in-memory stores for testing.
// Returns regulation store, change log, meta store, backend, and error.
// Caller must close the stores and the backend when done.
func NewMemoryStores() (storage.RegulationStore, storage.ChangeLog, storage.MetaStore, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	regStore, err := NewRegulationStore(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	changeLog, err := NewChangeLog(backend)
	if err != nil {
		regStore.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	metaStore := NewMetaStore(backend)

	return regStore, changeLog, metaStore, backend, nil
}
