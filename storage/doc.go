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


// Package storage provides the storage abstraction layer for the
// regulation database.
//
// This package defines store interfaces that decouple storage implementation
// from business logic. It allows for different storage backends (BadgerDB,
// in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	store, err := badger.NewRegulationStore(backend)  // returns storage.RegulationStore interface
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - RegulationStore: the canonical regulation set, replaced wholesale on refresh
//   - ChangeLog: append-only record of detected changes
//   - MetaStore: small operational bookkeeping (last refresh)
//
// The regulation store is the source of truth. The vector index kept by the
// vecindex package is a derived cache that can always be rebuilt from it.
//
// # Usage
//
// Create stores over a shared backend:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	store, err := badger.NewRegulationStore(backend)
//
// Use in tests with in-memory storage:
//
//	store, changes, meta, backend, err := badger.NewMemoryStores()
//
// # Thread Safety
//
// All store implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All store methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific
// timeout requirements.
package storage
