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


package refresh

import "errors"

var (
	// ErrSupplierRequired is returned when a regulation supplier is not provided.
	ErrSupplierRequired = errors.New("regulation supplier required")

	// ErrStoreRequired is returned when a regulation store is not provided.
	ErrStoreRequired = errors.New("regulation store required")

	// ErrChangeLogRequired is returned when a change log is not provided.
	ErrChangeLogRequired = errors.New("change log required")

	// ErrClassifierRequired is returned when a classifier is not provided.
	ErrClassifierRequired = errors.New("classifier required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrRefreshInProgress is returned when a refresh is already running.
	ErrRefreshInProgress = errors.New("refresh already in progress")

	// ErrNoRegulations is returned when the supplier produces an empty set.
	// An empty supply aborts the refresh instead of wiping the store.
	ErrNoRegulations = errors.New("supplier returned no regulations")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
