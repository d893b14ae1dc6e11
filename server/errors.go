package server

import "errors"

var (
	// ErrStoreRequired is returned when a regulation store is not provided.
	ErrStoreRequired = errors.New("regulation store required")

	// ErrChangeLogRequired is returned when a change log is not provided.
	ErrChangeLogRequired = errors.New("change log required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")
)
