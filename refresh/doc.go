// Package refresh orchestrates the regulation ingestion cycle.
//
// A refresh run fetches the current regulation set from a Supplier,
// classifies unlabeled records concurrently, atomically replaces the
// stored set, records detected changes in the change log, and rebuilds
// the vector index. At most one refresh runs at a time; overlapping
// requests are rejected with ErrRefreshInProgress.
//
// Supplier fetches are retried with exponential backoff. An index
// rebuild failure does not fail the refresh; search degrades to
// keyword-only until the next successful rebuild.
package refresh
