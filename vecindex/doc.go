// Package vecindex maintains the in-memory vector index used for semantic
// regulation search.
//
// The index is a derived cache over the canonical regulation store: Build
// embeds every record's searchable text in one batch and swaps the index
// contents atomically, so concurrent queries always see a complete
// generation. Queries score candidates as 1/(1+d) where d is the squared L2
// distance between the query embedding and the record embedding.
//
// With a snapshot path configured, each successful build also persists the
// entries and vectors to disk, letting a restart skip re-embedding. Snapshot
// files are checksummed; a corrupt file is discarded on load and the index
// starts empty until the next build.
package vecindex
