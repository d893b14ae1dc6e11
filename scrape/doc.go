// Package scrape supplies regulation sets to the refresh pipeline.
//
// Three suppliers are provided: SampleSupplier serves a curated Title 21
// seed set so the system works without network access, FileSupplier
// loads a set from a JSON file, and StaticSupplier wraps an in-memory
// slice (mainly for tests and embedding in other programs). All of them
// return fresh record copies on every fetch; callers may mutate the
// results freely.
package scrape
