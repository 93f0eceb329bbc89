// Package sqlite persists the corpus cache blob - the (fingerprint,
// chunk-list) pair - as a single SQLite file at a configured path.
//
// The blob is all-or-nothing: Save rebuilds the file from scratch and
// Load either returns a structurally valid pair or an error that callers
// treat as an invalid cache to be deleted. There is no in-place mutation
// and no migration of old blobs; a schema change simply invalidates them.
package sqlite
