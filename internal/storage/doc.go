// Package storage defines the persistent record store for tab-bookmark.
//
// The store is a mapping from bookmark names to snapshot records. It loads
// on demand, supports non-clobbering puts for stack pushes, and renames
// without touching payloads.
//
// Backends:
//
//   - memory: map-backed, for tests and ephemeral use
//   - filestore: single JSON file with external-change reload
//   - badgerstore: Badger-backed, with optional at-rest encryption
package storage
