// Package domain defines the core domain models for tab-bookmark.
//
// Domain models are pure value objects without IO dependencies or
// framework coupling:
//
//   - Name: the structured form of a bookmark name, including the
//     "@context <ordinal>" stack naming convention
//   - Record: a stored workspace snapshot (buffer records + geometry)
//   - DomainError: coded errors shared across all layers
package domain
