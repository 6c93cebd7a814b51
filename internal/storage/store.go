package storage

import (
	"context"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

// RecordStore is the persistent mapping from bookmark names to records.
//
// Implementations load lazily: every operation implies Load, and Load is
// idempotent. The store is mutated by a single writer at a time; no
// cross-process locking is provided.
type RecordStore interface {
	// Load materializes the store contents. Safe to call repeatedly.
	Load(ctx context.Context) error

	// Names returns all stored bookmark names, in no particular order.
	Names(ctx context.Context) ([]string, error)

	// Get retrieves the record stored under name.
	// Returns domain.ErrRecordNotFound if absent.
	Get(ctx context.Context, name string) (*domain.Record, error)

	// Put stores rec under name. With noOverwrite set, an existing record
	// of the same name is preserved untouched and the new payload is
	// discarded; without it, the record is replaced.
	Put(ctx context.Context, name string, rec *domain.Record, noOverwrite bool) error

	// Delete removes the record stored under name.
	// Deleting an absent name is not an error.
	Delete(ctx context.Context, name string) error

	// Rename relabels a stored record. The payload is untouched.
	// Returns domain.ErrRecordNotFound if old is absent and
	// domain.ErrRecordExists if new is already taken.
	Rename(ctx context.Context, old, new string) error

	// Close releases backend resources.
	Close() error
}
