package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// RecordIDPrefix is the prefix for record IDs.
// Format: tbrec-{ulid_lowercase}, 32 characters total.
const RecordIDPrefix = "tbrec-"

// BufferRecord describes a single buffer well enough to reopen it later.
//
// The record is opaque to the core: only Kind (which selects the jump
// handler) and Title (used in warnings) are ever interpreted.
type BufferRecord struct {
	// Kind selects the workspace jump handler (e.g. "pane", "file").
	Kind string `json:"kind"`

	// Title identifies the buffer in listings and restore warnings.
	Title string `json:"title"`

	// Path is the file path for file-backed buffers.
	Path string `json:"path,omitempty"`

	// Command is the running command for process-backed buffers.
	Command string `json:"command,omitempty"`

	// Dir is the working directory to reopen in.
	Dir string `json:"dir,omitempty"`

	// Meta carries handler-specific extras.
	Meta map[string]string `json:"meta,omitempty"`
}

// Layout is the serialized window geometry of a context's root layout.
//
// The core treats it as an opaque payload produced and consumed by the
// workspace; Format names the producing serializer.
type Layout struct {
	Format string `json:"format"`
	Raw    string `json:"raw"`
}

// Record is a stored workspace snapshot: the buffers visible in a context
// plus the window geometry to rebuild it. Records are identified by a
// Name in the store; the ID survives renames.
type Record struct {
	// ID is the unique record identifier.
	// Format: tbrec-{ulid_lowercase}, 32 characters total.
	ID string `json:"id"`

	// Buffers lists the snapshot's buffer records in display order.
	Buffers []BufferRecord `json:"buffers"`

	// Layout is the captured window geometry, if any.
	Layout *Layout `json:"layout,omitempty"`

	// CreatedAt is the snapshot creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// NewRecord creates a Record with a generated ID and creation timestamp.
func NewRecord(buffers []BufferRecord, layout *Layout) (*Record, error) {
	id, err := GenerateRecordID()
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:        id,
		Buffers:   buffers,
		Layout:    layout,
		CreatedAt: time.Now().UnixMilli(),
	}, nil
}

// GenerateRecordID generates a new record ID using ULID.
func GenerateRecordID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return RecordIDPrefix + strings.ToLower(id.String()), nil
}

// IsValidRecordID checks if a string is a valid record ID.
func IsValidRecordID(id string) bool {
	id = strings.ToLower(id)
	if !strings.HasPrefix(id, RecordIDPrefix) {
		return false
	}
	// tbrec- (6) + ULID (26) = 32 characters
	if len(id) != 32 {
		return false
	}
	_, err := ulid.Parse(strings.ToUpper(id[len(RecordIDPrefix):]))
	return err == nil
}

// Clone creates a deep copy of the record.
func (r *Record) Clone() *Record {
	clone := *r
	clone.Buffers = make([]BufferRecord, len(r.Buffers))
	for i, b := range r.Buffers {
		clone.Buffers[i] = b
		if b.Meta != nil {
			m := make(map[string]string, len(b.Meta))
			for k, v := range b.Meta {
				m[k] = v
			}
			clone.Buffers[i].Meta = m
		}
	}
	if r.Layout != nil {
		l := *r.Layout
		clone.Layout = &l
	}
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (r *Record) CreatedAtTime() time.Time {
	return time.UnixMilli(r.CreatedAt)
}
