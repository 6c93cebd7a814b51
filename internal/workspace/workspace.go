// Package workspace abstracts the host workspace that bookmarks snapshot.
//
// A workspace is a set of named contexts (tmux: sessions), each showing a
// set of buffers (tmux: panes) arranged by a root window layout. The
// snapshot manager only talks to this interface; the tmux subpackage is
// the production implementation and tests use in-memory fakes.
package workspace

import (
	"context"
	"strings"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

// Buffer is one visible buffer in the current context.
type Buffer struct {
	// ID is the host identifier (tmux: pane id such as "%3").
	ID string

	// Title identifies the buffer to the user.
	Title string

	// Command is the running command, if any.
	Command string

	// Dir is the working directory.
	Dir string

	// Hidden marks internal buffers that snapshots skip by default.
	Hidden bool
}

// Filter decides which buffers qualify for a snapshot.
type Filter func(Buffer) bool

// DefaultFilter skips hidden buffers and buffers without a title.
// Callers may substitute their own predicate.
func DefaultFilter(b Buffer) bool {
	if b.Hidden {
		return false
	}
	return strings.TrimSpace(b.Title) != ""
}

// Workspace is the host collaborator for contexts, buffers and geometry.
type Workspace interface {
	// Current returns the name of the current context.
	Current(ctx context.Context) (string, error)

	// List enumerates existing context names.
	List(ctx context.Context) ([]string, error)

	// SwitchTo switches to an existing context.
	SwitchTo(ctx context.Context, name string) error

	// Create creates a new context and switches to it. An empty name
	// creates an unnamed/default context and leaves naming to the host.
	Create(ctx context.Context, name string) error

	// RenameCurrent relabels the current context.
	RenameCurrent(ctx context.Context, name string) error

	// VisibleBuffers enumerates the buffers of the current context.
	VisibleBuffers(ctx context.Context) ([]Buffer, error)

	// RecordBuffer produces a serializable record that can reopen b later.
	RecordBuffer(ctx context.Context, b Buffer) (domain.BufferRecord, error)

	// OpenBuffer reopens a recorded buffer in the current context.
	// This is the jump mechanism; failures are isolated per buffer.
	OpenBuffer(ctx context.Context, rec domain.BufferRecord) error

	// CaptureLayout serializes the current context's root window layout.
	CaptureLayout(ctx context.Context) (*domain.Layout, error)

	// ApplyLayout applies a stored layout to the current context,
	// replacing whatever transient layout exists.
	ApplyLayout(ctx context.Context, layout *domain.Layout) error
}
