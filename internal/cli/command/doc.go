// Package command provides CLI command definitions for tab-bookmark.
//
// This package defines the user-invocable actions:
//
//   - toggle: open the named bookmark, or save one if absent
//   - save, open, delete, rename: explicit bookmark management
//   - push, pop: ordinal stack operations on the current context
//   - list: show stored bookmarks
//
// Actions taking a name fall back to interactive prompting when the
// argument is omitted.
package command
