// Package main provides the entry point for tab-bookmark.
//
// tab-bookmark snapshots tmux sessions as named bookmarks and restores
// them later, with an ordinal stack per session:
//
//	tab-bookmark                  # toggle: open the prompted name, or save it
//	tab-bookmark save "@work ui"  # snapshot the current session
//	tab-bookmark push             # snapshot onto the session's stack
//	tab-bookmark pop              # restore and drop the top snapshot
//	tab-bookmark list --output json
//
// Bookmarks persist across tmux server restarts; the file backend can be
// shared between machines via a synced home directory.
package main
