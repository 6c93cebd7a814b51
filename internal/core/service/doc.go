// Package service implements the named snapshot stack manager.
//
// The manager layers the "@context <ordinal>" stack convention over an
// injected record store and workspace: it generates and parses bookmark
// names, saves and restores workspace snapshots, and keeps per-context
// bookmarks in LIFO order.
package service
