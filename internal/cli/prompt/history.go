package prompt

import (
	"bufio"
	"os"
	"path/filepath"
)

// History keeps the names accepted at the prompt, backed by a file.
type History struct {
	entries []string
	maxSize int
	file    string
	loaded  bool
	dirty   bool
}

// NewHistory creates a History stored at the default location.
func NewHistory() *History {
	homeDir, _ := os.UserHomeDir()
	return NewHistoryFile(filepath.Join(homeDir, ".tab-bookmark", "history"))
}

// NewHistoryFile creates a History backed by the given file.
func NewHistoryFile(path string) *History {
	return &History{
		entries: make([]string, 0),
		maxSize: 1000,
		file:    path,
	}
}

// Add appends a name, dropping the oldest entry past capacity.
func (h *History) Add(name string) {
	h.entries = append(h.entries, name)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
	h.dirty = true
}

// Get returns the entry at index (0 = most recent).
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Load reads the history file on first use. A missing file is not an error.
func (h *History) Load() error {
	if h.loaded {
		return nil
	}
	h.loaded = true

	file, err := os.Open(h.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.entries = append(h.entries, scanner.Text())
	}
	return scanner.Err()
}

// Save writes the history back to its file. An untouched history is
// left alone, so runs that never prompt cannot clobber the file.
func (h *History) Save() error {
	if !h.dirty {
		return nil
	}

	dir := filepath.Dir(h.file)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	file, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, entry := range h.entries {
		if _, err := file.WriteString(entry + "\n"); err != nil {
			return err
		}
	}
	h.dirty = false
	return nil
}
