// Package filestore provides a single-file JSON record store.
//
// The file is the shared bookmark inventory: other processes may rewrite
// it between invocations, so the store watches it with fsnotify and
// reloads before serving stale reads. Writes go through a temp file and
// rename so readers never observe a partial file.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/minad/tab-bookmark/internal/core/domain"
	"github.com/minad/tab-bookmark/internal/telemetry/logger"
)

// formatVersion is bumped on incompatible file layout changes.
const formatVersion = 1

// fileFormat is the on-disk layout.
type fileFormat struct {
	Version int                       `json:"version"`
	Records map[string]*domain.Record `json:"records"`
}

// Store is a file-backed record store with lazy loading.
type Store struct {
	path   string
	watch  bool
	logger logger.Logger

	mu      sync.Mutex
	loaded  bool
	records map[string]*domain.Record

	stale   atomic.Bool
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithWatch enables or disables external-change watching.
func WithWatch(watch bool) Option {
	return func(s *Store) {
		s.watch = watch
	}
}

// New creates a file store rooted at path. The file is not touched until
// the first operation.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		watch:  true,
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath returns the default bookmark file path.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tab-bookmark", "bookmarks.json")
}

// Load reads the bookmark file if it has not been read yet, or if it
// changed on disk since the last read.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	if s.loaded && !s.stale.Swap(false) {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.records = make(map[string]*domain.Record)
	} else if err != nil {
		return domain.ErrStorage.WithDetails("read bookmark file").WithCause(err)
	} else {
		var ff fileFormat
		if err := json.Unmarshal(data, &ff); err != nil {
			return domain.ErrStorage.WithDetails("parse bookmark file").WithCause(err)
		}
		if ff.Version > formatVersion {
			return domain.ErrStorage.WithDetails(
				fmt.Sprintf("bookmark file version %d is newer than supported %d", ff.Version, formatVersion))
		}
		s.records = ff.Records
		if s.records == nil {
			s.records = make(map[string]*domain.Record)
		}
	}

	if !s.loaded {
		s.loaded = true
		if s.watch {
			if err := s.startWatcher(); err != nil {
				// Watching is best effort; stale reads resolve on restart.
				s.logger.Warn("bookmark file watch unavailable", "path", s.path, "error", err)
			}
		}
	}

	s.logger.Debug("bookmark file loaded", "path", s.path, "records", len(s.records))
	return nil
}

// flushLocked writes the current records atomically.
func (s *Store) flushLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return domain.ErrStorage.WithDetails("create bookmark directory").WithCause(err)
	}

	data, err := json.MarshalIndent(fileFormat{Version: formatVersion, Records: s.records}, "", "  ")
	if err != nil {
		return domain.ErrStorage.WithDetails("encode bookmark file").WithCause(err)
	}

	tmp, err := os.CreateTemp(dir, ".bookmarks-*.json")
	if err != nil {
		return domain.ErrStorage.WithDetails("create temp file").WithCause(err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.ErrStorage.WithDetails("write temp file").WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.ErrStorage.WithDetails("close temp file").WithCause(err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return domain.ErrStorage.WithDetails("replace bookmark file").WithCause(err)
	}

	// Our own rename raises a watch event; the follow-up reload is a no-op
	// reread of what we just wrote.
	return nil
}

// Names returns all stored bookmark names.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	return names, nil
}

// Get retrieves the record stored under name.
func (s *Store) Get(ctx context.Context, name string) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}

	rec, ok := s.records[name]
	if !ok {
		return nil, domain.ErrRecordNotFound.WithDetails(name)
	}
	return rec.Clone(), nil
}

// Put stores rec under name, honoring noOverwrite.
func (s *Store) Put(ctx context.Context, name string, rec *domain.Record, noOverwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}

	if noOverwrite {
		if _, ok := s.records[name]; ok {
			return nil
		}
	}
	s.records[name] = rec.Clone()
	return s.flushLocked()
}

// Delete removes the record stored under name. Absent names are ignored.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}

	if _, ok := s.records[name]; !ok {
		return nil
	}
	delete(s.records, name)
	return s.flushLocked()
}

// Rename relabels a stored record.
func (s *Store) Rename(ctx context.Context, old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}

	rec, ok := s.records[old]
	if !ok {
		return domain.ErrRecordNotFound.WithDetails(old)
	}
	if _, ok := s.records[new]; ok {
		return domain.ErrRecordExists.WithDetails(new)
	}
	delete(s.records, old)
	s.records[new] = rec
	return s.flushLocked()
}

// Close stops the file watcher.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		close(s.done)
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}

// startWatcher watches the bookmark file's directory and marks the store
// stale when the file changes. Watching the directory instead of the file
// survives editors and stores that replace via rename.
func (s *Store) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		w.Close()
		return err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return err
	}

	s.watcher = w
	s.done = make(chan struct{})
	base := filepath.Base(s.path)

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					s.stale.Store(true)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("bookmark file watch error", "error", err)
			case <-s.done:
				return
			}
		}
	}()

	return nil
}
