// Package badgerstore provides a Badger-backed record store.
//
// Records are stored one key per bookmark name under a fixed prefix. The
// database opens lazily on first use and supports optional at-rest
// encryption of record payloads.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"

	"github.com/minad/tab-bookmark/internal/core/domain"
	"github.com/minad/tab-bookmark/internal/storage"
	"github.com/minad/tab-bookmark/internal/telemetry/logger"
)

// recordPrefix namespaces bookmark records in the keyspace.
const recordPrefix = "rec:"

// Config configures the Badger store.
type Config struct {
	// Dir is the database directory.
	Dir string

	// Passphrase enables at-rest encryption of record payloads when set.
	Passphrase string

	// Algorithm selects the encryption algorithm ("aes-gcm" default,
	// "chacha20-poly1305"). Ignored without a passphrase.
	Algorithm string

	// SyncWrites fsyncs each write. Bookmarks are small and rare, so
	// durability wins over throughput.
	SyncWrites bool
}

// DefaultConfig returns the default Badger store configuration.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:        dir,
		SyncWrites: true,
	}
}

// DefaultDir returns the default database directory.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tab-bookmark", "badger")
}

// Store is a Badger-backed record store with lazy opening.
type Store struct {
	cfg    Config
	logger logger.Logger

	mu     sync.Mutex
	db     *badger.DB
	cipher *recordCipher
	closed bool
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a Badger store. The database is not opened until the first
// operation.
func New(cfg Config, opts ...Option) *Store {
	s := &Store{
		cfg:    cfg,
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load opens the database if it is not open yet.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.open()
	return err
}

func (s *Store) open() (*badger.DB, error) {
	if s.closed {
		return nil, domain.ErrStorage.WithDetails("store closed")
	}
	if s.db != nil {
		return s.db, nil
	}
	if s.cfg.Dir == "" {
		return nil, domain.ErrStorage.WithDetails("badger dir is required")
	}

	if s.cfg.Passphrase != "" {
		c, err := newCipher(s.cfg.Dir, s.cfg.Algorithm, []byte(s.cfg.Passphrase))
		if err != nil {
			return nil, err
		}
		s.cipher = c
	}

	opts := badger.DefaultOptions(s.cfg.Dir)
	opts.SyncWrites = s.cfg.SyncWrites
	opts.Logger = &badgerLogger{logger: s.logger}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("open badger db").WithCause(err)
	}
	s.db = db

	s.logger.Debug("badger store opened", "dir", s.cfg.Dir, "encrypted", s.cipher != nil)
	return db, nil
}

func recordKey(name string) []byte {
	return []byte(recordPrefix + name)
}

func (s *Store) encode(rec *domain.Record) ([]byte, error) {
	data, err := storage.EncodeRecord(rec)
	if err != nil {
		return nil, err
	}
	if s.cipher != nil {
		return s.cipher.Seal(data)
	}
	return data, nil
}

func (s *Store) decode(data []byte) (*domain.Record, error) {
	if s.cipher != nil {
		plain, err := s.cipher.Open(data)
		if err != nil {
			return nil, domain.ErrStorage.WithCause(err)
		}
		data = plain
	}
	return storage.DecodeRecord(data)
}

// Names returns all stored bookmark names.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	var names []string
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			names = append(names, string(key[len(recordPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("scan names").WithCause(err)
	}
	return names, nil
}

// Get retrieves the record stored under name.
func (s *Store) Get(ctx context.Context, name string) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	var data []byte
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrRecordNotFound.WithDetails(name)
	}
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("get record").WithCause(err)
	}
	return s.decode(data)
}

// Put stores rec under name, honoring noOverwrite.
func (s *Store) Put(ctx context.Context, name string, rec *domain.Record, noOverwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.open()
	if err != nil {
		return err
	}

	data, err := s.encode(rec)
	if err != nil {
		return err
	}

	err = db.Update(func(txn *badger.Txn) error {
		key := recordKey(name)
		if noOverwrite {
			_, err := txn.Get(key)
			if err == nil {
				return nil
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.ErrStorage.WithDetails("put record").WithCause(err)
	}
	return nil
}

// Delete removes the record stored under name. Absent names are ignored.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.open()
	if err != nil {
		return err
	}

	err = db.Update(func(txn *badger.Txn) error {
		return txn.Delete(recordKey(name))
	})
	if err != nil {
		return domain.ErrStorage.WithDetails("delete record").WithCause(err)
	}
	return nil
}

// Rename relabels a stored record in a single transaction.
func (s *Store) Rename(ctx context.Context, old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.open()
	if err != nil {
		return err
	}

	err = db.Update(func(txn *badger.Txn) error {
		oldKey, newKey := recordKey(old), recordKey(new)

		item, err := txn.Get(oldKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrRecordNotFound.WithDetails(old)
		}
		if err != nil {
			return err
		}

		if _, err := txn.Get(newKey); err == nil {
			return domain.ErrRecordExists.WithDetails(new)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := txn.Set(newKey, data); err != nil {
			return err
		}
		return txn.Delete(oldKey)
	})
	if err != nil {
		if domain.IsDomainError(err, "") {
			return err
		}
		return domain.ErrStorage.WithDetails("rename record").WithCause(err)
	}
	return nil
}

// Close shuts down the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("close badger db: %w", err)
	}
	return nil
}

// badgerLogger adapts the application logger to Badger's Logger interface.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
