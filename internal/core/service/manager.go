package service

import (
	"context"
	"sort"

	"github.com/minad/tab-bookmark/internal/core/domain"
	"github.com/minad/tab-bookmark/internal/storage"
	"github.com/minad/tab-bookmark/internal/telemetry/logger"
	"github.com/minad/tab-bookmark/internal/telemetry/metric"
	"github.com/minad/tab-bookmark/internal/workspace"
)

// Action reports which operation a toggle resolved to.
type Action string

const (
	ActionOpened Action = "opened"
	ActionSaved  Action = "saved"
)

// Entry describes one stored bookmark for listings.
type Entry struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Buffers   int    `json:"buffers"`
	CreatedAt int64  `json:"created_at"`
}

// Manager is the named snapshot stack manager.
type Manager struct {
	store   storage.RecordStore
	ws      workspace.Workspace
	filter  workspace.Filter
	logger  logger.Logger
	metrics *metric.Collector
}

// Option configures the Manager.
type Option func(*Manager)

// WithFilter substitutes the buffer qualification predicate.
func WithFilter(f workspace.Filter) Option {
	return func(m *Manager) {
		m.filter = f
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metric.Collector) Option {
	return func(m *Manager) {
		m.metrics = c
	}
}

// NewManager creates a Manager over the given store and workspace.
func NewManager(store storage.RecordStore, ws workspace.Workspace, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		ws:     ws,
		filter: workspace.DefaultFilter,
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentContext returns the current workspace context name.
func (m *Manager) CurrentContext(ctx context.Context) (string, error) {
	return m.ws.Current(ctx)
}

// Names returns all stored bookmark names, sorted for display.
func (m *Manager) Names(ctx context.Context) ([]string, error) {
	names, err := m.store.Names(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Top computes the current context's stack top name.
//
// With existing set it names the highest existing ordinal bookmark and
// reports absence when the stack is empty; without it, it names the next
// free ordinal slot for a push.
func (m *Manager) Top(ctx context.Context, existing bool) (domain.Name, bool, error) {
	current, err := m.ws.Current(ctx)
	if err != nil {
		return domain.Name{}, false, err
	}

	names, err := m.store.Names(ctx)
	if err != nil {
		return domain.Name{}, false, err
	}

	idx := 0
	for _, s := range names {
		n := domain.ParseName(s)
		if n.Context != current {
			continue
		}
		if k, ok := n.Ordinal(); ok && k > idx {
			idx = k
		}
	}

	if !existing {
		idx++
	}
	if idx == 0 {
		return domain.Name{}, false, nil
	}
	return domain.OrdinalName(current, idx), true, nil
}

// Save captures the current context and stores it under name.
//
// With noOverwrite set, an existing record of the same name is preserved
// untouched.
func (m *Manager) Save(ctx context.Context, name string, noOverwrite bool) error {
	rec, err := m.capture(ctx)
	if err != nil {
		return err
	}
	if err := m.store.Put(ctx, name, rec, noOverwrite); err != nil {
		return err
	}

	m.metrics.Save()
	m.logger.Info("bookmark saved", "name", name, "buffers", len(rec.Buffers))
	return nil
}

// capture collects the qualifying visible buffers and the window geometry
// of the current context into a fresh record.
func (m *Manager) capture(ctx context.Context) (*domain.Record, error) {
	buffers, err := m.ws.VisibleBuffers(ctx)
	if err != nil {
		return nil, err
	}

	var records []domain.BufferRecord
	for _, b := range buffers {
		if !m.filter(b) {
			continue
		}
		rec, err := m.ws.RecordBuffer(ctx, b)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	layout, err := m.ws.CaptureLayout(ctx)
	if err != nil {
		return nil, err
	}

	return domain.NewRecord(records, layout)
}

// Open restores the bookmark stored under name.
func (m *Manager) Open(ctx context.Context, name string) error {
	rec, err := m.store.Get(ctx, name)
	if err != nil {
		return err
	}

	if err := m.restore(ctx, domain.ParseName(name).Context, rec); err != nil {
		return err
	}

	m.metrics.Open()
	m.logger.Info("bookmark opened", "name", name, "buffers", len(rec.Buffers))
	return nil
}

// Delete removes the bookmark stored under name. Absent names are ignored.
func (m *Manager) Delete(ctx context.Context, name string) error {
	if err := m.store.Delete(ctx, name); err != nil {
		return err
	}
	m.metrics.Delete()
	m.logger.Info("bookmark deleted", "name", name)
	return nil
}

// Rename relabels a stored bookmark. The payload is untouched.
func (m *Manager) Rename(ctx context.Context, old, new string) error {
	if err := m.store.Rename(ctx, old, new); err != nil {
		return err
	}
	m.metrics.Rename()
	m.logger.Info("bookmark renamed", "old", old, "new", new)
	return nil
}

// Toggle opens name if a bookmark exists under it, otherwise saves the
// current context under it. One interactive action serves as both restore
// and create, disambiguated purely by existence in the store.
func (m *Manager) Toggle(ctx context.Context, name string) (Action, error) {
	names, err := m.store.Names(ctx)
	if err != nil {
		return "", err
	}
	for _, n := range names {
		if n == name {
			return ActionOpened, m.Open(ctx, name)
		}
	}
	return ActionSaved, m.Save(ctx, name, false)
}

// Push saves the current context under the next free ordinal slot and
// returns the name used.
func (m *Manager) Push(ctx context.Context) (string, error) {
	top, _, err := m.Top(ctx, false)
	if err != nil {
		return "", err
	}

	name := top.String()
	if err := m.Save(ctx, name, true); err != nil {
		return "", err
	}
	return name, nil
}

// Pop opens the current context's top ordinal bookmark and deletes it.
// Returns domain.ErrStackEmpty if no ordinal bookmark exists.
func (m *Manager) Pop(ctx context.Context) (string, error) {
	top, ok, err := m.Top(ctx, true)
	if err != nil {
		return "", err
	}
	if !ok {
		current, err := m.ws.Current(ctx)
		if err != nil {
			return "", err
		}
		return "", domain.ErrStackEmpty.WithDetails("context " + current)
	}

	name := top.String()
	if err := m.Open(ctx, name); err != nil {
		return "", err
	}
	if err := m.Delete(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}

// List enumerates stored bookmarks with record metadata, sorted by name.
func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	names, err := m.Names(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		rec, err := m.store.Get(ctx, name)
		if err != nil {
			// Raced with an external delete; skip.
			continue
		}
		entries = append(entries, Entry{
			Name:      name,
			ID:        rec.ID,
			Buffers:   len(rec.Buffers),
			CreatedAt: rec.CreatedAt,
		})
	}
	return entries, nil
}
