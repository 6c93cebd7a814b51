package service

import (
	"context"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

// restore reconstructs a snapshot in the context named by target.
//
// Buffer failures are isolated: a buffer that cannot be reopened is
// reported and skipped, and the stored geometry is applied regardless of
// how many buffers made it back.
func (m *Manager) restore(ctx context.Context, target string, rec *domain.Record) error {
	if err := m.resolveContext(ctx, target); err != nil {
		return err
	}

	for _, b := range rec.Buffers {
		if err := m.ws.OpenBuffer(ctx, b); err != nil {
			m.metrics.RestoreFailure()
			m.logger.Warn("buffer restore failed", "buffer", b.Title, "error", err)
		}
	}

	return m.ws.ApplyLayout(ctx, rec.Layout)
}

// resolveContext switches to or creates the destination context.
//
// The reserved unnamed context is never relabeled: if the current context
// is already unnamed the restore happens in place, otherwise a fresh
// unnamed context is created. Named targets switch to an existing context
// of that name, or create a fresh one and relabel it with the target.
func (m *Manager) resolveContext(ctx context.Context, target string) error {
	current, err := m.ws.Current(ctx)
	if err != nil {
		return err
	}

	if target == "" || target == domain.DefaultContext {
		if current == domain.DefaultContext {
			return nil
		}
		return m.ws.Create(ctx, "")
	}

	if current == target {
		return nil
	}

	existing, err := m.ws.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range existing {
		if name == target {
			return m.ws.SwitchTo(ctx, target)
		}
	}

	if err := m.ws.Create(ctx, ""); err != nil {
		return err
	}
	return m.ws.RenameCurrent(ctx, target)
}
