package service

import (
	"context"
	"testing"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

func seedRecord(t *testing.T, m *Manager, name string) {
	t.Helper()
	rec, err := domain.NewRecord(
		[]domain.BufferRecord{{Kind: "fake", Title: "vim"}},
		&domain.Layout{Format: "fake", Raw: "l"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.store.Put(context.Background(), name, rec, false); err != nil {
		t.Fatal(err)
	}
}

func TestResolveContextSwitchesToExisting(t *testing.T) {
	ctx := context.Background()
	ws := newFakeWorkspace("main")
	ws.contexts = append(ws.contexts, "dev")
	m, _ := newManager(ws)
	seedRecord(t, m, "@dev <1>")

	if err := m.Open(ctx, "@dev <1>"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(ws.switched) != 1 || ws.switched[0] != "dev" {
		t.Errorf("switched = %v, want [dev]", ws.switched)
	}
	if len(ws.created) != 0 {
		t.Errorf("created = %v, want none", ws.created)
	}
}

func TestResolveContextCreatesMissing(t *testing.T) {
	ctx := context.Background()
	ws := newFakeWorkspace("main")
	m, _ := newManager(ws)
	seedRecord(t, m, "@dev <1>")

	if err := m.Open(ctx, "@dev <1>"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(ws.created) != 1 {
		t.Fatalf("created = %v, want one fresh context", ws.created)
	}
	if len(ws.renamed) != 1 || ws.renamed[0] != "dev" {
		t.Errorf("renamed = %v, want [dev]", ws.renamed)
	}
	if ws.current != "dev" {
		t.Errorf("current = %q, want %q", ws.current, "dev")
	}
}

func TestResolveContextStaysInPlace(t *testing.T) {
	ctx := context.Background()
	ws := newFakeWorkspace("dev")
	m, _ := newManager(ws)
	seedRecord(t, m, "@dev <1>")

	if err := m.Open(ctx, "@dev <1>"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(ws.created) != 0 || len(ws.switched) != 0 {
		t.Errorf("created = %v, switched = %v, want restore in place", ws.created, ws.switched)
	}
}

func TestResolveContextUnnamedTarget(t *testing.T) {
	ctx := context.Background()

	// A record without a context sigil restores into a fresh unnamed
	// context when the current one is named.
	ws := newFakeWorkspace("dev")
	m, _ := newManager(ws)
	seedRecord(t, m, "scratch")

	if err := m.Open(ctx, "scratch"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(ws.created) != 1 {
		t.Fatalf("created = %v, want one fresh context", ws.created)
	}
	if ws.created[0] == "dev" || ws.created[0] == domain.DefaultContext {
		t.Errorf("fresh context %q must not reuse a reserved name", ws.created[0])
	}

	// Already unnamed: restore in place, never relabel.
	ws = newFakeWorkspace(domain.DefaultContext)
	m, _ = newManager(ws)
	seedRecord(t, m, "scratch")

	if err := m.Open(ctx, "scratch"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(ws.created) != 0 {
		t.Errorf("created = %v, want restore in place", ws.created)
	}
}
