package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

func newRecord(t *testing.T, titles ...string) *domain.Record {
	t.Helper()
	buffers := make([]domain.BufferRecord, len(titles))
	for i, title := range titles {
		buffers[i] = domain.BufferRecord{Kind: "pane", Title: title}
	}
	rec, err := domain.NewRecord(buffers, &domain.Layout{Format: "tmux", Raw: "raw"})
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	return rec
}

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "bookmarks.json")
}

func TestLoadMissingFile(t *testing.T) {
	s := New(testPath(t), WithWatch(false))
	defer s.Close()

	names, err := s.Names(context.Background())
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Names() = %v, want empty", names)
	}
}

func TestPersistenceAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)

	s1 := New(path, WithWatch(false))
	rec := newRecord(t, "vim", "shell")
	if err := s1.Put(ctx, "@main <1>", rec, false); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	s1.Close()

	s2 := New(path, WithWatch(false))
	defer s2.Close()

	got, err := s2.Get(ctx, "@main <1>")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != rec.ID || len(got.Buffers) != 2 || got.Layout == nil {
		t.Errorf("reloaded record differs: %+v", got)
	}
}

func TestPutNoOverwriteKeepsFirst(t *testing.T) {
	ctx := context.Background()
	s := New(testPath(t), WithWatch(false))
	defer s.Close()

	first := newRecord(t, "vim", "shell")
	second := newRecord(t, "htop")
	if err := s.Put(ctx, "@main <1>", first, true); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, "@main <1>", second, true); err != nil {
		t.Fatalf("second Put() error = %v", err)
	}

	got, err := s.Get(ctx, "@main <1>")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != first.ID || len(got.Buffers) != 2 {
		t.Error("noOverwrite put must keep the first record's payload")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(testPath(t), WithWatch(false))
	defer s.Close()

	s.Put(ctx, "@main <1>", newRecord(t, "vim"), false)
	if err := s.Delete(ctx, "@main <1>"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "@main <1>"); err != nil {
		t.Errorf("deleting an absent name should not fail, got %v", err)
	}
}

func TestRenameKeepsPayload(t *testing.T) {
	ctx := context.Background()
	s := New(testPath(t), WithWatch(false))
	defer s.Close()

	rec := newRecord(t, "vim")
	s.Put(ctx, "@main <1>", rec, false)
	if err := s.Rename(ctx, "@main <1>", "@main keep"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	if _, err := s.Get(ctx, "@main <1>"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Error("old name should be gone")
	}
	got, err := s.Get(ctx, "@main keep")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != rec.ID {
		t.Error("rename must not touch the payload")
	}
}

func TestRejectsNewerFormatVersion(t *testing.T) {
	path := testPath(t)
	data, _ := json.Marshal(fileFormat{Version: formatVersion + 1})
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	s := New(path, WithWatch(false))
	defer s.Close()

	if _, err := s.Names(context.Background()); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("Names() error = %v, want ErrStorage", err)
	}
}

func TestReloadOnExternalChange(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)

	s := New(path)
	defer s.Close()

	if err := s.Put(ctx, "@main <1>", newRecord(t, "vim"), false); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// Simulate another process adding a bookmark.
	other := New(path, WithWatch(false))
	if err := other.Put(ctx, "@main <2>", newRecord(t, "htop"), false); err != nil {
		t.Fatalf("external Put() error = %v", err)
	}
	other.Close()

	deadline := time.Now().Add(3 * time.Second)
	for {
		names, err := s.Names(ctx)
		if err != nil {
			t.Fatalf("Names() error = %v", err)
		}
		if len(names) == 2 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("external change not observed, names = %v", names)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
