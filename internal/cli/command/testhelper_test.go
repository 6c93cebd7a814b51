package command

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/minad/tab-bookmark/internal/cli/config"
	"github.com/minad/tab-bookmark/internal/cli/prompt"
	"github.com/minad/tab-bookmark/internal/core/domain"
	"github.com/minad/tab-bookmark/internal/core/service"
	"github.com/minad/tab-bookmark/internal/storage/memory"
	"github.com/minad/tab-bookmark/internal/workspace"
)

// stubWorkspace is a minimal in-memory workspace for command tests.
type stubWorkspace struct {
	current  string
	contexts []string
	buffers  []workspace.Buffer
	opened   []string
}

func newStubWorkspace(current string) *stubWorkspace {
	return &stubWorkspace{
		current:  current,
		contexts: []string{current},
		buffers:  []workspace.Buffer{{ID: "%1", Title: "vim"}},
	}
}

func (s *stubWorkspace) Current(context.Context) (string, error) {
	return s.current, nil
}

func (s *stubWorkspace) List(context.Context) ([]string, error) {
	return s.contexts, nil
}

func (s *stubWorkspace) SwitchTo(_ context.Context, name string) error {
	s.current = name
	return nil
}

func (s *stubWorkspace) Create(_ context.Context, name string) error {
	if name == "" {
		name = fmt.Sprintf("fresh-%d", len(s.contexts))
	}
	s.contexts = append(s.contexts, name)
	s.current = name
	return nil
}

func (s *stubWorkspace) RenameCurrent(_ context.Context, name string) error {
	s.current = name
	return nil
}

func (s *stubWorkspace) VisibleBuffers(context.Context) ([]workspace.Buffer, error) {
	return s.buffers, nil
}

func (s *stubWorkspace) RecordBuffer(_ context.Context, b workspace.Buffer) (domain.BufferRecord, error) {
	return domain.BufferRecord{Kind: "stub", Title: b.Title}, nil
}

func (s *stubWorkspace) OpenBuffer(_ context.Context, rec domain.BufferRecord) error {
	s.opened = append(s.opened, rec.Title)
	return nil
}

func (s *stubWorkspace) CaptureLayout(context.Context) (*domain.Layout, error) {
	return &domain.Layout{Format: "stub", Raw: "layout"}, nil
}

func (s *stubWorkspace) ApplyLayout(context.Context, *domain.Layout) error {
	return nil
}

// testApp wires an App around an injected in-memory environment.
type testApp struct {
	app   *cli.App
	env   *Env
	ws    *stubWorkspace
	store *memory.Store

	in  *bytes.Buffer
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ws := newStubWorkspace("work")
	store := memory.New()

	env := &Env{
		Config:  config.Default(),
		Manager: service.NewManager(store, ws),
		History: prompt.NewHistoryFile(filepath.Join(t.TempDir(), "history")),
		store:   store,
	}

	ta := &testApp{
		app:   App(),
		env:   env,
		ws:    ws,
		store: store,
		in:    &bytes.Buffer{},
		out:   &bytes.Buffer{},
		err:   &bytes.Buffer{},
	}
	ta.app.Metadata = map[string]any{envKey: env}
	ta.app.Reader = ta.in
	ta.app.Writer = ta.out
	ta.app.ErrWriter = ta.err
	return ta
}

func (ta *testApp) run(t *testing.T, args ...string) error {
	t.Helper()
	return ta.app.Run(append([]string{"tab-bookmark"}, args...))
}
