// Package tmux implements the workspace interface on top of tmux.
//
// Contexts map to tmux sessions, buffers to panes, and window geometry to
// the tmux window_layout string, which tmux itself can serialize and
// reapply. All calls shell out to the tmux binary.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/minad/tab-bookmark/internal/core/domain"
	"github.com/minad/tab-bookmark/internal/workspace"
)

// LayoutFormat tags layouts produced by this workspace.
const LayoutFormat = "tmux"

// KindPane is the buffer-record kind handled by this workspace.
const KindPane = "pane"

// runner executes a tmux command and returns its trimmed stdout.
type runner func(ctx context.Context, args ...string) (string, error)

// Workspace drives tmux through its CLI.
type Workspace struct {
	run runner
}

// New creates a tmux workspace using the tmux binary on PATH.
func New() *Workspace {
	return &Workspace{run: runTmux}
}

func runTmux(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("tmux %s: %s", args[0], msg)
	}
	return strings.TrimSpace(string(out)), nil
}

// Current returns the attached session name.
func (w *Workspace) Current(ctx context.Context) (string, error) {
	return w.run(ctx, "display-message", "-p", "#S")
}

// List enumerates session names.
func (w *Workspace) List(ctx context.Context) ([]string, error) {
	out, err := w.run(ctx, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// SwitchTo switches the client to an existing session.
func (w *Workspace) SwitchTo(ctx context.Context, name string) error {
	if _, err := w.run(ctx, "switch-client", "-t", "="+name); err != nil {
		return domain.ErrContextNotFound.WithDetails(name).WithCause(err)
	}
	return nil
}

// Create creates a session and switches the client to it. With an empty
// name, tmux picks the next free session name.
func (w *Workspace) Create(ctx context.Context, name string) error {
	args := []string{"new-session", "-d", "-P", "-F", "#{session_name}"}
	if name != "" {
		args = append(args, "-s", name)
	}
	created, err := w.run(ctx, args...)
	if err != nil {
		return err
	}
	_, err = w.run(ctx, "switch-client", "-t", "="+created)
	return err
}

// RenameCurrent relabels the current session.
func (w *Workspace) RenameCurrent(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrInvalidArgument.WithDetails("context name must not be empty")
	}
	_, err := w.run(ctx, "rename-session", name)
	return err
}

// VisibleBuffers enumerates the panes of the current window.
func (w *Workspace) VisibleBuffers(ctx context.Context) ([]workspace.Buffer, error) {
	out, err := w.run(ctx, "list-panes", "-F",
		"#{pane_id}\t#{pane_title}\t#{pane_current_command}\t#{pane_current_path}")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var buffers []workspace.Buffer
	for _, line := range strings.Split(out, "\n") {
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 4 {
			continue
		}
		buffers = append(buffers, workspace.Buffer{
			ID:      fields[0],
			Title:   fields[1],
			Command: fields[2],
			Dir:     fields[3],
		})
	}
	return buffers, nil
}

// RecordBuffer serializes a pane into a buffer record.
func (w *Workspace) RecordBuffer(_ context.Context, b workspace.Buffer) (domain.BufferRecord, error) {
	return domain.BufferRecord{
		Kind:    KindPane,
		Title:   b.Title,
		Command: b.Command,
		Dir:     b.Dir,
		Meta:    map[string]string{"pane_id": b.ID},
	}, nil
}

// shells are commands not worth re-running on restore; the new pane's
// login shell covers them.
var shells = map[string]bool{
	"sh": true, "bash": true, "zsh": true, "fish": true, "dash": true, "ksh": true,
}

// OpenBuffer reopens a recorded pane in the current window. The pane is
// created detached; ApplyLayout settles the geometry afterwards.
func (w *Workspace) OpenBuffer(ctx context.Context, rec domain.BufferRecord) error {
	if rec.Kind != KindPane {
		return domain.ErrBufferRestore.WithDetails("unknown buffer kind " + rec.Kind)
	}

	args := []string{"split-window", "-d"}
	if rec.Dir != "" {
		args = append(args, "-c", rec.Dir)
	}
	if rec.Command != "" && !shells[rec.Command] {
		args = append(args, rec.Command)
	}

	if _, err := w.run(ctx, args...); err != nil {
		return domain.ErrBufferRestore.WithDetails(rec.Title).WithCause(err)
	}
	return nil
}

// CaptureLayout serializes the current window's layout.
func (w *Workspace) CaptureLayout(ctx context.Context) (*domain.Layout, error) {
	raw, err := w.run(ctx, "display-message", "-p", "#{window_layout}")
	if err != nil {
		return nil, err
	}
	return &domain.Layout{Format: LayoutFormat, Raw: raw}, nil
}

// ApplyLayout reapplies a captured layout to the current window.
func (w *Workspace) ApplyLayout(ctx context.Context, layout *domain.Layout) error {
	if layout == nil || layout.Raw == "" {
		return nil
	}
	if layout.Format != LayoutFormat {
		return domain.ErrInvalidArgument.WithDetails("layout format " + layout.Format + " is not tmux")
	}
	_, err := w.run(ctx, "select-layout", layout.Raw)
	return err
}
