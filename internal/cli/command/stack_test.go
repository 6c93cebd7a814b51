package command

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

func TestPushPop(t *testing.T) {
	ta := newTestApp(t)

	if err := ta.run(t, "push"); err != nil {
		t.Fatalf("push error = %v", err)
	}
	if !strings.Contains(ta.out.String(), "Pushed @work <1>") {
		t.Errorf("push output = %q", ta.out.String())
	}

	if err := ta.run(t, "push"); err != nil {
		t.Fatalf("second push error = %v", err)
	}
	if !strings.Contains(ta.out.String(), "Pushed @work <2>") {
		t.Errorf("second push output = %q", ta.out.String())
	}

	ta.out.Reset()
	if err := ta.run(t, "pop"); err != nil {
		t.Fatalf("pop error = %v", err)
	}
	if !strings.Contains(ta.out.String(), "Popped @work <2>") {
		t.Errorf("pop output = %q", ta.out.String())
	}
	if ta.store.Count() != 1 {
		t.Errorf("store count after pop = %d, want 1", ta.store.Count())
	}
}

func TestPopEmpty(t *testing.T) {
	ta := newTestApp(t)

	err := ta.run(t, "pop")
	if !errors.Is(err, domain.ErrStackEmpty) {
		t.Errorf("pop error = %v, want ErrStackEmpty", err)
	}
}

func TestListTable(t *testing.T) {
	ta := newTestApp(t)

	if err := ta.run(t, "save", "@work <1>"); err != nil {
		t.Fatalf("save error = %v", err)
	}

	ta.out.Reset()
	if err := ta.run(t, "list"); err != nil {
		t.Fatalf("list error = %v", err)
	}

	out := ta.out.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "@work <1>") {
		t.Errorf("list output = %q", out)
	}
}

func TestListJSON(t *testing.T) {
	ta := newTestApp(t)

	if err := ta.run(t, "save", "@work <1>"); err != nil {
		t.Fatalf("save error = %v", err)
	}

	ta.out.Reset()
	if err := ta.run(t, "--output", "json", "list"); err != nil {
		t.Fatalf("list error = %v", err)
	}

	var rows []struct {
		Name    string `json:"name"`
		ID      string `json:"id"`
		Buffers int    `json:"buffers"`
	}
	if err := json.Unmarshal(ta.out.Bytes(), &rows); err != nil {
		t.Fatalf("list output is not JSON: %v\n%s", err, ta.out.String())
	}
	if len(rows) != 1 || rows[0].Name != "@work <1>" || rows[0].Buffers != 1 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestListNoHeaders(t *testing.T) {
	ta := newTestApp(t)

	if err := ta.run(t, "save", "@work <1>"); err != nil {
		t.Fatalf("save error = %v", err)
	}

	ta.out.Reset()
	if err := ta.run(t, "--no-headers", "list"); err != nil {
		t.Fatalf("list error = %v", err)
	}
	if strings.Contains(ta.out.String(), "NAME") {
		t.Errorf("headers should be suppressed:\n%s", ta.out.String())
	}
}
