package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
	}{
		{FormatJSON},
		{FormatYAML},
		{FormatTable},
		{"unknown"}, // default to table
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format)
			if f == nil {
				t.Fatal("NewFormatter returned nil")
			}

			switch tt.format {
			case FormatJSON:
				if _, ok := f.(*JSONFormatter); !ok {
					t.Error("expected JSONFormatter")
				}
			case FormatYAML:
				if _, ok := f.(*YAMLFormatter); !ok {
					t.Error("expected YAMLFormatter")
				}
			default:
				if _, ok := f.(*TableFormatter); !ok {
					t.Error("expected TableFormatter")
				}
			}
		})
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := &JSONFormatter{}

	data := struct {
		Name    string `json:"name"`
		Buffers int    `json:"buffers"`
	}{
		Name:    "@work <1>",
		Buffers: 3,
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"name": "@work <1>"`) {
		t.Errorf("output missing name field:\n%s", out)
	}
	if !strings.Contains(out, `"buffers": 3`) {
		t.Errorf("output missing buffers field:\n%s", out)
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := &YAMLFormatter{}

	data := map[string]any{
		"backend": "file",
		"watch":   true,
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "backend: file") {
		t.Errorf("output missing backend key:\n%s", out)
	}
	if !strings.Contains(out, "watch: true") {
		t.Errorf("output missing watch key:\n%s", out)
	}
}
