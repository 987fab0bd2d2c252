package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/thisisjab/dbir/entity"
	"gopkg.in/yaml.v3"
)

func testUnit() entity.CompiledUnit {
	return entity.CompiledUnit{
		ID:     uuid.MustParse("9b2f4c7e-1d3a-4b5c-8e6f-0a1b2c3d4e5f"),
		Source: "migrations",
		Name:   "001.dbir",
		Status: entity.StatusFailed,
		Statements: []entity.Statement{
			{Kind: "DeleteTable", Line: 1, Text: "Delete Table(s.t)"},
		},
		Messages: []entity.Message{
			{Line: 2, Severity: "error", Code: "bad_input", Text: "Unexpected character '@'."},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		valid    bool
	}{
		{"", FormatText, true},
		{"text", FormatText, true},
		{"JSON", FormatJSON, true},
		{"yaml", FormatYAML, true},
		{"xml", "", false},
	}

	for i, tt := range tests {
		f, err := ParseFormat(tt.input)
		if (err == nil) != tt.valid || f != tt.expected {
			t.Fatalf("#%d - expected %q (valid=%t), got %q, %v", i, tt.expected, tt.valid, f, err)
		}
	}
}

func TestWriterSinkText(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewWriterSink(&buf, FormatText)
	if err != nil {
		t.Fatalf("cannot create sink: %v", err)
	}

	if err := s.Write(context.Background(), testUnit()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "-- 001.dbir [FAILED] 1 statement(s), 1 message(s)\n" +
		"Delete Table(s.t)\n" +
		"[line 2] error: Unexpected character '@'.\n"
	if buf.String() != expected {
		t.Fatalf("expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestWriterSinkJSON(t *testing.T) {
	var buf bytes.Buffer
	s, _ := NewWriterSink(&buf, FormatJSON)

	if err := s.Write(context.Background(), testUnit(), testUnit()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per unit, got %d", len(lines))
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["status"] != "FAILED" || got["id"] != "9b2f4c7e-1d3a-4b5c-8e6f-0a1b2c3d4e5f" {
		t.Fatalf("unexpected json document: %v", got)
	}
}

func TestWriterSinkYAML(t *testing.T) {
	var buf bytes.Buffer
	s, _ := NewWriterSink(&buf, FormatYAML)

	if err := s.Write(context.Background(), testUnit()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		Name       string `yaml:"name"`
		Status     string `yaml:"status"`
		Statements []struct {
			Kind string `yaml:"kind"`
		} `yaml:"statements"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if got.Name != "001.dbir" || got.Status != "FAILED" || len(got.Statements) != 1 || got.Statements[0].Kind != "DeleteTable" {
		t.Fatalf("unexpected yaml document: %+v", got)
	}
}

func TestWriterSinkCanceled(t *testing.T) {
	var buf bytes.Buffer
	s, _ := NewWriterSink(&buf, FormatText)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Write(ctx, testUnit()); err == nil || buf.Len() != 0 {
		t.Fatalf("expected nothing to be written after cancellation")
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")

	for range 2 {
		s, err := NewFileSink(FileSinkConfig{Path: path, Format: "json"})
		if err != nil {
			t.Fatalf("cannot create sink: %v", err)
		}
		if err := s.Write(context.Background(), testUnit()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("cannot close sink: %v", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read output: %v", err)
	}
	if n := strings.Count(string(b), "\n"); n != 2 {
		t.Fatalf("expected the file to be appended to, got %d lines", n)
	}
}

func TestNewFileSinkInvalid(t *testing.T) {
	if _, err := NewFileSink(FileSinkConfig{}); err == nil {
		t.Fatalf("expected an error without a path")
	}
	if _, err := NewFileSink(FileSinkConfig{Path: filepath.Join(t.TempDir(), "x"), Format: "xml"}); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}
