package config

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thisisjab/dbir/engine"
	"github.com/thisisjab/dbir/sink"
	"github.com/thisisjab/dbir/source"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	migration := writeFile(t, dir, "001.dbir", "Delete Table(s.t)")
	out := filepath.Join(dir, "out.json")

	path := writeFile(t, dir, "config.yaml", `
logger:
  level: debug
  type: json
engine:
  workers: 2
  sink_buffer_size: 10
  sink_flush_interval: 5s
sink:
  type: file
  config:
    path: `+out+`
    format: json
sources:
  - name: first
    type: file
    config:
      path: `+migration+`
api:
  addr: ":9000"
  cors:
    trusted_origins: ["http://localhost:3000"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Logger.Level != "debug" || cfg.Logger.Type != "json" || cfg.Logger.Output != "stderr" {
		t.Fatalf("unexpected logger config: %+v", cfg.Logger)
	}
	if cfg.Engine.Workers != 2 || cfg.Engine.SinkFlushInterval != 5*time.Second || cfg.Engine.UnitsBufferSize != 16 {
		t.Fatalf("unexpected engine config: %+v", cfg.Engine)
	}
	if cfg.API.Addr != ":9000" || len(cfg.API.CORS.TrustedOrigins) != 1 {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}

	if _, err := cfg.NewLogger(); err != nil {
		t.Fatalf("cannot create logger: %v", err)
	}

	ec, err := cfg.Parse(discard, io.Discard, nil)
	if err != nil {
		t.Fatalf("cannot parse config: %v", err)
	}

	fs, ok := ec.Sink.(*sink.FileSink)
	if !ok {
		t.Fatalf("expected a file sink, got %T", ec.Sink)
	}
	defer fs.Close()

	if s, ok := ec.Sources["first"].(*source.FileSource); !ok || s.Name() != "first" {
		t.Fatalf("expected a file source named first, got %v", ec.Sources)
	}
	if ec.WorkersCount != 2 || ec.SinkBufferMaxSize != 10 {
		t.Fatalf("unexpected engine config: %+v", ec)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestParseOverridesSources(t *testing.T) {
	cfg := Default()
	cfg.Sources = []SourceConfig{{Name: "broken", Type: "ftp"}}

	given := map[string]engine.UnitSource{}
	s, err := source.NewFileSource(discard, source.FileSourceConfig{Path: "a.dbir"})
	if err != nil {
		t.Fatalf("cannot create source: %v", err)
	}
	given[s.Name()] = s

	ec, err := cfg.Parse(discard, io.Discard, given)
	if err != nil {
		t.Fatalf("expected configured sources to be ignored, got %v", err)
	}
	if len(ec.Sources) != 1 || ec.Sources["a.dbir"] == nil {
		t.Fatalf("unexpected sources: %v", ec.Sources)
	}
}

func TestStdoutSink(t *testing.T) {
	cfg := Default()
	cfg.Sink.Config = map[string]any{"format": "yaml"}

	var buf bytes.Buffer
	ec, err := cfg.Parse(discard, &buf, map[string]engine.UnitSource{})
	if err != nil {
		t.Fatalf("cannot parse config: %v", err)
	}

	if err := ec.Sink.Write(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ec.Sink.(*sink.WriterSink); !ok {
		t.Fatalf("expected a writer sink, got %T", ec.Sink)
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		modify  func(*Config)
		message string
	}{
		{func(c *Config) { c.Logger.Level = "verbose" }, "invalid log level"},
		{func(c *Config) { c.Logger.Type = "xml" }, "invalid log type"},
		{func(c *Config) { c.Logger.Output = "syslog" }, "invalid log output"},
		{func(c *Config) { c.Sink.Type = "clickhouse" }, "invalid sink type"},
		{func(c *Config) { c.Sink.Config = map[string]any{"format": "csv"} }, "invalid output format"},
		{func(c *Config) { c.Sources = []SourceConfig{{Name: "x", Type: "ftp"}} }, "invalid unit source type"},
	}

	for i, tt := range tests {
		cfg := Default()
		tt.modify(&cfg)

		_, err := cfg.NewLogger()
		if err == nil {
			_, err = cfg.Parse(discard, io.Discard, nil)
		}
		if err == nil || !strings.Contains(err.Error(), tt.message) {
			t.Fatalf("#%d - expected error containing %q, got %v", i, tt.message, err)
		}
	}
}
