package diagnostic

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Report(Diagnostic{Line: 1, Severity: SeverityWarning, Err: errors.New("rounded")})

	if c.HasErrors() {
		t.Fatalf("warnings must not count as errors")
	}

	c.Report(Diagnostic{Line: 2, Severity: SeverityError, Err: errors.New("broken")})

	if !c.HasErrors() {
		t.Fatalf("expected collector to report errors")
	}
	if len(c.Diagnostics()) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(c.Diagnostics()))
	}
	if got := c.Errors()[0].String(); got != "[line 2] error: broken" {
		t.Fatalf("unexpected diagnostic text: %s", got)
	}
}

func TestMultiAndLogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c := NewCollector()
	var missing *LogReporter
	r := Multi(c, nil, missing, NewLogReporter(logger, "unit", "schema.dbir"))
	r.Report(Diagnostic{Line: 3, Severity: SeverityError, Err: errors.New("Unexpected character '#'.")})

	if len(c.Diagnostics()) != 1 {
		t.Fatalf("expected collector to receive the diagnostic")
	}

	out := buf.String()
	for _, want := range []string{"level=ERROR", "line=3", "unit=schema.dbir", "Unexpected character"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log output to contain %q, got %q", want, out)
		}
	}
}
