// Package diagnostic carries lexer feedback (errors and warnings) from the
// frontend to whoever invoked it.
package diagnostic

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/thisisjab/dbir/fault"
)

// Severity indicates the seriousness of a diagnostic.
type Severity int

const (
	// SeverityError marks input that could not be turned into a token literal.
	SeverityError Severity = iota
	// SeverityWarning marks input that was accepted but is probably not what the author meant.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one message produced while scanning.
type Diagnostic struct {
	Line     uint
	Severity Severity
	Err      error
}

func (d Diagnostic) Message() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Error()
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] %s: %s", d.Line, d.Severity, d.Message())
}

// Reporter receives diagnostics as they are produced.
type Reporter interface {
	Report(d Diagnostic)
}

// Collector keeps every reported diagnostic in order.
type Collector struct {
	diagnostics []Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Errors returns only the error-severity diagnostics.
func (c *Collector) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

func (c *Collector) HasErrors() bool {
	return len(c.Errors()) > 0
}

// LogReporter writes diagnostics to a structured logger.
type LogReporter struct {
	logger *slog.Logger
	attrs  []any
}

// NewLogReporter creates a LogReporter. attrs are appended to every record,
// typically the name of the unit being compiled.
func NewLogReporter(logger *slog.Logger, attrs ...any) *LogReporter {
	return &LogReporter{logger: logger, attrs: attrs}
}

func (r *LogReporter) Report(d Diagnostic) {
	level := slog.LevelError
	if d.Severity == SeverityWarning {
		level = slog.LevelWarn
	}

	args := append([]any{"line", d.Line, "code", fault.CodeOf(d.Err)}, r.attrs...)
	r.logger.Log(context.Background(), level, d.Message(), args...)
}

type multiReporter []Reporter

func (m multiReporter) Report(d Diagnostic) {
	for _, r := range m {
		r.Report(d)
	}
}

// Multi fans a diagnostic out to every non-nil reporter. A typed nil
// pointer, such as a nil *LogReporter, counts as nil.
func Multi(reporters ...Reporter) Reporter {
	var m multiReporter
	for _, r := range reporters {
		if !isNil(r) {
			m = append(m, r)
		}
	}
	return m
}

func isNil(r Reporter) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
