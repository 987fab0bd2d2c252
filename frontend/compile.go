// Package frontend runs the DBIR lexer and parser over one source text.
package frontend

import (
	"errors"
	"slices"

	"github.com/thisisjab/dbir/fault"
	"github.com/thisisjab/dbir/frontend/ast"
	"github.com/thisisjab/dbir/frontend/diagnostic"
	"github.com/thisisjab/dbir/frontend/lexer"
	"github.com/thisisjab/dbir/frontend/parser"
)

// Result holds everything produced for one source.
type Result struct {
	Statements []ast.Statement
	// Errors are the parser errors, all of them fault.Fault values.
	Errors []error
	// Diagnostics are the lexer errors and warnings.
	Diagnostics []diagnostic.Diagnostic
}

// Compile scans and parses source. Lexer diagnostics are forwarded to
// reporter, which may be nil, as they are produced.
func Compile(source string, reporter diagnostic.Reporter) Result {
	collector := diagnostic.NewCollector()

	tokens := lexer.New(source, diagnostic.Multi(collector, reporter)).Scan()

	p := parser.New(tokens)
	statements := p.Parse()

	return Result{
		Statements:  statements,
		Errors:      p.Faults(),
		Diagnostics: collector.Diagnostics(),
	}
}

func (r Result) HasErrors() bool {
	if len(r.Errors) > 0 {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Severity == diagnostic.SeverityError {
			return true
		}
	}
	return false
}

// Unsupported reports whether the source used a construct the frontend
// does not handle yet.
func (r Result) Unsupported() bool {
	for _, d := range r.Diagnostics {
		if fault.IsUnsupported(d.Err) {
			return true
		}
	}
	for _, err := range r.Errors {
		if fault.IsUnsupported(err) {
			return true
		}
	}
	return false
}

// All returns the lexer diagnostics followed by the parser errors.
func (r Result) All() []diagnostic.Diagnostic {
	all := slices.Clone(r.Diagnostics)
	for _, err := range r.Errors {
		all = append(all, diagnostic.Diagnostic{Line: lineOf(err), Severity: diagnostic.SeverityError, Err: err})
	}
	return all
}

// Messages renders every diagnostic of All as text.
func (r Result) Messages() []string {
	all := r.All()
	msgs := make([]string, len(all))
	for i, d := range all {
		msgs[i] = d.String()
	}
	return msgs
}

func lineOf(err error) uint {
	var f fault.Fault
	if !errors.As(err, &f) {
		return 0
	}
	if pos, ok := f.Metadata().(fault.Position); ok {
		return pos.Line
	}
	return 0
}
