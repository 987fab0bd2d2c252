package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/thisisjab/dbir/entity"
	"github.com/thisisjab/dbir/fault"
	"github.com/thisisjab/dbir/frontend"
	"github.com/thisisjab/dbir/frontend/diagnostic"
)

// Compile runs the frontend over u and renders the result. reporter may be nil.
func Compile(u entity.Unit, reporter diagnostic.Reporter) entity.CompiledUnit {
	start := time.Now()
	result := frontend.Compile(string(u.Text), reporter)

	compiled := entity.CompiledUnit{
		ID:         uuid.New(),
		Source:     u.Source,
		Name:       u.Name,
		Status:     statusOf(result),
		Statements: make([]entity.Statement, len(result.Statements)),
		Messages:   make([]entity.Message, 0, len(result.Diagnostics)+len(result.Errors)),
		CompiledAt: start,
	}

	for i, s := range result.Statements {
		compiled.Statements[i] = entity.Statement{
			Kind: s.Token().Type.String(),
			Line: s.Token().Line,
			Text: s.String(),
		}
	}

	for _, d := range result.All() {
		compiled.Messages = append(compiled.Messages, message(d))
	}

	compiled.Duration = time.Since(start)

	return compiled
}

func statusOf(r frontend.Result) entity.Status {
	switch {
	case r.Unsupported():
		return entity.StatusUnsupported
	case r.HasErrors():
		return entity.StatusFailed
	default:
		return entity.StatusOK
	}
}

func message(d diagnostic.Diagnostic) entity.Message {
	return entity.Message{
		Line:     d.Line,
		Severity: d.Severity.String(),
		Code:     string(fault.CodeOf(d.Err)),
		Text:     d.Message(),
	}
}
