package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/thisisjab/dbir/entity"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid output format: %s", s)
	}
}

// WriterSink writes compiled units to w, one after another.
type WriterSink struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
}

func NewWriterSink(w io.Writer, format Format) (*WriterSink, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatText
	}

	return &WriterSink{w: w, format: format}, nil
}

func (s *WriterSink) Write(ctx context.Context, units ...entity.CompiledUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch s.format {
		case FormatJSON:
			err = json.NewEncoder(s.w).Encode(u)
		case FormatYAML:
			err = writeYAML(s.w, u)
		default:
			err = writeText(s.w, u)
		}
		if err != nil {
			return fmt.Errorf("cannot write unit %s: %w", u.Name, err)
		}
	}

	return nil
}

func writeYAML(w io.Writer, u entity.CompiledUnit) error {
	b, err := yaml.Marshal(u)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, "---\n"+string(b))
	return err
}

func writeText(w io.Writer, u entity.CompiledUnit) error {
	var b strings.Builder

	fmt.Fprintf(&b, "-- %s [%s] %d statement(s), %d message(s)\n", u.Name, u.Status, len(u.Statements), len(u.Messages))
	for _, s := range u.Statements {
		b.WriteString(s.Text)
		b.WriteByte('\n')
	}
	for _, m := range u.Messages {
		fmt.Fprintf(&b, "[line %d] %s: %s\n", m.Line, m.Severity, m.Text)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
