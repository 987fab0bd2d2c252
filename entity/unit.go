package entity

import (
	"time"

	"github.com/google/uuid"
)

type Status uint8

const (
	StatusUnknown Status = iota
	StatusOK
	StatusFailed
	StatusUnsupported
)

func (s Status) String() string {
	if int(s) >= len(statusNames) {
		return statusNames[StatusUnknown]
	}
	return statusNames[s]
}

var statusNames = [...]string{"UNKNOWN", "OK", "FAILED", "UNSUPPORTED"}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Unit is a DBIR source text read from a unit source.
type Unit struct {
	Source    string    `json:"source"`
	Name      string    `json:"name"`
	Text      []byte    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Statement is a parsed statement rendered back to DBIR.
type Statement struct {
	Kind string `json:"kind" yaml:"kind"`
	Line uint   `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
}

// Message is a lexer diagnostic or a parser error.
type Message struct {
	Line     uint   `json:"line" yaml:"line"`
	Severity string `json:"severity" yaml:"severity"`
	Code     string `json:"code" yaml:"code"`
	Text     string `json:"text" yaml:"text"`
}

// CompiledUnit is the outcome of compiling a Unit.
type CompiledUnit struct {
	ID         uuid.UUID     `json:"id" yaml:"id"`
	Source     string        `json:"source" yaml:"source"`
	Name       string        `json:"name" yaml:"name"`
	Status     Status        `json:"status" yaml:"status"`
	Statements []Statement   `json:"statements" yaml:"statements"`
	Messages   []Message     `json:"messages" yaml:"messages"`
	CompiledAt time.Time     `json:"compiled_at" yaml:"compiled_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

func (c CompiledUnit) Failed() bool {
	return c.Status != StatusOK
}
