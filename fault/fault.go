package fault

import (
	"errors"
	"fmt"
)

type faultCode string

const (
	UnknownCode  faultCode = "unknown"
	BadInputCode faultCode = "bad_input"
	// UnsupportedCode marks input the frontend recognizes but cannot handle yet.
	UnsupportedCode faultCode = "unsupported"
)

type FieldErrorsMetadata map[string][]string

// Position locates a fault in DBIR source.
type Position struct {
	Line uint `json:"line"`
}

type Fault struct {
	code     faultCode
	message  string
	metadata any
	original error
}

func New(code faultCode, message string) Fault {
	return Fault{
		code:    code,
		message: message,
	}
}

// Newf is New with a formatted message.
func Newf(code faultCode, format string, args ...any) Fault {
	return New(code, fmt.Sprintf(format, args...))
}

func (f Fault) WithMetadata(metadata any) Fault {
	e := f
	e.metadata = metadata
	return e
}

func (f Fault) WithOriginal(original error) Fault {
	e := f
	e.original = original
	return e
}

// AtLine attaches a Position metadata.
func (f Fault) AtLine(line uint) Fault {
	return f.WithMetadata(Position{Line: line})
}

func (f Fault) Code() faultCode {
	return f.code
}

func (f Fault) Message() string {
	return f.message
}

func (f Fault) Metadata() any {
	return f.metadata
}

func (f Fault) Original() error {
	return f.original
}

func (f Fault) Unwrap() error {
	return f.original
}

func (f Fault) Error() string {
	if f.original != nil {
		return fmt.Sprintf("%s: %v", f.message, f.original)
	}
	return f.message
}

// CodeOf returns the code of the first Fault in err's chain, or UnknownCode.
func CodeOf(err error) faultCode {
	var f Fault
	if errors.As(err, &f) {
		return f.code
	}
	return UnknownCode
}

func IsUnsupported(err error) bool {
	return CodeOf(err) == UnsupportedCode
}
