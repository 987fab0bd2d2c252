package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/thisisjab/dbir/fault"
)

// maxBodyBytes bounds a compile request, source text included.
const maxBodyBytes = 4 << 20

type apiResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// readJson decodes exactly one JSON value from the body into dst. Decoding
// problems are returned as bad input faults.
func (s *server) readJson(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fault.New(fault.BadInputCode, "Body must only contain a single JSON value.")
	}

	return nil
}

func decodeError(err error) error {
	var (
		syntaxErr    *json.SyntaxError
		typeErr      *json.UnmarshalTypeError
		invalidErr   *json.InvalidUnmarshalError
		maxBytesErr  *http.MaxBytesError
		unknownField = "json: unknown field "
	)

	switch {
	case errors.As(err, &syntaxErr):
		return fault.Newf(fault.BadInputCode, "Body contains badly-formed JSON at character %d.", syntaxErr.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return fault.New(fault.BadInputCode, "Body contains badly-formed JSON.")

	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return fault.Newf(fault.BadInputCode, "Body contains badly-formed JSON at character %d.", typeErr.Offset)
		}
		return fieldError(typeErr.Field, fmt.Sprintf("Expected type %s.", typeErr.Type))

	case errors.Is(err, io.EOF):
		return fault.New(fault.BadInputCode, "Body cannot be empty.")

	case strings.HasPrefix(err.Error(), unknownField):
		name := strings.Trim(strings.TrimPrefix(err.Error(), unknownField), `"`)
		return fieldError(name, "Key is unknown.")

	case errors.As(err, &maxBytesErr):
		return fault.Newf(fault.BadInputCode, "Body must not be larger than %d bytes.", maxBytesErr.Limit)

	case errors.As(err, &invalidErr):
		panic(err)

	default:
		return err
	}
}

func fieldError(field, message string) error {
	return fault.New(fault.BadInputCode, "Invalid request body.").WithMetadata(fault.FieldErrorsMetadata{
		field: []string{message},
	})
}

func (s *server) writeJson(w http.ResponseWriter, status int, data apiResponse, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(js, '\n'))
	return err
}
