package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/thisisjab/dbir/engine"
	"github.com/thisisjab/dbir/entity"
	"github.com/thisisjab/dbir/fault"
)

const maxSourceName = 255

type compileRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (req compileRequest) validate() error {
	fields := fault.FieldErrorsMetadata{}

	if strings.TrimSpace(req.Source) == "" {
		fields["source"] = append(fields["source"], "Source cannot be empty.")
	}
	if len(req.Name) > maxSourceName {
		fields["name"] = append(fields["name"], "Name must not be longer than 255 characters.")
	}

	if len(fields) > 0 {
		return fault.New(fault.BadInputCode, "Invalid compile request.").WithMetadata(fields)
	}
	return nil
}

// compileHandler compiles one DBIR source. The status code tells whether it
// compiled cleanly (200), had errors (422) or used unsupported constructs (501).
func (s *server) compileHandler(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if s.returnOnError(w, r, s.readJson(w, r, &req)) {
		return
	}

	if s.returnOnError(w, r, req.validate()) {
		return
	}

	if req.Name == "" {
		req.Name = "untitled.dbir"
	}

	compiled := engine.Compile(entity.Unit{
		Source:    "api",
		Name:      req.Name,
		Text:      []byte(req.Source),
		Timestamp: time.Now(),
	}, nil)

	s.logger.Debug("compiled unit.", "unit_id", compiled.ID, "name", compiled.Name, "status", compiled.Status)

	res := apiResponse{
		Success: compiled.Status == entity.StatusOK,
		Data:    map[string]any{"unit": compiled},
	}

	status := http.StatusOK
	switch compiled.Status {
	case entity.StatusFailed:
		status = http.StatusUnprocessableEntity
		res.Message = "Source has errors."
	case entity.StatusUnsupported:
		status = http.StatusNotImplemented
		res.Message = "Source uses constructs that are not supported yet."
	}

	s.writeJson(w, status, res, nil) //nolint:errcheck
}
