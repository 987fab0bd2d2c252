package api

import (
	"net/http"
	"time"
)

func (s *server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJson(w, http.StatusOK, apiResponse{ //nolint:errcheck
		Success: true,
		Message: "OK",
		Data:    map[string]any{"uptime": time.Since(s.startedAt).Round(time.Second).String()},
	}, nil)
}
