package api

import (
	"encoding/json"
	"net/http"
	"strings"

	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code flexerrors.Code) int {
	switch {
	case code == flexerrors.ErrCodeDegenerateLayout,
		strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(string(code), "NOT_FOUND"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error body. Internal errors are logged and
// their details withheld from the client.
func (s *Server) fail(w http.ResponseWriter, err error) {
	code := flexerrors.GetCode(err)
	if code == "" {
		code = flexerrors.ErrCodeInternal
	}
	status := StatusFor(code)
	msg := flexerrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = http.StatusText(status)
	}
	writeError(w, status, string(code), msg)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
