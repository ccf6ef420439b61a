package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"distviz/internal/errors"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an AppError code to an HTTP status
func statusFor(code string) int {
	switch code {
	case errors.CodeInvalidParameter, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeUnsupported, errors.CodeSamplingError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errNoRoute(path string) error {
	return errors.NotFound(fmt.Sprintf("route %s", path))
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.FromDomain(err)
	status := statusFor(appErr.Code)
	if status >= http.StatusInternalServerError {
		a.logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		a.logger.Debug("%s %s: %v", r.Method, r.URL.Path, err)
	}
	a.writeJSON(w, status, errorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		RequestID: requestIDFrom(r.Context()),
	})
}

// decodeBody decodes an optional JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.InvalidInput(fmt.Sprintf("malformed request body: %v", err))
	}
	return nil
}
