package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const maxBodyBytes = 50 << 20

func (s *server) renderJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("serving json", "error", err)
	}
}

// renderError writes err as {"error": message}. Errors that are not
// *apiError are reported with the fallback message.
func (s *server) renderError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	apiErr := asAPIError(err, fallback)
	code := apiErr.code.httpStatus()

	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", code, "error", apiErr)
	}

	s.renderJSON(w, code, map[string]string{"error": apiErr.message})
}

func (s *server) renderSuccess(w http.ResponseWriter) {
	s.renderJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeBody decodes the JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err != nil {
		return validationError("Invalid request body")
	}
	return nil
}
