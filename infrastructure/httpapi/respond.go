// Package httpapi exposes the REST surface: auth, teams, missions, message
// history, notifications, health. Realtime traffic goes through the ws
// package; this one never streams.
package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"opsroom/errors"
)

// envelope is the uniform response shape. Success responses carry data and
// optional pagination; failures carry the error string.
type envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type pagination struct {
	NextCursor string `json:"nextCursor,omitempty"`
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	respondPage(w, status, data, nil)
}

func respondPage(w http.ResponseWriter, status int, data interface{}, page *pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data, Pagination: page})
}

func respondError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := errors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		// Internal details never leave the process.
		err = fmt.Errorf("internal error")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: err.Error()})
}

// decodeJSON reads and closes the request body. Malformed bodies are
// validation failures, not server errors.
func decodeJSON(r *http.Request, dst interface{}) error {
	defer func() { _ = r.Body.Close() }()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", errors.ErrValidation)
	}
	return nil
}
