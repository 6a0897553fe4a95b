// Package httpx contains the HTTP plumbing shared by every service: JSON
// response helpers and the common middleware stack.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body every service returns. Code is a stable
// machine-readable identifier; Message is free text for humans.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
