package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody matches the storefront's error envelope: a success flag and a
// human-readable message.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error writes a failure envelope with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Success: false, Error: message})
}
