package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the uniform failure envelope: {success:false, error:msg}.
func errorResponse(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}

func messageResponse(msg string) map[string]any {
	return map[string]any{"success": true, "message": msg}
}

// idParam parses a numeric URL parameter; ok is false when it is missing or
// not a number.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}
