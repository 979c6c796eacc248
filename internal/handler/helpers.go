package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

var (
	errInvalidCoordinates = errors.New("lat and lon must be valid numbers")
	errNoLocation         = errors.New("no location configured")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
