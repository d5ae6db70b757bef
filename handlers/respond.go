package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"spendbook/backend/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("error encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, models.ErrorResponse{
		Detail:     detail,
		StatusCode: status,
	})
}

// pageParams reads page and size query parameters, applying defaults and the
// size cap. Invalid values silently fall back to the defaults.
func pageParams(r *http.Request) (page, size int) {
	page, size = 1, defaultPageSize
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
