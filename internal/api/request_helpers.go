package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
)

// getPathID extracts a positive integer identifier from the URL path.
// Returns a validation error if the parameter is missing or malformed.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidID, paramName)
	}

	return id, nil
}

// getQueryInt extracts an integer query parameter, returning found=false when
// the parameter is absent and an error when it is present but malformed.
func getQueryInt(r *http.Request, name string) (value int, found bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}

	return parsed, true, nil
}
