package api

import (
	"encoding/json"
	"net/http"

	"ideaforge/pkg/errors"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels to status codes
func writeError(w http.ResponseWriter, err error) {
	code, name := statusFor(err)
	writeJSON(w, code, errorBody{Error: err.Error(), Code: name})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errors.ErrInvalidInput):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, errors.ErrAlreadyExists):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, errors.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, "RATE_LIMITED"
	case errors.Is(err, errors.ErrTimeout):
		return http.StatusGatewayTimeout, "TIMEOUT"
	case errors.Is(err, errors.ErrUnavailable), errors.Is(err, errors.ErrExternal):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	}
	return http.StatusInternalServerError, "INTERNAL"
}
