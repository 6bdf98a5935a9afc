package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/db"
	"github.com/yumyai/protview/pkg/export"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// statusFor maps domain errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, db.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, export.ErrUnknownFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("url", r.URL.Path), zap.Error(err))
	} else {
		logger.Warn("Request rejected", zap.String("url", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Success: false, Error: err.Error()})
}

func writeHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("url", r.URL.Path), zap.Error(err))
	} else {
		logger.Warn("Request rejected", zap.String("url", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}
