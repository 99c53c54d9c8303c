package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"stagepass/apperr"

	"github.com/google/uuid"
)

// GenerateID returns an opaque unique identifier for server-generated keys.
func GenerateID() string {
	return uuid.NewString()
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// WriteError maps a classified failure to the wire envelope. Unclassified errors
// become a 500 and are logged, never discarded.
func WriteError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		slog.Error("unclassified error", "err", err)
		RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch ae.Kind {
	case apperr.KindValidation:
		RespondWithJSON(w, http.StatusBadRequest, map[string]any{"errors": ae.Violations})
	case apperr.KindMalformedInput:
		RespondWithError(w, http.StatusBadRequest, ae.Msg)
	case apperr.KindNotFound:
		RespondWithError(w, http.StatusNotFound, ae.Msg)
	case apperr.KindAuth:
		// no body detail; verification internals stay private
		w.WriteHeader(http.StatusUnauthorized)
	case apperr.KindConflict:
		RespondWithError(w, http.StatusConflict, ae.Msg)
	case apperr.KindUpstream:
		slog.Error("upstream call failed", "op", ae.Msg, "err", ae.Unwrap())
		RespondWithError(w, http.StatusBadGateway, "upstream service unavailable")
	default:
		RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
