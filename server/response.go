package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/seek-sim/sim"
)

// Error codes carried in error bodies.
const (
	codeUnknownPolicy    = "unknown_policy"
	codeInvalidPosition  = "invalid_position"
	codeInvalidParameter = "invalid_parameter"
	codeNotFound         = "not_found"
	codeInternal         = "internal"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     apiError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

// respondJSON writes v as the bare response body. Success bodies carry no
// envelope so they stay field-compatible with existing consumers.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	respondJSON(w, status, errorResponse{
		Error:     apiError{Code: code, Message: msg},
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// respondPlanError maps planner errors onto request errors.
func respondPlanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sim.ErrUnknownPolicy):
		respondError(w, r, http.StatusBadRequest, codeUnknownPolicy, err.Error())
	case errors.Is(err, sim.ErrInvalidPosition):
		respondError(w, r, http.StatusBadRequest, codeInvalidPosition, err.Error())
	default:
		logrus.WithField("request_id", RequestIDFromContext(r.Context())).Errorf("planning failed: %v", err)
		respondError(w, r, http.StatusInternalServerError, codeInternal, err.Error())
	}
}
