package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/roach88/sheetstore/internal/batch"
)

// envelope is the JSON shape of every response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding failures past this point cannot change the status line;
	// the body is simply truncated.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// writeFailure maps a request-level error to a status code and writes
// the failure envelope. Unclassified errors go through the keyword
// heuristic in batch.Classify and fall back to 500 with a generic
// message so internals never leak.
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	kind := batch.KindOf(err)
	status := statusForKind(kind)

	message := "Internal server error"
	switch kind {
	case batch.KindValidation, batch.KindNotFound:
		var be *batch.Error
		if errors.As(err, &be) {
			message = be.Message
		} else {
			message = err.Error()
		}
	case batch.KindStorageUnavailable:
		message = "database unavailable"
	}

	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("kind", string(kind)).Msg("request failed")
	} else {
		h.log.Warn().Err(err).Str("kind", string(kind)).Msg("request rejected")
	}

	writeError(w, status, message)
}

func statusForKind(kind batch.Kind) int {
	switch kind {
	case batch.KindValidation:
		return http.StatusBadRequest
	case batch.KindNotFound:
		return http.StatusNotFound
	case batch.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
