// Package api exposes the ingestion protocol over HTTP.
//
// The surface is four routes: upload sheet rows, fetch one batch, list
// batch identifiers, and a health probe. Handlers translate outcomes
// into the JSON envelope {success, message, data, error}; per-row
// insert failures come back inside a 207 payload, never as a request
// failure.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/roach88/sheetstore/internal/batch"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler holds the HTTP handlers for the service.
type Handler struct {
	svc          *batch.Service
	health       HealthChecker
	maxBodyBytes int64
	log          zerolog.Logger
}

// New creates a Handler. maxBodyBytes of zero or less disables the
// request body cap.
func New(svc *batch.Service, health HealthChecker, maxBodyBytes int64, log zerolog.Logger) *Handler {
	return &Handler{
		svc:          svc,
		health:       health,
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// Routes returns the routed handler with middleware applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload-sheet-data", h.handleUpload)
	mux.HandleFunc("GET /api/batch/{batchID}", h.handleGetBatch)
	mux.HandleFunc("GET /api/batches", h.handleListBatches)
	mux.HandleFunc("GET /health", h.handleHealth)

	var handler http.Handler = mux
	handler = h.logRequests(handler)
	handler = h.recoverPanics(handler)
	handler = requestID(handler)
	return handler
}

// healthTimeout bounds the store ping from /health.
const healthTimeout = 2 * time.Second

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, envelope{
			Success: false,
			Data:    healthData{Status: "degraded", Database: "unreachable"},
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    healthData{Status: "ok", Database: "connected"},
	})
}
