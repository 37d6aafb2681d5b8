// Package api provides the HTTP surface of the privacy policy analysis
// service: policy analysis, credential status, and health endpoints.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alokemajumder/privacyhub-sub000/internal/analysis"
	"github.com/alokemajumder/privacyhub-sub000/internal/keyhealth"
)

// Analyzer runs one full policy analysis per call
type Analyzer interface {
	Analyze(ctx context.Context, input string) (*analysis.Result, error)
}

// CreditReporter serves sanitized credential-pool snapshots
type CreditReporter interface {
	Snapshot(ctx context.Context, forceRefresh bool) (*keyhealth.Snapshot, error)
}

// Handler manages API endpoints
type Handler struct {
	analyzer Analyzer
	credits  CreditReporter
	devMode  bool
}

// HandlerOption configures the Handler
type HandlerOption func(*Handler)

// WithCreditReporter enables the credential status endpoint
func WithCreditReporter(credits CreditReporter) HandlerOption {
	return func(h *Handler) {
		h.credits = credits
	}
}

// WithDevMode includes underlying error detail in responses. Never enable in
// production.
func WithDevMode(enabled bool) HandlerOption {
	return func(h *Handler) {
		h.devMode = enabled
	}
}

// NewHandler creates the API handler around the analysis pipeline
func NewHandler(analyzer Analyzer, opts ...HandlerOption) *Handler {
	h := &Handler{analyzer: analyzer}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "privacyhub",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
