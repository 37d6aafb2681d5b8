package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alokemajumder/privacyhub-sub000/internal/analysis"
	"github.com/alokemajumder/privacyhub-sub000/internal/fetch"
	"github.com/alokemajumder/privacyhub-sub000/internal/openrouter"
	"github.com/alokemajumder/privacyhub-sub000/internal/scoring"
)

const (
	// maxAnalyzeBodyBytes bounds the analyze request body size
	maxAnalyzeBodyBytes = 1 << 20
	// analyzeTimeout is the hard ceiling for one full analysis pipeline run
	analyzeTimeout = 60 * time.Second
)

// AnalyzeRequest is the analyze endpoint request body
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeResponse is the analyze endpoint success envelope
type AnalyzeResponse struct {
	Success bool             `json:"success"`
	Data    *analysis.Result `json:"data"`
}

// handleAnalyze runs a privacy policy analysis for the submitted URL
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBodyBytes)

	var req AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.URL == "" {
		writeError(w, http.StatusBadRequest, errCodeInvalidURL, ErrURLRequired.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	result, err := h.analyzer.Analyze(ctx, req.URL)
	if err != nil {
		h.writeAnalyzeError(w, req.URL, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Data: result})
}

// writeAnalyzeError maps pipeline failures onto the public status and error
// code taxonomy. Raw error detail is only exposed in dev mode.
func (h *Handler) writeAnalyzeError(w http.ResponseWriter, url string, err error) {
	status, code, message := classifyAnalyzeError(err)

	log.Error().Err(err).Str("url", url).Str("code", code).Int("status", status).Msg("analysis failed")

	if h.devMode {
		message = message + ": " + err.Error()
	}

	writeError(w, status, code, message)
}

// classifyAnalyzeError resolves a pipeline error to its HTTP status, error
// code, and user-facing message.
func classifyAnalyzeError(err error) (int, string, string) {
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()):
		return http.StatusGatewayTimeout, errCodeTimeout, "the analysis timed out, try again later"
	case errors.Is(err, analysis.ErrInvalidURL):
		return http.StatusBadRequest, errCodeInvalidURL, "the submitted URL is not valid"
	case errors.Is(err, fetch.ErrDiscoveryFailed):
		return http.StatusBadRequest, errCodeDiscoveryFailed, "no privacy policy could be located, supply a direct policy link"
	case errors.Is(err, fetch.ErrExtractionFailed) || errors.Is(err, fetch.ErrInvalidURL):
		return http.StatusBadRequest, errCodeExtractionFailed, "the policy content could not be retrieved"
	case errors.Is(err, fetch.ErrInvalidContent) || errors.Is(err, fetch.ErrContentTooShort):
		return http.StatusBadRequest, errCodeInvalidContent, "the fetched page does not look like a privacy policy"
	case errors.Is(err, openrouter.ErrRateLimited):
		return http.StatusTooManyRequests, errCodeRateLimited, "the scoring service is rate limited, retry shortly"
	case errors.Is(err, scoring.ErrNoCredentials):
		return http.StatusInternalServerError, errCodeConfiguration, "no scoring credentials are configured"
	case errors.Is(err, scoring.ErrParse):
		return http.StatusInternalServerError, errCodeParseFailure, "the scoring service returned an unusable response"
	default:
		return http.StatusInternalServerError, errCodeInternal, "an unexpected error occurred"
	}
}
