package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Machine-readable error codes returned alongside human-readable messages
const (
	errCodeInvalidRequest   = "invalid_request"
	errCodeInvalidURL       = "invalid_url"
	errCodeDiscoveryFailed  = "discovery_failed"
	errCodeExtractionFailed = "content_extraction_failed"
	errCodeInvalidContent   = "invalid_content"
	errCodeRateLimited      = "rate_limited"
	errCodeParseFailure     = "analysis_parse_error"
	errCodeConfiguration    = "configuration_error"
	errCodeTimeout          = "timeout"
	errCodeInternal         = "internal_error"
)

// decodeJSONBody decodes a request body with strict unknown-field and trailing-token checks.
func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}

	var trailing json.RawMessage
	if err := dec.Decode(&trailing); err != io.EOF {
		return ErrMultipleJSONObjects
	}

	return nil
}

// writeJSON writes a JSON response and logs serialization failures.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Int("status", status).Msg("failed to encode JSON response")
	}
}

// ErrorResponse is the envelope for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError sends the normalized error envelope
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}
