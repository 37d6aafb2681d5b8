package firecrawl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

func TestScrape_NestedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var req scrapeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		if !req.OnlyMainContent {
			t.Error("expected onlyMainContent to be requested")
		}

		if len(req.Formats) != 1 || req.Formats[0] != "markdown" {
			t.Errorf("expected markdown format, got %v", req.Formats)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"markdown": "# Privacy Policy\n\nWe collect personal information.",
				"metadata": {"title": "Privacy Policy", "sourceURL": "https://example.com/privacy"}
			}
		}`))
	})

	doc, err := client.Scrape(context.Background(), "https://example.com/privacy")
	if err != nil {
		t.Fatalf("Scrape returned error: %v", err)
	}

	if doc.Title != "Privacy Policy" {
		t.Errorf("expected title Privacy Policy, got %q", doc.Title)
	}

	if doc.SourceURL != "https://example.com/privacy" {
		t.Errorf("unexpected source url: %q", doc.SourceURL)
	}

	if doc.Markdown == "" {
		t.Error("expected markdown content")
	}
}

func TestScrape_LegacyFlatEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"markdown": "Privacy matters to us.",
			"metadata": {"title": "Legacy Privacy"}
		}`))
	})

	doc, err := client.Scrape(context.Background(), "https://example.com/privacy")
	if err != nil {
		t.Fatalf("Scrape returned error: %v", err)
	}

	if doc.Markdown != "Privacy matters to us." {
		t.Errorf("unexpected markdown: %q", doc.Markdown)
	}

	if doc.Title != "Legacy Privacy" {
		t.Errorf("unexpected title: %q", doc.Title)
	}
}

func TestScrape_UnrecognizedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "html": "<p>nope</p>"}`))
	})

	_, err := client.Scrape(context.Background(), "https://example.com/privacy")
	if !errors.Is(err, ErrUnexpectedEnvelope) {
		t.Fatalf("expected ErrUnexpectedEnvelope, got %v", err)
	}
}

func TestScrape_ReportedFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error": "blocked by robots.txt"}`))
	})

	_, err := client.Scrape(context.Background(), "https://example.com/privacy")
	if !errors.Is(err, ErrScrapeFailed) {
		t.Fatalf("expected ErrScrapeFailed, got %v", err)
	}
}

func TestScrape_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})

	_, err := client.Scrape(context.Background(), "https://example.com/privacy")
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
