package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNotifyAnalysis(t *testing.T) {
	var received Message

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode message: %v", err)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	err = client.NotifyAnalysis(context.Background(), AnalysisNotification{
		URL:          "https://example.com/privacy",
		BrandName:    "Example",
		OverallScore: 8.28,
		Grade:        "B+",
		RiskLevel:    "LOW",
		ScraperUsed:  "fetch",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(received.Text, "8.28") || !strings.Contains(received.Text, "B+") {
		t.Errorf("fallback text should carry score and grade, got %q", received.Text)
	}

	if len(received.Blocks) != 2 || received.Blocks[0].Type != "header" {
		t.Fatalf("unexpected blocks: %+v", received.Blocks)
	}

	if len(received.Blocks[1].Fields) != 4 {
		t.Errorf("expected 4 summary fields, got %d", len(received.Blocks[1].Fields))
	}

	if !strings.Contains(received.Blocks[0].Text.Text, defaultServiceName) {
		t.Errorf("header should carry the service name, got %q", received.Blocks[0].Text.Text)
	}
}

func TestNotifyAnalysis_CustomServiceName(t *testing.T) {
	var received Message

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode message: %v", err)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()), WithServiceName("PolicyWatch"))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	err = client.NotifyAnalysis(context.Background(), AnalysisNotification{
		URL:   "https://example.com/privacy",
		Grade: "A",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(received.Text, "PolicyWatch") {
		t.Errorf("fallback text should carry the configured service name, got %q", received.Text)
	}

	if !strings.Contains(received.Blocks[0].Text.Text, "PolicyWatch") {
		t.Errorf("header should carry the configured service name, got %q", received.Blocks[0].Text.Text)
	}
}

func TestNotifyAnalysis_FallsBackToURL(t *testing.T) {
	var received Message

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode message: %v", err)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	err = client.NotifyAnalysis(context.Background(), AnalysisNotification{
		URL:   "https://example.com/privacy",
		Grade: "C",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(received.Text, "https://example.com/privacy") {
		t.Errorf("fallback text should use the URL when no brand name is set, got %q", received.Text)
	}
}
