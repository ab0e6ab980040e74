package cardsclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/transfa/card-webhook-service/internal/domain"
)

func TestCreateCardReturnsDownstreamOutcome(t *testing.T) {
	var gotContentType, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAPIKey = r.Header.Get("X-API-Key")

		var event domain.NewCardEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			t.Errorf("downstream received invalid JSON: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"C1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	result, err := client.CreateCard(context.Background(), domain.NewCardEvent{
		CardID:       "C1",
		CustomerID:   "U1",
		CustomerName: "Jane Doe",
		MobileNumber: "+15551234567",
		Priority:     domain.PriorityStandard,
	})
	if err != nil {
		t.Fatalf("expected forward to succeed, got %v", err)
	}

	if result.StatusCode != http.StatusCreated || !result.Success() {
		t.Fatalf("expected 201 success result, got %+v", result)
	}
	if string(result.Body) != `{"id":"C1"}` {
		t.Fatalf("expected raw downstream body, got %q", result.Body)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotContentType)
	}
	// Card creation does not carry the shared secret.
	if gotAPIKey != "" {
		t.Fatalf("expected no API key on create, got %q", gotAPIKey)
	}
}

func TestUpdateCardStatusBuildsPathAndHeader(t *testing.T) {
	var gotPath, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-API-Key")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	result, err := client.UpdateCardStatus(context.Background(), "C7", domain.StatusUpdateEvent{Status: "ACTIVATED"})
	if err != nil {
		t.Fatalf("expected forward to succeed, got %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success result, got %+v", result)
	}
	if gotPath != "/C7/status" {
		t.Fatalf("expected path /C7/status, got %q", gotPath)
	}
	if gotAPIKey != "secret" {
		t.Fatalf("expected shared secret header, got %q", gotAPIKey)
	}
}

func TestUpdateCardStatusRequiresIdentifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made without an identifier")
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	_, err := client.UpdateCardStatus(context.Background(), "", domain.StatusUpdateEvent{Status: "ACTIVATED"})
	if !errors.Is(err, domain.ErrMissingIdentifier) {
		t.Fatalf("expected ErrMissingIdentifier, got %v", err)
	}
}

func TestTimeoutClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 50*time.Millisecond)
	_, err := client.UpdateCardStatus(context.Background(), "C1", domain.StatusUpdateEvent{Status: "ACTIVATED"})
	if !errors.Is(err, domain.ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestConnectionRefusedClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	_, err := client.CreateCard(context.Background(), domain.NewCardEvent{CardID: "C1"})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
