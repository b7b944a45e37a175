package pricefeed

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/roster-engine/internal/platform/logging"
	"github.com/riskibarqy/roster-engine/internal/platform/resilience"
	"github.com/riskibarqy/roster-engine/internal/usecase"
)

func TestClient_FetchPrices_MergesPagesInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("missing auth header: %q", got)
		}
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"data": [{"player_id": "pl-%s", "price": %s0}],
			"meta": {"page": %s, "total_pages": 3}
		}`, page, page, page)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:     server.URL,
		Token:       "secret-token",
		MaxParallel: 2,
		Logger:      logging.NewNop(),
	})

	updates, err := client.FetchPrices(t.Context())
	if err != nil {
		t.Fatalf("fetch prices failed: %v", err)
	}

	if len(updates) != 3 {
		t.Fatalf("unexpected update count: %d", len(updates))
	}
	for i, update := range updates {
		wantID := fmt.Sprintf("pl-%d", i+1)
		if update.PlayerID != wantID {
			t.Fatalf("pages out of order at %d: %+v", i, updates)
		}
		if update.Price != int64((i+1)*10) {
			t.Fatalf("unexpected price at %d: %d", i, update.Price)
		}
	}
}

func TestClient_FetchPrices_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": [{"player_id": "pl-1", "price": 55}], "meta": {"page": 1, "total_pages": 1}}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	updates, err := client.FetchPrices(t.Context())
	if err != nil {
		t.Fatalf("fetch prices failed: %v", err)
	}
	if len(updates) != 1 || updates[0].Price != 55 {
		t.Fatalf("unexpected updates: %+v", updates)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected one retry, got %d calls", got)
	}
}

func TestClient_FetchPrices_NonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	if _, err := client.FetchPrices(t.Context()); err == nil {
		t.Fatal("expected error for 401 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("non-retryable status should not retry, got %d calls", got)
	}
}

func TestClient_FetchPrices_CircuitOpenRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchPrices(t.Context()); err == nil {
		t.Fatal("expected failure from 500 response")
	}

	_, err := client.FetchPrices(t.Context())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open circuit, got %v", err)
	}
}
