package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetbot/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HFClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHFClient(common.AdvisorConfig{
		APIURL:      srv.URL,
		APIToken:    "test-token",
		Model:       "test-model",
		Temperature: 0.7,
		MaxTokens:   64,
		Timeout:     2 * time.Second,
	}, nil)
}

func TestHFClientStripsPromptEcho(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}
		var req hfRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode([]hfGeneration{{GeneratedText: req.Inputs + " The answer is 42."}})
	})

	got, err := client.Generate(context.Background(), "What is the answer?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "The answer is 42." {
		t.Errorf("answer = %q", got)
	}
}

func TestHFClientStatusErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, common.ErrUnauthorized},
		{http.StatusServiceUnavailable, common.ErrUnavailable},
		{http.StatusInternalServerError, common.ErrUnavailable},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := client.Generate(context.Background(), "q")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestHFClientEmptyAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]hfGeneration{{GeneratedText: ""}})
	})
	if _, err := client.Generate(context.Background(), "q"); err == nil {
		t.Fatal("expected error for empty generation")
	}
}
