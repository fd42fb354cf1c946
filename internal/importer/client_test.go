package importer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func newTestClient(url string) *Client {
	c := NewClient(url+"/", "secret")
	c.backoff = time.Millisecond
	return c
}

// TestSendLog verifies the request shape: path, bearer token, and JSON body.
func TestSendLog(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/logs" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		var in models.LogInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.LiftName != "Squat" || in.TopSetWeight != 185 {
			t.Errorf("body = %+v", in)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).SendLog(context.Background(), models.LogInput{LiftName: "Squat", TopSetWeight: 185, TopSetReps: 5})
	if err != nil {
		t.Fatal(err)
	}
}

// TestSendLogRetries verifies server errors are retried until one succeeds.
func TestSendLogRetries(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	if err := newTestClient(ts.URL).SendLog(context.Background(), models.LogInput{LiftName: "Squat"}); err != nil {
		t.Fatal(err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

// TestSendLogGivesUp verifies the client stops after three failed attempts.
func TestSendLogGivesUp(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer ts.Close()

	if err := newTestClient(ts.URL).SendLog(context.Background(), models.LogInput{LiftName: "Squat"}); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != maxAttempts {
		t.Errorf("calls = %d, want %d", got, maxAttempts)
	}
}

// TestSendLogNoRetryOnClientError verifies 4xx responses fail on the first attempt.
func TestSendLogNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"lift name is required"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	if err := newTestClient(ts.URL).SendLog(context.Background(), models.LogInput{}); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}
