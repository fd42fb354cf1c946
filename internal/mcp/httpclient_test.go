package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/liftlog/internal/feed"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/progression"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListLifts verifies the client sends the bearer token and decodes lifts
// from the preview-embedding list response.
func TestListLifts(t *testing.T) {
	lift := models.Lift{ID: uuid.New(), UserID: 3, Name: "Squat", Config: progression.Config{GoalWeight: 225, WeekNumber: 2}}
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/lifts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("Authorization = %q, want Bearer tok", got)
			}
			writeTestJSON(t, w, []models.LiftWithPreview{lift.WithPreview()})
		},
	})
	defer ts.Close()

	lifts, err := NewHTTPClient(ts.URL+"/", "tok").ListLifts(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(lifts) != 1 {
		t.Fatalf("got %d lifts, want 1", len(lifts))
	}
	if lifts[0].ID != lift.ID || lifts[0].Config.WeekNumber != 2 {
		t.Errorf("lift = %+v", lifts[0])
	}
}

// TestGetTemplate verifies the template path and decoding of lift IDs.
func TestGetTemplate(t *testing.T) {
	liftID := uuid.New()
	tmpl := models.Template{ID: uuid.New(), Name: "Day A", LiftIDs: []uuid.UUID{liftID}, MainLiftID: &liftID}
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/templates/" + tmpl.ID.String(): func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "" {
				t.Errorf("Authorization = %q, want none", got)
			}
			writeTestJSON(t, w, models.TemplateDetail{Template: tmpl})
		},
	})
	defer ts.Close()

	got, err := NewHTTPClient(ts.URL, "").GetTemplate(context.Background(), tmpl.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.MainLiftID == nil || *got.MainLiftID != liftID {
		t.Errorf("main lift = %v, want %v", got.MainLiftID, liftID)
	}
}

// TestFeedParams verifies feed queries become URL parameters.
func TestFeedParams(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/feed": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("limit") != "5" || q.Get("q") != "squat" || q.Get("tag") != "legs" || q.Get("view") != "" {
				t.Errorf("query = %v", q)
			}
			writeTestJSON(t, w, feed.Page{Entries: []models.FeedEntry{}, TagOptions: []string{"all", "legs"}})
		},
	})
	defer ts.Close()

	page, err := NewHTTPClient(ts.URL, "").Feed(context.Background(), 1, feed.Query{Limit: 5, Text: "squat", Tag: "legs"})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.TagOptions) != 2 {
		t.Errorf("tag options = %v", page.TagOptions)
	}
}

// TestHTTPError verifies non-200 responses become errors carrying the status.
func TestHTTPError(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/lifts/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL, "").GetLift(context.Background(), id, 1); err == nil {
		t.Fatal("expected error for 404")
	}
}
