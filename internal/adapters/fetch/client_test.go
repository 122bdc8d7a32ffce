package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Fetch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"TYPE": r.URL.Query().Get("TYPE"),
			"L":    r.URL.Query().Get("L"),
			"JSON": r.URL.Query().Get("JSON"),
		}
		if r.URL.Path != "/export" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"leagueStandings":{"franchise":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithDelay(0))
	body, err := c.Fetch(context.Background(), "12345", KindStandings)
	if err != nil {
		t.Fatalf("unexpected fetch error: %v", err)
	}
	if string(body) != `{"leagueStandings":{"franchise":[]}}` {
		t.Errorf("unexpected body: %s", body)
	}
	if gotQuery["TYPE"] != KindStandings || gotQuery["L"] != "12345" || gotQuery["JSON"] != "1" {
		t.Errorf("unexpected query parameters: %v", gotQuery)
	}
}

func TestClient_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithDelay(0))
	_, err := c.Fetch(context.Background(), "12345", KindSalaries)
	if !errors.Is(err, ErrUpstreamStatus) {
		t.Errorf("expected ErrUpstreamStatus, got %v", err)
	}
}

func TestClient_DelayHonorsContext(t *testing.T) {
	c := NewClient("http://localhost:0", WithDelay(10*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Fetch(ctx, "12345", KindRosters)
	if err == nil {
		t.Fatal("expected a context error")
	}
	if time.Since(start) > time.Second {
		t.Error("expected the delay to abort with the context")
	}
}
