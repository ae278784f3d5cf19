package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trips/internal/config"
	"trips/internal/domain"
)

func driverConfig(baseURL string) config.DriversConfig {
	return config.DriversConfig{
		BaseURL:     baseURL,
		PingTimeout: 200 * time.Millisecond,
		PingGrace:   50 * time.Millisecond,
	}
}

func TestListAvailable_ReturnsDirectoryOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/available" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"drivers":[{"driver_id":"d1","rating":3.1},{"driver_id":"d2","rating":4.9}]}`))
	}))
	defer server.Close()

	c := NewDriverClient(driverConfig(server.URL))

	candidates := c.ListAvailable(context.Background())
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != "d1" || candidates[1].ID != "d2" {
		t.Errorf("expected directory order [d1 d2], got %v", candidates)
	}
}

func TestListAvailable_SortByRating(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"drivers":[{"driver_id":"d1","rating":3.1},{"driver_id":"d2","rating":4.9},{"driver_id":"d3","rating":4.0}]}`))
	}))
	defer server.Close()

	cfg := driverConfig(server.URL)
	cfg.SortByRating = true
	c := NewDriverClient(cfg)

	candidates := c.ListAvailable(context.Background())
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != "d2" || candidates[1].ID != "d3" || candidates[2].ID != "d1" {
		t.Errorf("expected rating order [d2 d3 d1], got %v", candidates)
	}
}

func TestListAvailable_FailsOpen(t *testing.T) {
	t.Parallel()

	// Unreachable server.
	c := NewDriverClient(driverConfig("http://127.0.0.1:1"))
	if got := c.ListAvailable(context.Background()); len(got) != 0 {
		t.Errorf("expected empty list on network error, got %v", got)
	}

	// Server error.
	errServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer errServer.Close()

	c = NewDriverClient(driverConfig(errServer.URL))
	if got := c.ListAvailable(context.Background()); len(got) != 0 {
		t.Errorf("expected empty list on 500, got %v", got)
	}

	// Malformed body.
	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer badServer.Close()

	c = NewDriverClient(driverConfig(badServer.URL))
	if got := c.ListAvailable(context.Background()); len(got) != 0 {
		t.Errorf("expected empty list on malformed body, got %v", got)
	}
}

func TestPing_Accepted(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/d1/ping" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"accepted":true}`))
	}))
	defer server.Close()

	c := NewDriverClient(driverConfig(server.URL))
	if got := c.Ping(context.Background(), "d1", "trip-1"); got != domain.PingAccepted {
		t.Errorf("expected PingAccepted, got %v", got)
	}
}

func TestPing_Declined(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accepted":false}`))
	}))
	defer server.Close()

	c := NewDriverClient(driverConfig(server.URL))
	if got := c.Ping(context.Background(), "d1", "trip-1"); got != domain.PingNotAccepted {
		t.Errorf("expected PingNotAccepted, got %v", got)
	}
}

func TestPing_FailuresAreUnreachable(t *testing.T) {
	t.Parallel()

	// Network error.
	c := NewDriverClient(driverConfig("http://127.0.0.1:1"))
	if got := c.Ping(context.Background(), "d1", "trip-1"); got != domain.PingUnreachable {
		t.Errorf("network error: expected PingUnreachable, got %v", got)
	}

	// Non-2xx.
	errServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer errServer.Close()

	c = NewDriverClient(driverConfig(errServer.URL))
	if got := c.Ping(context.Background(), "d1", "trip-1"); got != domain.PingUnreachable {
		t.Errorf("502: expected PingUnreachable, got %v", got)
	}
}

func TestPing_TimesOutAfterWindowPlusGrace(t *testing.T) {
	t.Parallel()

	slowServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Write([]byte(`{"accepted":true}`))
	}))
	defer slowServer.Close()

	c := NewDriverClient(driverConfig(slowServer.URL))

	start := time.Now()
	got := c.Ping(context.Background(), "d1", "trip-1")
	elapsed := time.Since(start)

	if got != domain.PingUnreachable {
		t.Errorf("expected PingUnreachable on timeout, got %v", got)
	}
	if elapsed >= time.Second {
		t.Errorf("ping waited %v, should have given up after window+grace", elapsed)
	}
}

func TestSetActive(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewDriverClient(driverConfig(server.URL))
	if err := c.SetActive(context.Background(), "d1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/d1/status" || gotMethod != http.MethodPut {
		t.Errorf("expected PUT /d1/status, got %s %s", gotMethod, gotPath)
	}

	errServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer errServer.Close()

	c = NewDriverClient(driverConfig(errServer.URL))
	if err := c.SetActive(context.Background(), "d1", false); err == nil {
		t.Error("expected error on 500")
	}
}
