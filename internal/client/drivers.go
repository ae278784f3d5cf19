package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"trips/internal/config"
	"trips/internal/domain"
)

// DriverClient talks to the driver directory service. Every call degrades
// rather than propagating transport errors: an unreachable directory yields
// an empty candidate list, a failed ping counts as not-accepted.
type DriverClient struct {
	baseURL      string
	pingTimeout  time.Duration
	pingGrace    time.Duration
	sortByRating bool
	httpClient   *http.Client
}

// NewDriverClient creates a new driver directory client.
func NewDriverClient(cfg config.DriversConfig) *DriverClient {
	return &DriverClient{
		baseURL:      cfg.BaseURL,
		pingTimeout:  cfg.PingTimeout,
		pingGrace:    cfg.PingGrace,
		sortByRating: cfg.SortByRating,
		httpClient:   &http.Client{},
	}
}

// availableResponse is the directory's payload for GET /available.
type availableResponse struct {
	Drivers []struct {
		DriverID string  `json:"driver_id"`
		Rating   float64 `json:"rating"`
	} `json:"drivers"`
}

// ListAvailable fetches the candidate drivers for negotiation. Fails open:
// any transport or protocol error returns an empty list.
func (c *DriverClient) ListAvailable(ctx context.Context) []domain.DriverCandidate {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/available", nil)
	if err != nil {
		log.Printf("driver directory: build request: %v", err)
		return nil
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		log.Printf("driver directory: list available: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("driver directory: list available: status %d", resp.StatusCode)
		return nil
	}

	var payload availableResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("driver directory: decode available: %v", err)
		return nil
	}

	candidates := make([]domain.DriverCandidate, 0, len(payload.Drivers))
	for _, d := range payload.Drivers {
		candidates = append(candidates, domain.DriverCandidate{ID: d.DriverID, Rating: d.Rating})
	}

	if c.sortByRating {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Rating > candidates[j].Rating
		})
	}

	return candidates
}

// pingRequest is the acceptance request sent to a driver.
type pingRequest struct {
	TripID  string `json:"trip_id"`
	Timeout int64  `json:"timeout"` // milliseconds the driver has to answer
}

// pingResponse is the driver's answer to an acceptance request.
type pingResponse struct {
	Accepted bool `json:"accepted"`
}

// Ping asks one driver to accept the trip, waiting up to the configured
// acceptance window plus grace. Timeouts, transport errors, non-2xx
// responses and malformed bodies all map to not-accepted; a single flaky
// driver never aborts a negotiation.
func (c *DriverClient) Ping(ctx context.Context, driverID, tripID string) domain.PingOutcome {
	body, err := json.Marshal(pingRequest{
		TripID:  tripID,
		Timeout: c.pingTimeout.Milliseconds(),
	})
	if err != nil {
		return domain.PingUnreachable
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.pingTimeout+c.pingGrace)
	defer cancel()

	url := fmt.Sprintf("%s/%s/ping", c.baseURL, driverID)
	req, err := http.NewRequestWithContext(pingCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.PingUnreachable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		log.Printf("driver directory: ping %s: %v", driverID, err)
		return domain.PingUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("driver directory: ping %s: status %d", driverID, resp.StatusCode)
		return domain.PingUnreachable
	}

	var payload pingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("driver directory: ping %s: decode: %v", driverID, err)
		return domain.PingUnreachable
	}

	if payload.Accepted {
		return domain.PingAccepted
	}
	return domain.PingNotAccepted
}

// statusRequest is the payload for PUT /{driver_id}/status.
type statusRequest struct {
	IsActive bool `json:"is_active"`
}

// SetActive flips a driver's active flag in the directory. Best effort;
// callers log and ignore the returned error.
func (c *DriverClient) SetActive(ctx context.Context, driverID string, isActive bool) error {
	body, err := json.Marshal(statusRequest{IsActive: isActive})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/status", c.baseURL, driverID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("driver status update: status %d", resp.StatusCode)
	}

	return nil
}

// do executes the request with a New Relic external segment when a
// transaction is present on the context.
func (c *DriverClient) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if txn := newrelic.FromContext(ctx); txn != nil {
		segment := newrelic.StartExternalSegment(txn, req)
		defer segment.End()
		resp, err := c.httpClient.Do(req)
		segment.Response = resp
		return resp, err
	}
	return c.httpClient.Do(req)
}
