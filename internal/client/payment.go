package client

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"trips/internal/config"
	"trips/internal/domain"
)

// PaymentClient talks to the payment service. Charge never returns an
// error: anything short of a confirmed SUCCESS is reported as a failed
// charge so that completion always reaches a terminal trip status.
type PaymentClient struct {
	baseURL       string
	chargeTimeout time.Duration
	httpClient    *http.Client
}

// NewPaymentClient creates a new payment service client.
func NewPaymentClient(cfg config.PaymentConfig) *PaymentClient {
	return &PaymentClient{
		baseURL:       cfg.BaseURL,
		chargeTimeout: cfg.ChargeTimeout,
		httpClient:    &http.Client{},
	}
}

// chargeRequest is the payload for POST /charge.
type chargeRequest struct {
	TripID         string  `json:"trip_id"`
	Amount         float64 `json:"amount"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// chargeResponse is the payment service's answer.
type chargeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// Charge attempts to collect the fare for a trip.
func (c *PaymentClient) Charge(ctx context.Context, tripID string, amount float64, idempotencyKey string) domain.ChargeResult {
	failed := domain.ChargeResult{Status: domain.PaymentStatusFailed}

	body, err := json.Marshal(chargeRequest{
		TripID:         tripID,
		Amount:         amount,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return failed
	}

	chargeCtx, cancel := context.WithTimeout(ctx, c.chargeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(chargeCtx, http.MethodPost, c.baseURL+"/charge", bytes.NewReader(body))
	if err != nil {
		return failed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		log.Printf("payment: charge trip %s: %v", tripID, err)
		return failed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("payment: charge trip %s: status %d", tripID, resp.StatusCode)
		return failed
	}

	var payload chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("payment: charge trip %s: decode: %v", tripID, err)
		return failed
	}

	if payload.Status != string(domain.PaymentStatusSuccess) {
		return domain.ChargeResult{Status: domain.PaymentStatusFailed, TransactionID: payload.TransactionID}
	}

	return domain.ChargeResult{Status: domain.PaymentStatusSuccess, TransactionID: payload.TransactionID}
}

// do executes the request with a New Relic external segment when a
// transaction is present on the context.
func (c *PaymentClient) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if txn := newrelic.FromContext(ctx); txn != nil {
		segment := newrelic.StartExternalSegment(txn, req)
		defer segment.End()
		resp, err := c.httpClient.Do(req)
		segment.Response = resp
		return resp, err
	}
	return c.httpClient.Do(req)
}
