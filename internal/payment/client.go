// Package payment is a thin client for the external payment processor's
// REST API. Failures surface immediately; there are no retries or
// idempotency keys here.
package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/config"
)

// Intent mirrors the processor's payment-intent resource
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Refund mirrors the processor's refund resource
type Refund struct {
	ID       string `json:"id"`
	IntentID string `json:"payment_intent"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client calls the processor over HTTPS with secret-key auth
type Client struct {
	apiURL    string
	secretKey string
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{apiURL: cfg.ApiURL, secretKey: cfg.SecretKey}
}

func (c *Client) authHeader() gout.H {
	return gout.H{
		"Authorization": "Bearer " + c.secretKey,
		"Content-Type":  "application/json",
	}
}

// CreateIntent asks the processor for a new payment intent. Amount is in
// the currency's smallest unit.
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	var intent Intent
	var code int
	err := gout.POST(c.apiURL+"/payment_intents").
		WithContext(ctx).
		SetHeader(c.authHeader()).
		SetJSON(gout.H{
			"amount":   amount,
			"currency": currency,
			"metadata": metadata,
		}).
		BindJSON(&intent).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "create payment intent")
	}
	if code >= http.StatusBadRequest {
		return nil, errors.Errorf("payment processor returned %d", code)
	}
	zap.L().Info("payment intent created",
		zap.String("intent_id", intent.ID), zap.Int64("amount", amount))
	return &intent, nil
}

// IntentStatus fetches the current processor-side status of an intent
func (c *Client) IntentStatus(ctx context.Context, intentID string) (string, error) {
	var intent Intent
	var code int
	err := gout.GET(fmt.Sprintf("%s/payment_intents/%s", c.apiURL, intentID)).
		WithContext(ctx).
		SetHeader(c.authHeader()).
		BindJSON(&intent).
		Code(&code).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "fetch payment intent")
	}
	if code >= http.StatusBadRequest {
		return "", errors.Errorf("payment processor returned %d", code)
	}
	return intent.Status, nil
}

// CreateRefund refunds amount against an intent. A zero amount refunds the
// full charge.
func (c *Client) CreateRefund(ctx context.Context, intentID string, amount int64) (*Refund, error) {
	body := gout.H{"payment_intent": intentID}
	if amount > 0 {
		body["amount"] = amount
	}
	var refund Refund
	var code int
	err := gout.POST(c.apiURL+"/refunds").
		WithContext(ctx).
		SetHeader(c.authHeader()).
		SetJSON(body).
		BindJSON(&refund).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "create refund")
	}
	if code >= http.StatusBadRequest {
		return nil, errors.Errorf("payment processor returned %d", code)
	}
	zap.L().Info("refund created",
		zap.String("refund_id", refund.ID), zap.String("intent_id", intentID))
	return &refund, nil
}
