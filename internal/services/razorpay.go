package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// PaymentGateway creates payment orders and authenticates webhook callbacks.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount float64) (*PaymentOrder, error)
	VerifyWebhookSignature(body []byte, signature string) bool
}

type RazorpayClient struct {
	httpClient    *http.Client
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
}

func NewRazorpayClient(keyID, keySecret, webhookSecret string) *RazorpayClient {
	return &RazorpayClient{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		baseURL:       "https://api.razorpay.com/v1",
	}
}

// CreateOrder opens a capture-on-payment order. Amount is in rupees and is
// converted to paise for the API.
func (rz *RazorpayClient) CreateOrder(ctx context.Context, amount float64) (*PaymentOrder, error) {
	amountPaise := int64(amount*100 + 0.5)

	payload, err := json.Marshal(map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"payment_capture": 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode order payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rz.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %v", err)
	}
	req.SetBasicAuth(rz.keyID, rz.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := rz.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("order creation failed: status %d", resp.StatusCode)
	}

	var order PaymentOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %v", err)
	}
	return &order, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature Razorpay sends
// in X-Razorpay-Signature against the raw request body.
func (rz *RazorpayClient) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(rz.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
