package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrOtpRejected means the provider saw the request but refused the code
	// (wrong or expired).
	ErrOtpRejected = errors.New("otp rejected")
	// ErrProviderUnavailable means the provider could not be reached or
	// failed; callers must not report it as a bad code.
	ErrProviderUnavailable = errors.New("otp provider unavailable")
)

// OtpProvider owns the OTP lifecycle: code generation, expiry, and attempt
// limits all live provider-side. Nothing is tracked locally.
type OtpProvider interface {
	SendOtp(ctx context.Context, mobile string) error
	ResendOtp(ctx context.Context, mobile string) error
	VerifyOtp(ctx context.Context, mobile, otp string) error
}

// Msg91Client talks to the MSG91 OTP API over HTTPS.
type Msg91Client struct {
	httpClient *http.Client
	authKey    string
	templateID string
	baseURL    string
}

func NewMsg91Client(authKey, templateID string) *Msg91Client {
	return &Msg91Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		authKey:    authKey,
		templateID: templateID,
		baseURL:    "https://control.msg91.com/api/v5",
	}
}

type msg91Response struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (m *Msg91Client) SendOtp(ctx context.Context, mobile string) error {
	params := url.Values{}
	params.Set("template_id", m.templateID)
	params.Set("mobile", mobile)

	res, err := m.call(ctx, http.MethodPost, "/otp", params)
	if err != nil {
		return err
	}
	if res.Type != "success" {
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, res.Message)
	}
	return nil
}

func (m *Msg91Client) ResendOtp(ctx context.Context, mobile string) error {
	params := url.Values{}
	params.Set("mobile", mobile)
	params.Set("retrytype", "text")

	res, err := m.call(ctx, http.MethodPost, "/otp/retry", params)
	if err != nil {
		return err
	}
	if res.Type != "success" {
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, res.Message)
	}
	return nil
}

func (m *Msg91Client) VerifyOtp(ctx context.Context, mobile, otp string) error {
	params := url.Values{}
	params.Set("mobile", mobile)
	params.Set("otp", otp)

	res, err := m.call(ctx, http.MethodGet, "/otp/verify", params)
	if err != nil {
		return err
	}
	// A reachable provider that says "error" rejected the code.
	if res.Type != "success" {
		return fmt.Errorf("%w: %s", ErrOtpRejected, res.Message)
	}
	return nil
}

func (m *Msg91Client) call(ctx context.Context, method, path string, params url.Values) (*msg91Response, error) {
	reqURL := m.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("authkey", m.authKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var body msg91Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return &body, nil
}
