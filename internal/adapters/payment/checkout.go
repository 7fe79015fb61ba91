package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dinebook/internal/adapters/observability"
	"dinebook/internal/domain"
)

// Client talks to the hosted-checkout provider. The only thing it ever
// learns is whether a redirect target could be minted for a session — the
// payment outcome itself is reported to the backend of record out of band.
type Client struct {
	base string
	key  string
	hc   *http.Client
}

func New(base, key string) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("payment API key is required")
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		hc:   &http.Client{Timeout: 5 * time.Second},
	}, nil
}

// StartCheckout asks the provider for the hosted page of an existing
// checkout session. Every failure maps to GatewayError carrying the
// provider's message verbatim; nothing is retried.
func (c *Client) StartCheckout(ctx context.Context, sessionRef string) (string, error) {
	if sessionRef == "" {
		return "", &domain.GatewayError{Message: "missing payment session reference"}
	}

	body, err := json.Marshal(map[string]string{"session_id": sessionRef})
	if err != nil {
		return "", &domain.GatewayError{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/checkout/redirect", bytes.NewReader(body))
	if err != nil {
		return "", &domain.GatewayError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("payment", http.MethodPost, 0, time.Since(start))
		return "", &domain.GatewayError{Message: "payment redirect could not be started: " + err.Error()}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("payment", http.MethodPost, resp.StatusCode, time.Since(start))

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.GatewayError{Message: providerMessage(b)}
	}

	var out struct {
		URL         string `json:"url"`
		RedirectURL string `json:"redirectUrl"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return "", &domain.GatewayError{Message: "malformed provider response"}
	}
	if out.URL == "" {
		out.URL = out.RedirectURL
	}
	if out.URL == "" {
		return "", &domain.GatewayError{Message: "provider returned no redirect url"}
	}
	return out.URL, nil
}

// providerMessage extracts the provider's error text, tolerating both the
// flat {"message"} and the nested {"error":{"message"}} shapes.
func providerMessage(b []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &nested); err == nil {
		if nested.Error.Message != "" {
			return nested.Error.Message
		}
		if nested.Message != "" {
			return nested.Message
		}
	}
	return "payment redirect could not be started"
}
