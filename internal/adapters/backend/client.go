// internal/adapters/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"dinebook/internal/adapters/observability"
	"dinebook/internal/domain"
)

// reqTimeout is the fixed ceiling on any backend call; past it the call
// fails with a NetworkError. No request is ever retried automatically —
// every retry is a distinct user action.
const reqTimeout = 5 * time.Second

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: reqTimeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// ---- Reservation endpoints ----

// ListReservations fetches the raw reservation collection for a scope. Some
// deployments still mount the collection under a legacy /api prefix, so the
// preferred path is tried first and a 404 falls through to the legacy one.
func (c *Client) ListReservations(ctx context.Context, scope domain.ListScope) (any, error) {
	path := "/reservations"
	if scope.RestaurantID != "" {
		path = "/reservations/restaurant/" + url.PathEscape(scope.RestaurantID)
	}
	candidates := []string{
		c.base + path,          // preferred
		c.base + "/api" + path, // legacy mount
	}
	var out any
	return out, c.getFirst(ctx, scope.Identity.Token, candidates, &out)
}

func (c *Client) CreateReservation(ctx context.Context, token string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.do(ctx, http.MethodPost, c.base+"/reservations", token, body, &out)
	return out, err
}

func (c *Client) UpdateReservation(ctx context.Context, token, id string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.do(ctx, http.MethodPut, c.base+"/reservations/"+url.PathEscape(id), token, body, &out)
	return out, err
}

// CancelReservation acknowledges idempotently: a 404 means the record is
// already gone server-side, which is the end state the caller asked for.
func (c *Client) CancelReservation(ctx context.Context, token, id string) error {
	err := c.do(ctx, http.MethodDelete, c.base+"/reservations/"+url.PathEscape(id), token, nil, nil)
	var se *domain.ServerError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return nil
	}
	return err
}

// ---- Internals ----

func (c *Client) getFirst(ctx context.Context, token string, urls []string, out any) error {
	var last error
	for _, u := range urls {
		err := c.do(ctx, http.MethodGet, u, token, nil, out)
		if err == nil {
			return nil
		}
		var se *domain.ServerError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			last = err
			continue // try next pattern
		}
		return err // non-404: stop early
	}
	return last
}

// do performs one rate-limited round trip and maps the response onto the
// error taxonomy. Exactly one attempt: transport failures and timeouts
// surface as NetworkError, non-2xx responses as ServerError.
func (c *Client) do(ctx context.Context, method, u, token string, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return &domain.NetworkError{Err: err}
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dinebook/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("backend", method, 0, time.Since(start))
		if ctx.Err() != nil {
			return &domain.NetworkError{Err: ctx.Err()}
		}
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("backend", method, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.ServerError{StatusCode: resp.StatusCode, Message: "malformed response body"}
		}
		return nil

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.ServerError{StatusCode: resp.StatusCode, Message: serverMessage(b)}
	}
}

// serverMessage digs a human-readable message out of an error payload,
// falling back to a generic one when the server provided none.
func serverMessage(b []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(b, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if s := strings.TrimSpace(string(b)); s != "" && !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "<") {
		return s
	}
	return "request failed"
}
