package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dinebook/internal/adapters/payment"
	"dinebook/internal/domain"
)

func TestStartCheckout_RedirectURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/redirect" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Errorf("missing provider key, got %q", got)
		}
		_, _ = w.Write([]byte(`{"url":"https://pay.example.com/cs_123"}`))
	}))
	defer ts.Close()

	cl, err := payment.New(ts.URL, "sk_test")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	url, err := cl.StartCheckout(context.Background(), "cs_123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if url != "https://pay.example.com/cs_123" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestStartCheckout_ProviderErrorVerbatim(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		_, _ = w.Write([]byte(`{"error":{"message":"No such session: cs_x"}}`))
	}))
	defer ts.Close()

	cl, _ := payment.New(ts.URL, "sk_test")
	_, err := cl.StartCheckout(context.Background(), "cs_x")
	var ge *domain.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if ge.Message != "No such session: cs_x" {
		t.Fatalf("expected verbatim provider message, got %q", ge.Message)
	}
}

func TestStartCheckout_MissingRef(t *testing.T) {
	cl, _ := payment.New("https://example.com", "sk_test")
	_, err := cl.StartCheckout(context.Background(), "")
	var ge *domain.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestStartCheckout_NoRedirectInResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	cl, _ := payment.New(ts.URL, "sk_test")
	if _, err := cl.StartCheckout(context.Background(), "cs_1"); err == nil {
		t.Fatalf("expected error for empty redirect")
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := payment.New("https://example.com", ""); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
