package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sellaids/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(config.SMSConfig{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		SenderID: "SLAIDS",
		Route:    "dlt",
		Timeout:  2 * time.Second,
	}, nil)
	return c, &calls
}

func TestClient_Send_Success(t *testing.T) {
	var got sendRequest
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"return":true,"request_id":"req-42","message":["SMS sent successfully."]}`))
	})

	res, err := c.Send(context.Background(), []string{"+91 98765 43210", "9876543210", "08123456789"}, "  Hello vendor  ")

	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "req-42", res.RequestID)
	assert.Equal(t, []string{"9876543210", "8123456789"}, res.SentTo)
	assert.Equal(t, "dlt", got.Route)
	assert.Equal(t, "SLAIDS", got.SenderID)
	assert.Equal(t, "Hello vendor", got.Message)
	assert.Equal(t, "9876543210,8123456789", got.Numbers)
}

func TestClient_Send_NotConfigured(t *testing.T) {
	for _, cfg := range []config.SMSConfig{
		{BaseURL: "http://unused", SenderID: "SLAIDS"},
		{BaseURL: "http://unused", APIKey: "key"},
		{BaseURL: "http://unused", APIKey: "  ", SenderID: "SLAIDS"},
	} {
		c := NewClient(cfg, nil)
		assert.False(t, c.Configured())
		_, err := c.Send(context.Background(), []string{"9876543210"}, "hi")
		assert.ErrorIs(t, err, ErrNotConfigured)
	}
}

func TestClient_Send_ValidationHappensBeforeNetwork(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("gateway must not be called")
	})
	ctx := context.Background()

	_, err := c.Send(ctx, nil, "hi")
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = c.Send(ctx, []string{"", " "}, "hi")
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = c.Send(ctx, []string{"12345"}, "hi")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = c.Send(ctx, []string{"9876543210"}, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = c.Send(ctx, []string{"9876543210"}, strings.Repeat("a", MaxMessageLength+1))
	assert.ErrorIs(t, err, ErrMessageLength)

	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_Send_MessageAtLimit(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"return":true,"request_id":"ok"}`))
	})
	// Multi-byte runes count as one character each.
	_, err := c.Send(context.Background(), []string{"9876543210"}, strings.Repeat("₹", MaxMessageLength))
	assert.NoError(t, err)
}

func TestClient_Send_GatewayErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"non-2xx", http.StatusUnauthorized, `{"return":false,"message":"Invalid Authentication"}`, "HTTP 401"},
		{"return false", http.StatusOK, `{"return":false,"status_code":412,"message":"Invalid Sender ID"}`, "Invalid Sender ID"},
		{"malformed body", http.StatusOK, `not json`, "failed to parse response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Send(context.Background(), []string{"9876543210"}, "hello")
			require.ErrorIs(t, err, ErrGateway)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_Send_Unreachable(t *testing.T) {
	c := NewClient(config.SMSConfig{
		BaseURL:  "http://127.0.0.1:1",
		APIKey:   "key",
		SenderID: "SLAIDS",
		Timeout:  500 * time.Millisecond,
	}, nil)
	_, err := c.Send(context.Background(), []string{"9876543210"}, "hello")
	assert.ErrorIs(t, err, ErrGateway)
}

func TestNormalizeNumbers(t *testing.T) {
	got, err := NormalizeNumbers([]string{"+919876543210", "919876543210", "7000000001"})
	require.NoError(t, err)
	assert.Equal(t, []string{"9876543210", "7000000001"}, got)
}

func TestTemplates(t *testing.T) {
	assert.Equal(t,
		`Hi Asha, your Sellaids store "Vintage Vault" has been approved. You can now list products from your vendor dashboard.`,
		VendorApproved("Asha", "Vintage Vault"))
	assert.Contains(t, VendorRejected("Asha", "Vintage Vault", "GST mismatch"), "Reason: GST mismatch")
	assert.Contains(t, VendorSuspended("Asha", "Vintage Vault"), "suspended")
	assert.Contains(t, ProductApproved("Kelly 28", decimal.RequireFromString("4500")), "Rs. 4,500.00")
}
