// Package sms sends transactional text messages through a Fast2SMS-style
// HTTP gateway.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/infrastructure/config"
	"github.com/sellaids/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// MaxMessageLength is the longest message the gateway accepts, in characters
const MaxMessageLength = 500

const maxResponseSize = 64 << 10

var (
	// ErrNotConfigured is returned before any network I/O when the API key or
	// sender id is missing.
	ErrNotConfigured = errors.New("sms: gateway credentials are not configured")
	ErrNoRecipients  = errors.New("sms: at least one recipient is required")
	ErrInvalidNumber = errors.New("sms: invalid mobile number")
	ErrEmptyMessage  = errors.New("sms: message is required")
	ErrMessageLength = fmt.Errorf("sms: message exceeds %d characters", MaxMessageLength)
	// ErrGateway wraps transport failures, non-2xx statuses and return:false replies.
	ErrGateway = errors.New("sms: gateway error")
)

// Result is the gateway's acknowledgement of an accepted message
type Result struct {
	RequestID string   `json:"request_id"`
	SentTo    []string `json:"sent_to"`
}

// Client talks to the SMS gateway
type Client struct {
	baseURL    string
	apiKey     string
	senderID   string
	route      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client. Missing credentials are not an error here;
// Send reports ErrNotConfigured so the rest of the app can start without SMS.
func NewClient(cfg config.SMSConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	route := cfg.Route
	if route == "" {
		route = "dlt"
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		senderID:   cfg.SenderID,
		route:      route,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.Named("sms"),
	}
}

// Configured reports whether both the API key and sender id are present
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.apiKey) != "" && strings.TrimSpace(c.senderID) != ""
}

type sendRequest struct {
	Route    string `json:"route"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
	Numbers  string `json:"numbers"`
}

type sendResponse struct {
	Return    bool            `json:"return"`
	RequestID string          `json:"request_id"`
	Message   json.RawMessage `json:"message"`
}

// Send delivers message to every number in a single gateway call.
func (c *Client) Send(ctx context.Context, numbers []string, message string) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	recipients, err := NormalizeNumbers(numbers)
	if err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, ErrMessageLength
	}

	body, err := json.Marshal(sendRequest{
		Route:    c.route,
		SenderID: c.senderID,
		Message:  message,
		Numbers:  strings.Join(recipients, ","),
	})
	if err != nil {
		return nil, fmt.Errorf("sms: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sms: failed to create request: %w", err)
	}
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log := logger.ForContext(ctx, c.logger)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("sms gateway unreachable", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrGateway, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("sms gateway rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(raw), 256)),
		)
		return nil, fmt.Errorf("%w: HTTP %d", ErrGateway, resp.StatusCode)
	}

	var parsed sendResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrGateway, err)
	}
	if !parsed.Return {
		return nil, fmt.Errorf("%w: %s", ErrGateway, gatewayMessage(parsed.Message))
	}

	log.Info("sms sent",
		zap.String("gateway_request_id", parsed.RequestID),
		zap.Int("recipients", len(recipients)),
		zap.Duration("latency", time.Since(start)),
	)
	return &Result{RequestID: parsed.RequestID, SentTo: recipients}, nil
}

// NormalizeNumbers reduces each number to 10 digits and removes duplicates,
// keeping first-seen order.
func NormalizeNumbers(numbers []string) ([]string, error) {
	seen := make(map[string]struct{}, len(numbers))
	out := make([]string, 0, len(numbers))
	for _, raw := range numbers {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		n, ok := shared.NormalizePhone(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, ErrNoRecipients
	}
	return out, nil
}

// gatewayMessage flattens the gateway's message field, which is a string
// on errors and a list of strings on success.
func gatewayMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return "request not accepted"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
