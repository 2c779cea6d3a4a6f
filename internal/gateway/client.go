package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/eventkampus/api/internal/config"
)

// ErrTimeout indicates the gateway did not answer within the configured
// deadline.
var ErrTimeout = errors.New("payment gateway timeout")

// SessionRequest carries everything the gateway needs to open a payment
// session. OrderID encodes the registration id so the asynchronous
// notification can be mapped back to the ledger.
type SessionRequest struct {
	OrderID       string `json:"order_id"`
	GrossAmount   int64  `json:"gross_amount"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// Session is the opaque handle the client completes payment with.
type Session struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Client requests payment sessions from the external gateway.
type Client interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

type httpGateway struct {
	baseURL   string
	serverKey string
	client    *http.Client
}

// NewClient builds an HTTP-backed gateway client with a bounded timeout.
func NewClient(cfg config.PaymentConfig) Client {
	return &httpGateway{
		baseURL:   cfg.BaseURL,
		serverKey: cfg.ServerKey,
		client:    &http.Client{Timeout: cfg.Timeout()},
	}
}

func (g *httpGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if g.baseURL == "" {
		return nil, errors.New("payment gateway not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.serverKey, "")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, errors.New("payment gateway returned empty token")
	}
	return &session, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
