package gateway

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventkampus/api/internal/config"
)

func testClient(baseURL string) Client {
	return NewClient(config.PaymentConfig{
		BaseURL:        baseURL,
		ServerKey:      "server-key",
		TimeoutSeconds: 5,
	})
}

func TestCreateSession(t *testing.T) {
	var received SessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/transactions", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "server-key", user)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(Session{Token: "snap-token", RedirectURL: "https://pay.example/r"})
	}))
	defer srv.Close()

	session, err := testClient(srv.URL).CreateSession(context.Background(), SessionRequest{
		OrderID:       "EVK-abc",
		GrossAmount:   50000,
		CustomerName:  "Alice",
		CustomerEmail: "alice@campus.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "snap-token", session.Token)
	assert.Equal(t, "https://pay.example/r", session.RedirectURL)
	assert.Equal(t, "EVK-abc", received.OrderID)
	assert.Equal(t, int64(50000), received.GrossAmount)
}

func TestCreateSessionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateSession(context.Background(), SessionRequest{OrderID: "EVK-abc"})
	assert.Error(t, err)
}

func TestCreateSessionEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Session{})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateSession(context.Background(), SessionRequest{OrderID: "EVK-abc"})
	assert.Error(t, err)
}

func TestCreateSessionTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := testClient(srv.URL).CreateSession(ctx, SessionRequest{OrderID: "EVK-abc"})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCreateSessionUnconfigured(t *testing.T) {
	_, err := testClient("").CreateSession(context.Background(), SessionRequest{OrderID: "EVK-abc"})
	assert.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	n := Notification{
		OrderID:     "EVK-abc",
		StatusCode:  "200",
		GrossAmount: "50000.00",
	}
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + "server-key"))
	n.SignatureKey = hex.EncodeToString(sum[:])

	assert.True(t, VerifySignature(n, "server-key"))
	assert.False(t, VerifySignature(n, "wrong-key"))

	n.SignatureKey = "forged"
	assert.False(t, VerifySignature(n, "server-key"))
}
