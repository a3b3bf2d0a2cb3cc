package history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/session"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientDecodesMixedPayload(t *testing.T) {
	var gotAuth, gotPath string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"orders": [
				{"artworkId": 42, "artist": "Jane Doe", "medium": "Oil", "price": 500},
				{"artwork_id": "43", "artist": "Kofi Mensah", "total_amount": 120}
			],
			"bookings": [{"exhibition_id": 7, "exhibition_title": "Lagos Light"}]
		}`))
	})

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: time.Second})
	ctx := session.WithContext(context.Background(), session.Session{UserID: 5, Token: "tok"})

	h, err := c.History(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "/user/5/orders", gotPath)

	require.Len(t, h.Orders, 2)
	assert.Equal(t, catalog.ID("42"), h.Orders[0].ArtworkID)
	assert.Equal(t, catalog.ID("43"), h.Orders[1].ArtworkID)
	assert.Equal(t, "", h.Orders[1].Medium)
	assert.Equal(t, 120.0, h.Orders[1].EffectivePrice())

	require.Len(t, h.Bookings, 1)
	assert.Equal(t, catalog.ID("7"), h.Bookings[0].ExhibitionID)
	assert.Equal(t, "Lagos Light", h.Bookings[0].ExhibitionTitle)
}

func TestClientErrorIndicator(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "user not found"}`))
	})
	_, err := NewClient(ClientConfig{BaseURL: srv.URL}).History(context.Background(), "5")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClientRejectsClientErrors(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`not json`))
	})
	_, err := NewClient(ClientConfig{BaseURL: srv.URL}).History(context.Background(), "5")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClientRejectsGarbage(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})
	_, err := NewClient(ClientConfig{BaseURL: srv.URL}).History(context.Background(), "5")
	assert.Error(t, err)
}

func TestClientTimesOut(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})
	start := time.Now()
	_, err := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}).History(context.Background(), "5")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
}

func TestClientBreakerOpensAfterServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: time.Second})

	for i := 0; i < 5; i++ {
		_, err := c.History(context.Background(), "5")
		assert.ErrorIs(t, err, ErrUpstream)
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.History(context.Background(), "5")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, int32(5), hits.Load(), "open breaker short-circuits")
}
