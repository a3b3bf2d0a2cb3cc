package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gallery-backend/internal/domain/recommend"
	"gallery-backend/internal/domain/session"
	"gallery-backend/internal/platform/logger"
	"gallery-backend/internal/platform/metrics"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
)

var ErrUpstream = errors.New("history upstream error")

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  *logger.Logger
}

// Client fetches history from a remote orders service. The caller's session
// travels in ctx and its token is forwarded as the bearer credential.
type Client struct {
	http *resty.Client
	cb   *gobreaker.CircuitBreaker[*resty.Response]
	name string
	log  *logger.Logger
}

// NewClient builds the remote history client.
// Breaker: opens after 5 consecutive failures, probes again after 30s.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = recommend.DefaultHistoryTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	name := "history-api"

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "gallery-backend/1.0")

	metrics.HistoryBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("history circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.HistoryBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &Client{http: httpClient, cb: cb, name: name, log: log}
}

func (c *Client) History(ctx context.Context, userID string) (h recommend.History, err error) {
	start := time.Now()
	defer func() {
		metrics.HistoryFetchDuration.WithLabelValues("remote", outcome(err)).Observe(time.Since(start).Seconds())
	}()

	req := c.http.R().
		SetContext(ctx).
		SetPathParam("id", userID)
	if s, ok := session.FromContext(ctx); ok && s.Token != "" {
		req.SetAuthToken(s.Token)
	}

	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		resp, err := req.Get("/user/{id}/orders")
		if err != nil {
			return nil, err
		}
		// only server-side failures count against the breaker
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return recommend.History{}, fmt.Errorf("%w: circuit open", ErrUpstream)
		}
		return recommend.History{}, err
	}

	var p Payload
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		if resp.IsError() {
			return recommend.History{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
		}
		return recommend.History{}, fmt.Errorf("decode history: %w", err)
	}
	if p.Error != "" {
		return recommend.History{}, fmt.Errorf("%w: %s", ErrUpstream, p.Error)
	}
	if resp.IsError() {
		return recommend.History{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}
	return p.History(), nil
}

func (c *Client) State() gobreaker.State {
	return c.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
