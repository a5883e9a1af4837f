// Package fivesim talks to a 5sim compatible SMS activation API: it rents a
// number for a credential and reads back the code that arrived on it.
package fivesim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"activation/internal/core/domain/model/credential"
	"activation/internal/core/domain/model/order"
	"activation/internal/core/ports"
	"activation/internal/pkg/metrics"
)

const (
	DefaultBaseURL      = "https://5sim.net/v1"
	DefaultBuyTimeout   = 15 * time.Second
	DefaultCheckTimeout = 10 * time.Second

	operationAcquireNumber = "acquire_number"
	operationCheckCode     = "check_code"

	// maxBodySize caps what is read from the provider.
	maxBodySize = 1 << 20
)

// Client implements ports.ProviderClient. It never retries: a failed call is
// reported as ports.ErrProviderUnavailable and the caller decides.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	buyTimeout   time.Duration
	checkTimeout time.Duration
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeouts overrides the per call deadlines; non-positive values keep the defaults.
func WithTimeouts(buy, check time.Duration) Option {
	return func(cl *Client) {
		if buy > 0 {
			cl.buyTimeout = buy
		}
		if check > 0 {
			cl.checkTimeout = check
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL, which
// lets tests pass an httptest server URL.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{},
		buyTimeout:   DefaultBuyTimeout,
		checkTimeout: DefaultCheckTimeout,
		logger:       logger.With("component", "fivesim_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) AcquireNumber(ctx context.Context, cred *credential.Credential) (order.Lease, error) {
	endpoint := fmt.Sprintf("%s/user/buy/activation/%s/%s/%s",
		c.baseURL,
		url.PathEscape(cred.Country()),
		url.PathEscape(cred.Operator()),
		url.PathEscape(cred.Product()),
	)

	var parsed buyResponse
	if err := c.get(ctx, operationAcquireNumber, c.buyTimeout, endpoint, cred.Token(), &parsed); err != nil {
		return order.Lease{}, err
	}

	lease, err := order.NewLease(parsed.Phone, string(parsed.ID))
	if err != nil {
		return order.Lease{}, fmt.Errorf("%w: fivesim: incomplete activation: %w", ports.ErrProviderUnavailable, err)
	}

	c.logger.InfoContext(ctx, "Phone number acquired",
		"external_id", lease.ExternalID(),
		"country", cred.Country(),
		"product", cred.Product(),
	)
	return lease, nil
}

// CheckCode returns the first code received for externalID, or "" while none arrived.
func (c *Client) CheckCode(ctx context.Context, cred *credential.Credential, externalID string) (string, error) {
	if strings.TrimSpace(externalID) == "" {
		return "", fmt.Errorf("%w: fivesim: empty external id", ports.ErrProviderUnavailable)
	}
	endpoint := fmt.Sprintf("%s/user/check/%s", c.baseURL, url.PathEscape(externalID))

	var parsed checkResponse
	if err := c.get(ctx, operationCheckCode, c.checkTimeout, endpoint, cred.Token(), &parsed); err != nil {
		return "", err
	}

	if len(parsed.SMS) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.SMS[0].Code), nil
}

func (c *Client) get(
	ctx context.Context,
	operation string,
	timeout time.Duration,
	endpoint, token string,
	out any,
) (err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		c.metrics.ObserveProviderRequest(operation, outcome, time.Since(start))
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: fivesim: build request: %w", ports.ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fivesim: send request: %w", ports.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: fivesim: read response: %w", ports.ErrProviderUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: fivesim: error %d: %s",
			ports.ErrProviderUnavailable, resp.StatusCode, snippet(body))
	}

	if err = json.Unmarshal(body, out); err != nil {
		// 5sim answers some failures with 200 and a plain text body such as "no free phones".
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return fmt.Errorf("%w: fivesim: unexpected body: %s", ports.ErrProviderUnavailable, snippet(body))
		}
		return fmt.Errorf("%w: fivesim: parse response: %w", ports.ErrProviderUnavailable, err)
	}

	return nil
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
