// Package fetch retrieves raw METAR and TAF text from aviationweather.gov
// and decodes it into report records.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/flightwx/avwx"
)

const (
	// DefaultBaseURL is the aviationweather.gov raw-text endpoint root.
	DefaultBaseURL = "https://aviationweather.gov/api/data"

	// DefaultTimeout bounds a single HTTP exchange.
	DefaultTimeout = 30 * time.Second
)

// Client fetches raw report text over HTTP. Transport errors and server-side
// failures are retried with exponential backoff; client-side errors are not.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a report fetcher. A nil logger disables logging.
func NewClient(logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger.Named("fetch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// METAR fetches and decodes the latest METAR for a station. The receipt time
// is stamped on the returned record.
func (c *Client) METAR(ctx context.Context, station string) (*avwx.METAR, error) {
	raw, err := c.fetchRaw(ctx, "metar", station)
	if err != nil {
		return nil, err
	}

	report, err := avwx.DecodeMETAR(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding METAR for %s: %w", station, err)
	}
	report.SetReceiptTime(time.Now())
	return report, nil
}

// TAF fetches and decodes the latest TAF for a station.
func (c *Client) TAF(ctx context.Context, station string) (*avwx.TAF, error) {
	raw, err := c.fetchRaw(ctx, "taf", station)
	if err != nil {
		return nil, err
	}

	report, err := avwx.DecodeTAF(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding TAF for %s: %w", station, err)
	}
	return report, nil
}

// fetchRaw retrieves the raw report text for one station. TAFs span multiple
// lines upstream, so line breaks are collapsed before decoding.
func (c *Client) fetchRaw(ctx context.Context, kind, station string) (string, error) {
	station = strings.ToUpper(strings.TrimSpace(station))
	endpoint := fmt.Sprintf("%s/%s?ids=%s&format=raw", c.baseURL, kind, url.QueryEscape(station))

	operation := func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return "", backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("request failed, may retry",
				zap.String("kind", kind),
				zap.String("station", station),
				zap.Error(err))
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			c.logger.Warn("server error, may retry",
				zap.String("kind", kind),
				zap.String("station", station),
				zap.Int("status", resp.StatusCode))
			return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return "", backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	body, err := backoff.RetryWithData(operation, backoff.WithMaxRetries(policy, 3))
	if err != nil {
		return "", fmt.Errorf("fetching %s for %s: %w", strings.ToUpper(kind), station, err)
	}

	raw := strings.Join(strings.Fields(body), " ")
	if raw == "" {
		return "", fmt.Errorf("no %s data found for %s", strings.ToUpper(kind), station)
	}

	c.logger.Debug("fetched report",
		zap.String("kind", kind),
		zap.String("station", station),
		zap.Int("bytes", len(body)))
	return raw, nil
}
