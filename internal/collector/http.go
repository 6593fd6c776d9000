package collector

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

	"ChartFeed/internal/model"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// MaxBodyBytes caps an upstream response. A full daily history is well under 1 MiB.
	MaxBodyBytes = 32 << 20
)

// errBodyTooLarge marks a response that exceeded MaxBodyBytes.
var errBodyTooLarge = errors.New("response body too large")

// HTTPFetcher reads daily closes from GET {BaseURL}/{lowercase symbol}.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
	maxBody int64
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithTimeout overrides DefaultTimeout on the HTTP client.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(f *HTTPFetcher) { f.Client.Timeout = timeout }
}

// WithRateLimit caps outgoing requests per second. Zero or less disables the limit.
func WithRateLimit(requestsPerSecond float64) HTTPOption {
	return func(f *HTTPFetcher) {
		if requestsPerSecond <= 0 {
			f.limiter = nil
			return
		}
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) HTTPOption {
	return func(f *HTTPFetcher) { f.logger = logger }
}

// NewHTTPFetcher creates a fetcher with optional proxy support.
func NewHTTPFetcher(baseURL, proxyURL string, opts ...HTTPOption) *HTTPFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	f := &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  zap.NewNop(),
		maxBody: MaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *HTTPFetcher) Name() string { return "http" }

// URLFor is the endpoint queried for symbol.
func (f *HTTPFetcher) URLFor(symbol string) string {
	return fmt.Sprintf("%s/%s", f.BaseURL, url.PathEscape(strings.ToLower(symbol)))
}

// FetchDaily performs one request; it never retries.
func (f *HTTPFetcher) FetchDaily(ctx context.Context, symbol string) ([]model.RawPriceRecord, error) {
	endpoint := f.URLFor(symbol)

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: endpoint, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	f.logger.Debug("fetching daily closes", zap.String("symbol", symbol), zap.String("url", endpoint))
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, &TransportError{URL: endpoint, StatusCode: 0, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > f.maxBody {
		f.logger.Warn("upstream body too large", zap.String("symbol", symbol), zap.Int64("limit", f.maxBody))
		return nil, &MalformedPayloadError{URL: endpoint, Body: preview(body), Err: fmt.Errorf("%w: over %d bytes", errBodyTooLarge, f.maxBody)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("upstream error response",
			zap.String("symbol", symbol),
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", preview(body)))
		return nil, &TransportError{URL: endpoint, StatusCode: resp.StatusCode, Body: preview(body)}
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, &MalformedPayloadError{URL: endpoint, Body: preview(body), Err: err}
	}
	f.logger.Debug("fetched daily closes", zap.String("symbol", symbol), zap.Int("count", len(records)))
	return records, nil
}

func decodeRecords(body []byte) ([]model.RawPriceRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array")
	}
	var records []model.RawPriceRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.RawPriceRecord{}
	}
	return records, nil
}
