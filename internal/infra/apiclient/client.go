package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"operadoras/internal/domain"
	"operadoras/internal/infra/telemetry"
)

const maxErrorBodyBytes = 64 * 1024

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	Logger     *zap.Logger
	Metrics    domain.Metrics
	HTTPClient *http.Client
}

// Client is a JSON API accessor that classifies failures as *domain.APIError.
type Client struct {
	baseURL string
	rawBase string
	timeout time.Duration
	logger  *zap.Logger
	metrics domain.Metrics
	client  *http.Client
}

// New builds a Client. An invalid base URL is not rejected here: every Get
// then fails as a request construction error, matching how the store reports
// misconfiguration.
func New(opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}

	headers, err := buildHeaders(opts)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *httpClient
	wrapped.Transport = &headerRoundTripper{base: base, headers: headers}

	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		rawBase: opts.BaseURL,
		timeout: opts.Timeout,
		logger:  logger.Named("api-client"),
		metrics: metrics,
		client:  &wrapped,
	}, nil
}

// Get issues a GET request for path relative to the base URL.
func (c *Client) Get(ctx context.Context, path string, params domain.Params) (*domain.Response, error) {
	op := "GET " + path
	if ctx == nil {
		return nil, domain.RequestError(op, errors.New("nil context"))
	}

	endpoint, err := c.resolve(path, params)
	if err != nil {
		return nil, domain.RequestError(op, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.RequestError(op, err)
	}
	requestID := telemetry.EnsureRequestID(ctx)
	req.Header.Set(telemetry.RequestIDHeader, requestID)

	logger := c.logger.With(telemetry.EndpointField(path), telemetry.RequestIDField(requestID))
	logger.Debug("sending request", telemetry.EventField(telemetry.EventRequestSent), zap.String("url", endpoint))

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.ObserveHTTPRequest(path, 0, time.Since(started))
		logger.Debug("request got no response", zap.Error(err))
		return nil, domain.ConnectivityError(op, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	duration := time.Since(started)
	c.metrics.ObserveHTTPRequest(path, resp.StatusCode, duration)
	logger.Debug("response received", telemetry.StatusField(resp.StatusCode), telemetry.DurationField(duration))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.ServerError(op, resp.StatusCode, errorDetail(body))
	}
	if readErr != nil {
		if errors.Is(readErr, context.DeadlineExceeded) || errors.Is(readErr, context.Canceled) {
			return nil, domain.ConnectivityError(op, readErr)
		}
		return nil, domain.ServerError(op, resp.StatusCode, domain.MessageInvalidResponseBody)
	}
	if !json.Valid(body) {
		return nil, domain.ServerError(op, resp.StatusCode, domain.MessageInvalidResponseBody)
	}

	return &domain.Response{
		Status: resp.StatusCode,
		Body:   json.RawMessage(body),
	}, nil
}

func (c *Client) resolve(path string, params domain.Params) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("api base url is required")
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", c.rawBase, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("unsupported base url scheme %q", base.Scheme)
	}
	if base.Host == "" {
		return "", fmt.Errorf("base url %q has no host", c.rawBase)
	}

	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	base.Path = strings.TrimRight(base.Path, "/") + "/"
	if base.RawPath != "" {
		base.RawPath = strings.TrimRight(base.RawPath, "/") + "/"
	}
	resolved := base.ResolveReference(ref)

	query, err := encodeParams(params)
	if err != nil {
		return "", err
	}
	resolved.RawQuery = query
	return resolved.String(), nil
}

func encodeParams(params domain.Params) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, key := range keys {
		value, err := scalarString(params[key])
		if err != nil {
			return "", fmt.Errorf("param %q: %w", key, err)
		}
		values.Set(key, value)
	}
	return values.Encode(), nil
}

func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("unsupported parameter type %T", value)
	}
}

// errorDetail extracts a string "detail" field from an error body.
func errorDetail(body []byte) string {
	if len(body) == 0 || len(body) > maxErrorBodyBytes {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}

func buildHeaders(opts Options) (http.Header, error) {
	headers := http.Header{}
	headers.Set("Accept", "application/json")
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}
	headers.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		name := http.CanonicalHeaderKey(strings.TrimSpace(key))
		if name == "" {
			return nil, errors.New("http headers contain empty key")
		}
		headers.Set(name, value)
	}
	return headers, nil
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers http.Header
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, values := range h.headers {
		clone.Header.Del(key)
		for _, value := range values {
			clone.Header.Add(key, value)
		}
	}
	return h.base.RoundTrip(clone)
}

var _ domain.APIClient = (*Client)(nil)
