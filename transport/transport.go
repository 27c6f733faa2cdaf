// Package transport delivers signed requests over HTTP(S).
//
// The signing core performs no I/O of its own; everything network-facing
// lives behind the Transport interface. Many signed requests may be in flight
// simultaneously, each independently timestamped and signed; cancelling one
// pending call aborts only that call. No retry or backoff is performed here —
// a request rejected because its timestamp skewed past the vendor's tolerance
// window must be re-signed and resent by the caller.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lkinley/AsyncAWS/sigv4"
)

// ErrTransport indicates a network or connection failure. It wraps the
// underlying error and is never retried automatically.
var ErrTransport = errors.New("transport request failed")

// requestIDHeader tags outbound requests for log correlation.
const requestIDHeader = "X-Request-Id"

// Response is the raw result of a dispatched request. HTTP error statuses are
// not transport failures; callers inspect StatusCode or decode the vendor
// error envelope.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Transport dispatches a signed request and returns the raw response.
// Implementations must be safe for concurrent use.
type Transport interface {
	Do(ctx context.Context, req *sigv4.SignedRequest) (*Response, error)
}

// Observer receives one callback per completed request. A zero status code
// means the request failed before a response arrived.
type Observer interface {
	ObserveRequest(method, host string, statusCode int, elapsed time.Duration)
}

// HTTPTransport is the default Transport, backed by net/http.
type HTTPTransport struct {
	client   *http.Client
	logger   zerolog.Logger
	observer Observer
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(t *HTTPTransport) { t.client = client }
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(t *HTTPTransport) { t.client.Timeout = timeout }
}

// WithLogger attaches a logger; requests are logged at debug level.
func WithLogger(logger zerolog.Logger) HTTPOption {
	return func(t *HTTPTransport) {
		t.logger = logger.With().Str("component", "transport").Logger()
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(observer Observer) HTTPOption {
	return func(t *HTTPTransport) { t.observer = observer }
}

// NewHTTP creates an HTTPTransport.
func NewHTTP(opts ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, req *sigv4.SignedRequest) (*Response, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	httpResp, err := t.client.Do(httpReq)
	elapsed := time.Since(start)

	if err != nil {
		t.observe(req.Method, httpReq.URL.Host, 0, elapsed)
		t.logger.Debug().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("host", httpReq.URL.Host).
			Err(err).
			Msg("request failed")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		t.observe(req.Method, httpReq.URL.Host, httpResp.StatusCode, elapsed)
		return nil, fmt.Errorf("%w: reading response body: %v", ErrTransport, err)
	}

	t.observe(req.Method, httpReq.URL.Host, httpResp.StatusCode, elapsed)
	t.logger.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("host", httpReq.URL.Host).
		Int("status", httpResp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request completed")

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

func (t *HTTPTransport) observe(method, host string, statusCode int, elapsed time.Duration) {
	if t.observer != nil {
		t.observer.ObserveRequest(method, host, statusCode, elapsed)
	}
}

var _ Transport = (*HTTPTransport)(nil)
