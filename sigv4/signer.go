package sigv4

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Signer produces signed requests for one region/service pair. It holds no
// credentials and no mutable state; the same Signer may sign from any number
// of goroutines concurrently.
type Signer struct {
	region  string
	service string
	keys    KeyProvider
	now     func() time.Time
	logger  zerolog.Logger
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock replaces the timestamp source. Tests use this to pin the signing
// instant and get byte-identical signatures.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) { s.now = now }
}

// WithLogger attaches a logger. The signer logs at debug level only and never
// logs secrets, derived keys or signatures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Signer) { s.logger = logger.With().Str("component", "sigv4").Logger() }
}

// WithKeyProvider replaces the default fresh-derivation provider, typically
// with a read-through cache from sigv4/keycache.
func WithKeyProvider(p KeyProvider) Option {
	return func(s *Signer) { s.keys = p }
}

// New creates a Signer for the given region and service.
func New(region, service string, opts ...Option) *Signer {
	s := &Signer{
		region:  region,
		service: service,
		keys:    DeriveProvider{},
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignedRequest is a ready-to-send request: the URL rewritten to carry the
// canonical querystring, and the header set augmented with x-amz-date and
// Authorization.
type SignedRequest struct {
	Method string
	URL    string
	Header http.Header
}

// HTTPRequest materializes the signed request as an *http.Request bound to ctx.
func (r *SignedRequest) HTTPRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	for name, values := range r.Header {
		req.Header[name] = append([]string(nil), values...)
	}
	return req, nil
}

// Sign builds the canonical request, derives the signing key and returns a
// new SignedRequest. One timestamp is captured at the start of the call and
// reused for the canonical headers, the credential scope and the key
// derivation; mixing two instants within one request would silently produce
// an unverifiable signature.
//
// Neither the intent nor the credentials are mutated. Any x-amz-date or
// Authorization header on the intent is replaced.
func (s *Signer) Sign(ctx context.Context, intent RequestIntent, creds Credentials) (*SignedRequest, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	t := s.now().UTC()
	amzDate := t.Format(ISO8601BasicFormat)

	canonical, err := BuildCanonicalRequest(intent.Method, intent.URL, amzDate)
	if err != nil {
		return nil, err
	}

	scope := CredentialScope{
		Date:    t.Format(YYYYMMDD),
		Region:  s.region,
		Service: s.service,
	}

	signingKey, err := s.keys.SigningKey(ctx, creds, scope.Date, scope.Region, scope.Service)
	if err != nil {
		return nil, err
	}

	stringToSign := StringToSign(canonical.String(), amzDate, scope)
	signature := Signature(signingKey, stringToSign)

	authorization := SignV4Algorithm +
		" Credential=" + creds.AccessKeyID + "/" + scope.String() +
		", SignedHeaders=" + canonical.SignedHeaders +
		", Signature=" + signature

	header := make(http.Header, len(intent.Header)+2)
	for name, values := range intent.Header {
		header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}
	header.Set(AmzDateHeader, amzDate)
	header.Set(AuthorizationHeader, authorization)

	base, _, _ := strings.Cut(intent.URL, "?")

	s.logger.Debug().
		Str("access_key_id", creds.AccessKeyID).
		Str("scope", scope.String()).
		Str("host", canonical.Host).
		Msg("request signed")

	return &SignedRequest{
		Method: canonical.Method,
		URL:    base + "?" + canonical.QueryString,
		Header: header,
	}, nil
}
