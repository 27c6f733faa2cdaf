// Package sns is a client for the Amazon SNS query API, authenticated with
// AWS Signature Version 4.
package sns

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lkinley/AsyncAWS/sigv4"
	"github.com/lkinley/AsyncAWS/transport"
)

const (
	// ServiceName is the service segment of the credential scope.
	ServiceName = "sns"

	// APIVersion is merged into every parameter set.
	APIVersion = "2010-03-31"
)

// Client issues signed SNS query requests. Safe for concurrent use.
type Client struct {
	creds     sigv4.Credentials
	region    string
	endpoint  string
	signer    *sigv4.Signer
	transport transport.Transport
	logger    zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the regional base endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithTransport replaces the default HTTP transport.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger.With().Str("component", "sns").Logger() }
}

// WithSignerOptions forwards options to the request signer.
func WithSignerOptions(opts ...sigv4.Option) Option {
	return func(c *Client) { c.signer = sigv4.New(c.region, ServiceName, opts...) }
}

// New creates a Client for the given credentials and region.
func New(creds sigv4.Credentials, region string, opts ...Option) *Client {
	c := &Client{
		creds:    creds,
		region:   region,
		endpoint: "https://" + ServiceName + "." + region + ".amazonaws.com/",
		signer:   sigv4.New(region, ServiceName),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.NewHTTP(transport.WithLogger(c.logger))
	}
	return c
}

// CreateTopic creates a notification topic, or returns the ARN of an
// existing one with that name. The legacy SignatureMethod and
// SignatureVersion fields are inert under the v4 scheme but preserved for
// compatibility with the wire API.
func (c *Client) CreateTopic(ctx context.Context, name string) (*transport.Response, error) {
	params := url.Values{}
	params.Set("Action", "CreateTopic")
	params.Set("Name", name)
	params.Set("Version", APIVersion)
	params.Set("SignatureMethod", "HmacSHA256")
	params.Set("SignatureVersion", "4")

	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	intent := sigv4.RequestIntent{
		Method: http.MethodGet,
		URL:    c.endpoint + sep + params.Encode(),
	}
	signed, err := c.signer.Sign(ctx, intent, c.creds)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("action", "CreateTopic").Str("topic", name).Msg("dispatching request")

	return c.transport.Do(ctx, signed)
}
