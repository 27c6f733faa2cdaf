// Package sqs is a client for the Amazon SQS query API, authenticated with
// AWS Signature Version 4. All operations are GET-shaped: parameters travel
// in the query string, responses come back as XML. Operations return the raw
// transport response; ParseResponse extracts the structured value when one of
// the recognized result shapes is present.
package sqs

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lkinley/AsyncAWS/sigv4"
	"github.com/lkinley/AsyncAWS/transport"
)

const (
	// ServiceName is the service segment of the credential scope.
	ServiceName = "sqs"

	// APIVersion is merged into every parameter set.
	APIVersion = "2012-11-05"
)

// Client issues signed SQS query requests. Safe for concurrent use.
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

// WithEndpoint overrides the regional base endpoint used by CreateQueue.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithTransport replaces the default HTTP transport.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger.With().Str("component", "sqs").Logger() }
}

// WithSignerOptions forwards options to the request signer (clock injection,
// key cache, logging).
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

// CreateQueue creates a new queue, or returns the URL of an existing one with
// that name. Attributes are numbered Attribute.N.Name/Attribute.N.Value from 1.
func (c *Client) CreateQueue(ctx context.Context, name string, attributes map[string]string) (*transport.Response, error) {
	params := url.Values{}
	params.Set("Action", "CreateQueue")
	params.Set("QueueName", name)
	i := 1
	for _, attrName := range sortedKeys(attributes) {
		params.Set("Attribute."+strconv.Itoa(i)+".Name", attrName)
		params.Set("Attribute."+strconv.Itoa(i)+".Value", attributes[attrName])
		i++
	}
	return c.do(ctx, c.endpoint, params)
}

// DeleteQueue deletes the queue at queueURL regardless of whether it is
// empty. Deleting a nonexistent queue still succeeds on the vendor side.
func (c *Client) DeleteQueue(ctx context.Context, queueURL string) (*transport.Response, error) {
	params := url.Values{}
	params.Set("Action", "DeleteQueue")
	return c.do(ctx, queueURL, params)
}

// SendMessage delivers a message to the queue at queueURL.
func (c *Client) SendMessage(ctx context.Context, queueURL, messageBody string) (*transport.Response, error) {
	params := url.Values{}
	params.Set("Action", "SendMessage")
	params.Set("MessageBody", messageBody)
	return c.do(ctx, queueURL, params)
}

// DeleteMessage deletes a message by its receipt handle (not its message ID).
func (c *Client) DeleteMessage(ctx context.Context, queueURL, receiptHandle string) (*transport.Response, error) {
	params := url.Values{}
	params.Set("Action", "DeleteMessage")
	params.Set("ReceiptHandle", receiptHandle)
	return c.do(ctx, queueURL, params)
}

// ReceiveOptions tunes a ReceiveMessage call. Zero values take the long-poll
// defaults below.
type ReceiveOptions struct {
	// WaitTime is how long the call waits for a message to arrive before
	// returning (long polling). Defaults to 15 seconds.
	WaitTime time.Duration

	// MaxMessages is the maximum number of messages to return. Defaults to 1.
	MaxMessages int

	// VisibilityTimeout hides received messages from subsequent receives for
	// this duration. Defaults to 5 minutes.
	VisibilityTimeout time.Duration
}

func (o ReceiveOptions) withDefaults() ReceiveOptions {
	if o.WaitTime <= 0 {
		o.WaitTime = 15 * time.Second
	}
	if o.MaxMessages <= 0 {
		o.MaxMessages = 1
	}
	if o.VisibilityTimeout <= 0 {
		o.VisibilityTimeout = 5 * time.Minute
	}
	return o
}

// ReceiveMessage retrieves messages from the queue at queueURL, long-polling
// per opts. All message attributes are requested.
func (c *Client) ReceiveMessage(ctx context.Context, queueURL string, opts ReceiveOptions) (*transport.Response, error) {
	opts = opts.withDefaults()
	params := url.Values{}
	params.Set("Action", "ReceiveMessage")
	params.Set("WaitTimeSeconds", strconv.Itoa(int(opts.WaitTime/time.Second)))
	params.Set("MaxNumberOfMessages", strconv.Itoa(opts.MaxMessages))
	params.Set("VisibilityTimeout", strconv.Itoa(int(opts.VisibilityTimeout/time.Second)))
	params.Set("AttributeName", "All")
	return c.do(ctx, queueURL, params)
}

// GetQueueAttributes fetches the named attributes of the queue. With no names
// it fetches All. Names are numbered AttributeName.N from 1.
func (c *Client) GetQueueAttributes(ctx context.Context, queueURL string, names ...string) (*transport.Response, error) {
	if len(names) == 0 {
		names = []string{"All"}
	}
	params := url.Values{}
	params.Set("Action", "GetQueueAttributes")
	for i, name := range names {
		params.Set("AttributeName."+strconv.Itoa(i+1), name)
	}
	return c.do(ctx, queueURL, params)
}

// SetQueueAttributes sets one or more queue attributes, numbered
// Attribute.N.Name/Attribute.N.Value from 1.
func (c *Client) SetQueueAttributes(ctx context.Context, queueURL string, attributes map[string]string) (*transport.Response, error) {
	params := url.Values{}
	params.Set("Action", "SetQueueAttributes")
	i := 1
	for _, name := range sortedKeys(attributes) {
		params.Set("Attribute."+strconv.Itoa(i)+".Name", name)
		params.Set("Attribute."+strconv.Itoa(i)+".Value", attributes[name])
		i++
	}
	return c.do(ctx, queueURL, params)
}

// do merges the API version, percent-encodes the parameters onto the base
// URL, signs and dispatches. Signing failures abort before any I/O.
func (c *Client) do(ctx context.Context, baseURL string, params url.Values) (*transport.Response, error) {
	params.Set("Version", APIVersion)

	intent := sigv4.RequestIntent{
		Method: http.MethodGet,
		URL:    concatURL(baseURL, params),
	}
	signed, err := c.signer.Sign(ctx, intent, c.creds)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("action", params.Get("Action")).
		Msg("dispatching request")

	return c.transport.Do(ctx, signed)
}

// concatURL appends encoded params to base, reusing an existing query
// separator when the base already carries one.
func concatURL(base string, params url.Values) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}

// sortedKeys returns map keys in a stable order so attribute numbering is
// deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
