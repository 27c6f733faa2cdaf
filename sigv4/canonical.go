package sigv4

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// RequestIntent is a caller-constructed description of the request to sign.
// The URL must already contain a non-empty query string; values that need
// percent-encoding must arrive already encoded.
type RequestIntent struct {
	// Method is the HTTP method. Empty defaults to GET.
	Method string

	// URL is the full request URL including the query string.
	URL string

	// Header holds caller headers to carry on the signed request. It is
	// never mutated; the signer works on a copy.
	Header http.Header
}

// CanonicalRequest holds the reordered, signable form of a request together
// with the parsed pieces the signer needs. It is a value object, rebuilt
// fresh on every signing call and never cached.
type CanonicalRequest struct {
	// Method is the HTTP method in upper case.
	Method string

	// Host is the authority parsed from the URL base.
	Host string

	// URI is the URL path, carried verbatim (no percent-encoding pass).
	URI string

	// QueryString is the canonical querystring: the raw query tokens sorted
	// lexicographically as whole "key=value" strings and rejoined with "&".
	QueryString string

	// Headers is the canonical headers block, newline-terminated.
	Headers string

	// SignedHeaders is the fixed "host;x-amz-date" list.
	SignedHeaders string

	// PayloadHash is the hex SHA-256 of the (always empty) body.
	PayloadHash string
}

// String assembles the canonical request for hashing. The headers block
// already ends with a newline before the signed-headers list.
func (cr CanonicalRequest) String() string {
	return cr.Method + "\n" +
		cr.URI + "\n" +
		cr.QueryString + "\n" +
		cr.Headers + "\n" +
		cr.SignedHeaders + "\n" +
		cr.PayloadHash
}

// BuildCanonicalRequest reorders a request into its canonical, signable form.
// amzDate must be the ISO8601 basic timestamp captured for this signing call.
//
// Two behaviors here are pinned to the reference implementation and may
// diverge from the published AWS algorithm (kept as regression targets, not
// silently corrected):
//
//   - query tokens are sorted as complete "key=value" substrings, not by key
//     then value, so "A=10" sorts before "A=9";
//   - neither the path nor the query tokens go through a percent-encoding
//     pass; reserved characters are carried into the signed string as-is.
func BuildCanonicalRequest(method, rawURL, amzDate string) (*CanonicalRequest, error) {
	base, rawQuery, found := strings.Cut(rawURL, "?")
	if !found || rawQuery == "" {
		return nil, ErrMissingQuery
	}

	tokens := strings.Split(rawQuery, "&")
	sort.Strings(tokens)

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("%w: no host in %q", ErrMalformedURL, base)
	}

	if method == "" {
		method = http.MethodGet
	}

	return &CanonicalRequest{
		Method:        strings.ToUpper(method),
		Host:          parsed.Host,
		URI:           parsed.EscapedPath(),
		QueryString:   strings.Join(tokens, "&"),
		Headers:       "host:" + parsed.Host + "\n" + "x-amz-date:" + amzDate + "\n",
		SignedHeaders: SignedHeaderList,
		PayloadHash:   EmptyStringSHA256,
	}, nil
}
