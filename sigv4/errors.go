package sigv4

import (
	"errors"
	"fmt"
)

// Signing errors. All of them are raised synchronously, before any network
// activity: a request is never dispatched from a partially failed signing.
var (
	// ErrMalformedRequest indicates the request intent cannot be signed.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrMissingQuery indicates the URL carries no query string. The scheme
	// has no bodyless/no-query signing mode; at least one parameter is
	// required.
	ErrMissingQuery = fmt.Errorf("%w: URL has no query string", ErrMalformedRequest)

	// ErrMalformedURL indicates the URL base could not be parsed.
	ErrMalformedURL = fmt.Errorf("%w: unparsable URL", ErrMalformedRequest)

	// ErrInvalidCredentials indicates an empty access key or secret.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCryptoUnavailable indicates the hash/HMAC primitives could not be
	// invoked. The standard library implementations never fail at runtime, so
	// this error is reserved: callers can match it, key providers backed by
	// external key stores may return it.
	ErrCryptoUnavailable = errors.New("crypto primitives unavailable")
)
