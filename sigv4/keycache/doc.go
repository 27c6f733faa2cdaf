// Package keycache provides read-through caches for derived signing keys.
//
// A signing key is valid for one UTC calendar day per (secret, region,
// service) triple, so deriving it fresh on every call is correct but wasteful
// under load. The caches here wrap a sigv4.KeyProvider as decorators; the
// deriver itself stays a pure function. Cache entries are keyed by
// accessKey/date/region/service and hold only derived keys, never secrets.
package keycache
