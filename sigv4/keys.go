package sigv4

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CredentialScope identifies the validity window of a signing key:
// one UTC calendar day for a given region and service.
type CredentialScope struct {
	// Date is the UTC date in YYYYMMDD form.
	Date string

	// Region is the AWS region (e.g. "us-east-1").
	Region string

	// Service is the AWS service name (e.g. "sqs").
	Service string
}

// String returns the scope in its wire form:
// {date}/{region}/{service}/aws4_request
func (cs CredentialScope) String() string {
	return cs.Date + "/" + cs.Region + "/" + cs.Service + "/" + AWS4Request
}

// DeriveSigningKey derives the per-day signing key from the secret.
// Chain: HMAC(HMAC(HMAC(HMAC("AWS4"+secret, date), region), service), "aws4_request")
// Each step's output is the key of the next step. Pure and deterministic:
// identical inputs always yield the identical byte sequence.
func DeriveSigningKey(secret, date, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secret), []byte(date))
	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(service))
	return hmacSHA256(kService, []byte(AWS4Request))
}

// StringToSign builds the string to sign from the assembled canonical request.
func StringToSign(canonicalRequest, amzDate string, scope CredentialScope) string {
	hash := sha256.Sum256([]byte(canonicalRequest))
	return SignV4Algorithm + "\n" +
		amzDate + "\n" +
		scope.String() + "\n" +
		hex.EncodeToString(hash[:])
}

// Signature computes the final hex signature with the derived signing key.
func Signature(signingKey []byte, stringToSign string) string {
	return hex.EncodeToString(hmacSHA256(signingKey, []byte(stringToSign)))
}

// hmacSHA256 computes HMAC-SHA256.
func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// KeyProvider supplies signing keys to a Signer. The default provider derives
// fresh on every call; read-through caches (see sigv4/keycache) wrap it as
// decorators, keyed by (access key, date, region, service). Caching is a
// performance optimization only, correctness never depends on it.
type KeyProvider interface {
	SigningKey(ctx context.Context, creds Credentials, date, region, service string) ([]byte, error)
}

// DeriveProvider is the default KeyProvider: a fresh derivation per call,
// keeping the pure-function contract of DeriveSigningKey.
type DeriveProvider struct{}

// SigningKey implements KeyProvider.
func (DeriveProvider) SigningKey(_ context.Context, creds Credentials, date, region, service string) ([]byte, error) {
	return DeriveSigningKey(creds.SecretAccessKey, date, region, service), nil
}
