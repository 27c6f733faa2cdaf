package sigv4

import "fmt"

// Credentials is an immutable access key pair, supplied per signing call.
// The secret is never stored beyond the call that needs it and never logged.
type Credentials struct {
	// AccessKeyID is the public key identifier embedded in the
	// Credential= segment of the Authorization header.
	AccessKeyID string

	// SecretAccessKey is the sensitive signing secret.
	SecretAccessKey string
}

// Validate reports whether the pair is usable for signing.
func (c Credentials) Validate() error {
	if c.AccessKeyID == "" {
		return fmt.Errorf("%w: empty access key ID", ErrInvalidCredentials)
	}
	if c.SecretAccessKey == "" {
		return fmt.Errorf("%w: empty secret access key", ErrInvalidCredentials)
	}
	return nil
}

// String implements fmt.Stringer with the secret redacted, so a Credentials
// value accidentally passed to a logger cannot leak it.
func (c Credentials) String() string {
	return c.AccessKeyID + "/***"
}
