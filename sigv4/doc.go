/*
Package sigv4 signs outbound HTTP requests with AWS Signature Version 4.

The scheme supported here is the query-parameter form used by the SQS and SNS
query APIs: every request is GET-shaped, carries all parameters in the query
string, has no body, and signs exactly the host and x-amz-date headers. The
signing pipeline is:

 1. Build the canonical request: METHOD, URI path, canonical querystring,
    canonical headers, signed-headers list, and the SHA-256 of an empty body.
 2. Derive the signing key from the secret through a four-step HMAC-SHA256
    chain over date, region, service and the literal "aws4_request".
 3. HMAC the string to sign (algorithm tag, timestamp, credential scope,
    canonical request digest) with the derived key.
 4. Emit the Authorization header embedding the access key, credential scope,
    signed-headers list and hex signature.

Two canonicalization behaviors are intentionally pinned to the reference
implementation rather than the published AWS algorithm: query tokens are
sorted as whole "key=value" strings, and neither the URI path nor the query
values go through a percent-encoding pass. Requests whose values contain
reserved characters must arrive already encoded. See BuildCanonicalRequest.

Signing is synchronous, CPU-bound and free of shared mutable state; a Signer
may be used from any number of goroutines without locking.
*/
package sigv4
