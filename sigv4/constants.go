package sigv4

const (
	// SignV4Algorithm is the algorithm identifier for AWS Signature Version 4.
	SignV4Algorithm = "AWS4-HMAC-SHA256"

	// ISO8601BasicFormat is the timestamp format used in the x-amz-date header.
	ISO8601BasicFormat = "20060102T150405Z"

	// YYYYMMDD is the short date format used in the credential scope.
	YYYYMMDD = "20060102"

	// AWS4Request is the termination string of the credential scope.
	AWS4Request = "aws4_request"

	// SignedHeaderList is the fixed signed-headers list. The query-parameter
	// scheme signs exactly these two headers on every request.
	SignedHeaderList = "host;x-amz-date"

	// EmptyStringSHA256 is the SHA-256 hash of an empty string. Requests never
	// carry a body, so this is the payload hash of every canonical request.
	EmptyStringSHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

const (
	// AuthorizationHeader is the HTTP header carrying the signature.
	AuthorizationHeader = "Authorization"

	// AmzDateHeader is the AWS request timestamp header.
	AmzDateHeader = "X-Amz-Date"
)
