package sigv4

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildCanonicalRequest_QueryOrdering(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantQuery string
	}{
		{
			name:      "tokens reordered",
			url:       "https://queue.example.com/123/q?B=2&A=1",
			wantQuery: "A=1&B=2",
		},
		{
			name:      "already ordered",
			url:       "https://queue.example.com/123/q?A=1&B=2",
			wantQuery: "A=1&B=2",
		},
		{
			// Whole-token lexicographic sort: "A=10" < "A=9" as strings.
			// Pinned behavior, not key-then-value ordering.
			name:      "repeated key sorts by whole token",
			url:       "https://queue.example.com/123/q?A=9&A=10",
			wantQuery: "A=10&A=9",
		},
		{
			name:      "action parameters in sorted order",
			url:       "https://queue.example.com/123/q?Version=2012-11-05&Action=SendMessage&MessageBody=hello",
			wantQuery: "Action=SendMessage&MessageBody=hello&Version=2012-11-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr, err := BuildCanonicalRequest("GET", tt.url, "19700101T000000Z")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cr.QueryString != tt.wantQuery {
				t.Errorf("expected query %q, got %q", tt.wantQuery, cr.QueryString)
			}
		})
	}
}

func TestBuildCanonicalRequest_NoEncodingPass(t *testing.T) {
	// Reserved characters in query values are carried into the canonical
	// request untouched.
	cr, err := BuildCanonicalRequest("GET", "https://queue.example.com/123/q?MessageBody=a+b/c&Action=SendMessage", "19700101T000000Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(cr.String(), "MessageBody=a+b/c") {
		t.Errorf("expected literal unescaped value in canonical request, got:\n%s", cr.String())
	}
}

func TestBuildCanonicalRequest_PathCarriedVerbatim(t *testing.T) {
	// Percent escapes in the path stay escaped; the canonical URI is the path
	// exactly as the caller wrote it, not its decoded form.
	cr, err := BuildCanonicalRequest("GET", "https://queue.example.com/123%2Fq/a%20b?A=1", "19700101T000000Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cr.URI != "/123%2Fq/a%20b" {
		t.Errorf("expected escaped path carried verbatim, got %q", cr.URI)
	}
}

func TestBuildCanonicalRequest_EmptyPath(t *testing.T) {
	// A URL with no path component keeps an empty canonical URI.
	cr, err := BuildCanonicalRequest("GET", "https://queue.example.com?A=1", "19700101T000000Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cr.URI != "" {
		t.Errorf("expected empty URI, got %q", cr.URI)
	}
}

func TestBuildCanonicalRequest_Pieces(t *testing.T) {
	cr, err := BuildCanonicalRequest("get", "https://queue.example.com/123/q?A=1", "20150830T123600Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cr.Method != "GET" {
		t.Errorf("expected method GET, got %q", cr.Method)
	}
	if cr.Host != "queue.example.com" {
		t.Errorf("expected host queue.example.com, got %q", cr.Host)
	}
	if cr.URI != "/123/q" {
		t.Errorf("expected URI /123/q, got %q", cr.URI)
	}
	if cr.Headers != "host:queue.example.com\nx-amz-date:20150830T123600Z\n" {
		t.Errorf("wrong canonical headers block: %q", cr.Headers)
	}
	if cr.SignedHeaders != "host;x-amz-date" {
		t.Errorf("wrong signed headers: %q", cr.SignedHeaders)
	}
	if cr.PayloadHash != EmptyStringSHA256 {
		t.Errorf("wrong payload hash: %q", cr.PayloadHash)
	}

	want := "GET\n" +
		"/123/q\n" +
		"A=1\n" +
		"host:queue.example.com\n" +
		"x-amz-date:20150830T123600Z\n" +
		"\n" +
		"host;x-amz-date\n" +
		EmptyStringSHA256
	if cr.String() != want {
		t.Errorf("canonical request mismatch:\nwant:\n%s\ngot:\n%s", want, cr.String())
	}
}

func TestBuildCanonicalRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"no query separator", "https://queue.example.com/123/q", ErrMissingQuery},
		{"empty query", "https://queue.example.com/123/q?", ErrMissingQuery},
		{"no host", "?A=1", ErrMalformedURL},
		{"unparsable base", "https://exa mple.com/q?A=1", ErrMalformedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCanonicalRequest("GET", tt.url, "19700101T000000Z")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrMalformedRequest) {
				t.Errorf("expected error to wrap ErrMalformedRequest, got %v", err)
			}
		})
	}
}
