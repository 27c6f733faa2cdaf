package sigv4

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"
)

// Reference values from the AWS Signature Version 4 documentation
// (GET ListUsers example for the IAM service, 2015-08-30).
const (
	refSecret    = "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY"
	refDate      = "20150830"
	refRegion    = "us-east-1"
	refService   = "iam"
	refTimestamp = "20150830T123600Z"

	refSigningKeyHex = "c4afb1cc5771d871763a393e44b703571b55cc28424d1a5e86da6ed3c154a4b9"
	refSignature     = "5d672d79c15b13162d9279b0855cfba6789a8edb4c82c400e06b5924a6f2b5d7"
)

// refCanonicalRequest is the documented canonical request of the same example.
const refCanonicalRequest = "GET\n" +
	"/\n" +
	"Action=ListUsers&Version=2010-05-08\n" +
	"content-type:application/x-www-form-urlencoded; charset=utf-8\n" +
	"host:iam.amazonaws.com\n" +
	"x-amz-date:20150830T123600Z\n" +
	"\n" +
	"content-type;host;x-amz-date\n" +
	EmptyStringSHA256

func TestDeriveSigningKey_ReferenceVector(t *testing.T) {
	key := DeriveSigningKey(refSecret, refDate, refRegion, refService)

	want, err := hex.DecodeString(refSigningKeyHex)
	if err != nil {
		t.Fatalf("bad reference hex: %v", err)
	}
	if !bytes.Equal(key, want) {
		t.Errorf("expected signing key %s, got %s", refSigningKeyHex, hex.EncodeToString(key))
	}
}

func TestDeriveSigningKey_Deterministic(t *testing.T) {
	first := DeriveSigningKey("secret", "20150830", "us-east-1", "sqs")
	second := DeriveSigningKey("secret", "20150830", "us-east-1", "sqs")
	if !bytes.Equal(first, second) {
		t.Error("identical inputs must yield identical keys")
	}
}

func TestDeriveSigningKey_InputSensitivity(t *testing.T) {
	base := DeriveSigningKey("secret", "20150830", "us-east-1", "sqs")

	variants := map[string][]byte{
		"secret":  DeriveSigningKey("secret2", "20150830", "us-east-1", "sqs"),
		"date":    DeriveSigningKey("secret", "20150831", "us-east-1", "sqs"),
		"region":  DeriveSigningKey("secret", "20150830", "eu-west-1", "sqs"),
		"service": DeriveSigningKey("secret", "20150830", "us-east-1", "sns"),
	}
	for input, key := range variants {
		if bytes.Equal(base, key) {
			t.Errorf("changing %s must change the signing key", input)
		}
	}
}

func TestSignature_ReferenceVector(t *testing.T) {
	scope := CredentialScope{Date: refDate, Region: refRegion, Service: refService}
	if scope.String() != "20150830/us-east-1/iam/aws4_request" {
		t.Fatalf("wrong credential scope: %q", scope.String())
	}

	key := DeriveSigningKey(refSecret, refDate, refRegion, refService)
	stringToSign := StringToSign(refCanonicalRequest, refTimestamp, scope)
	signature := Signature(key, stringToSign)

	if signature != refSignature {
		t.Errorf("expected signature %s, got %s", refSignature, signature)
	}
}

func TestDeriveProvider(t *testing.T) {
	creds := Credentials{AccessKeyID: "AKID", SecretAccessKey: refSecret}

	key, err := DeriveProvider{}.SigningKey(context.Background(), creds, refDate, refRegion, refService)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hex.EncodeToString(key) != refSigningKeyHex {
		t.Errorf("provider must derive the same key as DeriveSigningKey")
	}
}
