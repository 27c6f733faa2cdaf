package sqs

import "encoding/xml"

// APIError is a decoded vendor <ErrorResponse> envelope.
type APIError struct {
	// Type is the fault class, "Sender" or "Receiver".
	Type string

	// Code is the vendor error code, e.g. "AWS.SimpleQueueService.NonExistentQueue".
	Code string

	// Message is the human-readable description.
	Message string

	// RequestID identifies the failed request on the vendor side.
	RequestID string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

type errorResponseEnvelope struct {
	XMLName   xml.Name `xml:"ErrorResponse"`
	RequestID string   `xml:"RequestId"`
	Err       struct {
		Type    string `xml:"Type"`
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	} `xml:"Error"`
}

// ParseErrorResponse decodes a vendor error envelope from a response body.
// It returns (nil, false) when the body is not an <ErrorResponse>.
func ParseErrorResponse(body []byte) (*APIError, bool) {
	var envelope errorResponseEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, false
	}
	if envelope.Err.Code == "" {
		return nil, false
	}
	return &APIError{
		Type:      envelope.Err.Type,
		Code:      envelope.Err.Code,
		Message:   envelope.Err.Message,
		RequestID: envelope.RequestID,
	}, true
}
