package sqs

import (
	"encoding/xml"
	"fmt"
)

// ResultKind discriminates the recognized response shapes.
type ResultKind int

const (
	// ResultNone means no recognized result shape was present. Not a
	// failure: the response schema varies per action and not every action
	// needs structured parsing.
	ResultNone ResultKind = iota

	// ResultQueueURL is a CreateQueueResult carrying the queue URL.
	ResultQueueURL

	// ResultQueueAttributes is a GetQueueAttributesResult carrying a
	// name-to-value map.
	ResultQueueAttributes

	// ResultMessage is a ReceiveMessageResult. Message is nil when the
	// element was present but empty (nothing to receive).
	ResultMessage
)

// String returns the kind's name.
func (k ResultKind) String() string {
	switch k {
	case ResultQueueURL:
		return "QueueURL"
	case ResultQueueAttributes:
		return "QueueAttributes"
	case ResultMessage:
		return "Message"
	default:
		return "None"
	}
}

// Message is one received queue message.
type Message struct {
	Body          string
	MD5OfBody     string
	ReceiptHandle string
	Attributes    map[string]string
}

// Result is the structured value extracted from a response body. Exactly the
// field selected by Kind is populated.
type Result struct {
	Kind       ResultKind
	QueueURL   string
	Attributes map[string]string
	Message    *Message
}

// XML envelopes. The root element name varies per action, so the envelope
// matches any root and probes for the recognized child results.
type responseEnvelope struct {
	CreateQueueResult        *createQueueResult        `xml:"CreateQueueResult"`
	GetQueueAttributesResult *getQueueAttributesResult `xml:"GetQueueAttributesResult"`
	ReceiveMessageResult     *receiveMessageResult     `xml:"ReceiveMessageResult"`
}

type createQueueResult struct {
	QueueURL string `xml:"QueueUrl"`
}

type getQueueAttributesResult struct {
	Attributes []xmlAttribute `xml:"Attribute"`
}

type receiveMessageResult struct {
	Message *xmlMessage `xml:"Message"`
}

type xmlMessage struct {
	Body          string         `xml:"Body"`
	MD5OfBody     string         `xml:"MD5OfBody"`
	ReceiptHandle string         `xml:"ReceiptHandle"`
	Attributes    []xmlAttribute `xml:"Attribute"`
}

type xmlAttribute struct {
	Name  string `xml:"Name"`
	Value string `xml:"Value"`
}

// ParseResponse inspects a raw XML response body for one of the recognized
// result shapes and extracts its value. A body with no recognized shape
// yields Result{Kind: ResultNone} and no error; only unparsable XML is an
// error.
func ParseResponse(body []byte) (Result, error) {
	var envelope responseEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return Result{}, fmt.Errorf("parsing response body: %w", err)
	}

	switch {
	case envelope.CreateQueueResult != nil:
		return Result{
			Kind:     ResultQueueURL,
			QueueURL: envelope.CreateQueueResult.QueueURL,
		}, nil

	case envelope.GetQueueAttributesResult != nil:
		return Result{
			Kind:       ResultQueueAttributes,
			Attributes: attributeMap(envelope.GetQueueAttributesResult.Attributes),
		}, nil

	case envelope.ReceiveMessageResult != nil:
		result := Result{Kind: ResultMessage}
		if m := envelope.ReceiveMessageResult.Message; m != nil {
			result.Message = &Message{
				Body:          m.Body,
				MD5OfBody:     m.MD5OfBody,
				ReceiptHandle: m.ReceiptHandle,
				Attributes:    attributeMap(m.Attributes),
			}
		}
		return result, nil

	default:
		return Result{Kind: ResultNone}, nil
	}
}

func attributeMap(attrs []xmlAttribute) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		out[attr.Name] = attr.Value
	}
	return out
}
