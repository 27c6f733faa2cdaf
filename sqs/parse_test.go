package sqs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_CreateQueue(t *testing.T) {
	body := `<CreateQueueResponse>
		<CreateQueueResult><QueueUrl>X</QueueUrl></CreateQueueResult>
		<ResponseMetadata><RequestId>abc</RequestId></ResponseMetadata>
	</CreateQueueResponse>`

	result, err := ParseResponse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, ResultQueueURL, result.Kind)
	assert.Equal(t, "X", result.QueueURL)
}

func TestParseResponse_QueueAttributes(t *testing.T) {
	body := `<GetQueueAttributesResponse>
		<GetQueueAttributesResult>
			<Attribute><Name>QueueArn</Name><Value>arn:aws:sqs:us-east-1:123:q</Value></Attribute>
			<Attribute><Name>ApproximateNumberOfMessages</Name><Value>4</Value></Attribute>
		</GetQueueAttributesResult>
	</GetQueueAttributesResponse>`

	result, err := ParseResponse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, ResultQueueAttributes, result.Kind)
	assert.Equal(t, map[string]string{
		"QueueArn":                    "arn:aws:sqs:us-east-1:123:q",
		"ApproximateNumberOfMessages": "4",
	}, result.Attributes)
}

func TestParseResponse_ReceiveMessage(t *testing.T) {
	body := `<ReceiveMessageResponse>
		<ReceiveMessageResult>
			<Message>
				<Body>hello</Body>
				<MD5OfBody>5d41402abc4b2a76b9719d911017c592</MD5OfBody>
				<ReceiptHandle>handle-1</ReceiptHandle>
				<Attribute><Name>SenderId</Name><Value>123</Value></Attribute>
			</Message>
		</ReceiveMessageResult>
	</ReceiveMessageResponse>`

	result, err := ParseResponse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, ResultMessage, result.Kind)
	require.NotNil(t, result.Message)
	assert.Equal(t, "hello", result.Message.Body)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", result.Message.MD5OfBody)
	assert.Equal(t, "handle-1", result.Message.ReceiptHandle)
	assert.Equal(t, map[string]string{"SenderId": "123"}, result.Message.Attributes)
}

func TestParseResponse_EmptyReceive(t *testing.T) {
	// An empty receive result is an absent value, not an error.
	body := `<ReceiveMessageResponse><ReceiveMessageResult/></ReceiveMessageResponse>`

	result, err := ParseResponse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, ResultMessage, result.Kind)
	assert.Nil(t, result.Message)
}

func TestParseResponse_UnrecognizedShape(t *testing.T) {
	body := `<SendMessageResponse>
		<SendMessageResult><MessageId>id-1</MessageId></SendMessageResult>
	</SendMessageResponse>`

	result, err := ParseResponse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, ResultNone, result.Kind)
}

func TestParseResponse_InvalidXML(t *testing.T) {
	_, err := ParseResponse([]byte("not xml <"))
	assert.Error(t, err)
}

func TestParseErrorResponse(t *testing.T) {
	body := `<ErrorResponse>
		<Error>
			<Type>Sender</Type>
			<Code>AWS.SimpleQueueService.NonExistentQueue</Code>
			<Message>The specified queue does not exist.</Message>
		</Error>
		<RequestId>req-1</RequestId>
	</ErrorResponse>`

	apiErr, ok := ParseErrorResponse([]byte(body))
	require.True(t, ok)
	assert.Equal(t, "Sender", apiErr.Type)
	assert.Equal(t, "AWS.SimpleQueueService.NonExistentQueue", apiErr.Code)
	assert.Equal(t, "req-1", apiErr.RequestID)
	assert.Contains(t, apiErr.Error(), "NonExistentQueue")

	_, ok = ParseErrorResponse([]byte(`<CreateQueueResponse/>`))
	assert.False(t, ok)
}
